package models

import "time"

type PageOwnerModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	SalesPageID string `gorm:"not null;index:idx_page_owner_active"`
	UserID      string `gorm:"not null"`
	AssignedBy  string
	Active      bool `gorm:"not null;index:idx_page_owner_active"`
	AssignedAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PageOwnerModel) TableName() string {
	return "page_owners"
}
