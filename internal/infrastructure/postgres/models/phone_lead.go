package models

import "time"

type PhoneLeadModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	Name        string
	PhoneNumber string `gorm:"not null;index:idx_phone_leads_active,unique,where:is_expired = false"`
	SalesPageID string `gorm:"not null;index;index:idx_phone_leads_active,unique,where:is_expired = false"`
	Source      string
	Country     string
	City        string
	DeviceType  string
	Notes       string
	IPAddress   string
	UserAgent   string

	DeadlineHours *int
	DeadlineAt    *time.Time `gorm:"index"`
	IsExpired     bool       `gorm:"default:false;index"`
	ExpiredAt     *time.Time

	// Transfer on withdrawal
	IsTransferred       bool   `gorm:"default:false"`
	OriginalSalesPageID string `gorm:"index"`
	TransferredToUserID string
	TransferredBy       string
	TransferredAt       *time.Time
	TransferReason      string

	IsContacted bool `gorm:"default:false"`
	ContactedAt *time.Time
	IsArchived  bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PhoneLeadModel) TableName() string {
	return "phone_leads"
}
