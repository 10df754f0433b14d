package models

import "time"

type VisitModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	SalesPageID string `gorm:"not null;index:idx_visits_page_created"`
	Channel     string
	Sticky      bool
	Referrer    string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	GCLID       string
	UserAgent   string
	IPAddress   string
	CreatedAt   time.Time `gorm:"index:idx_visits_page_created"`
}

func (VisitModel) TableName() string {
	return "visits"
}
