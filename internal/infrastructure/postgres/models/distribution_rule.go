package models

import "time"

type DistributionRuleModel struct {
	ID             string `gorm:"primaryKey;type:uuid"`
	SalesPageID    string `gorm:"uniqueIndex;not null"`
	GoogleWeight   float64
	OtherWeight    float64
	IsActive       bool `gorm:"not null;index"`
	DailyLimit     *int
	TotalLimit     *int
	Priority       int  `gorm:"default:0"`
	AutoDistribute bool `gorm:"default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (DistributionRuleModel) TableName() string {
	return "distribution_rules"
}
