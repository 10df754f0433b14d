package request

import "github.com/LavaJover/shvark-sales-distribution-service/internal/domain"

type RuleRequest struct {
	SalesPageID    string   `json:"salesPageId" binding:"required"`
	GoogleWeight   *float64 `json:"googleWeight"`
	OtherWeight    *float64 `json:"otherWeight"`
	IsActive       *bool    `json:"isActive"`
	DailyLimit     *int     `json:"dailyLimit"`
	TotalLimit     *int     `json:"totalLimit"`
	ClearLimits    bool     `json:"clearLimits"`
	Priority       *int     `json:"priority"`
	AutoDistribute *bool    `json:"autoDistribute"`
}

func (r *RuleRequest) ToDomain() *domain.RuleUpdate {
	return &domain.RuleUpdate{
		SalesPageID:    r.SalesPageID,
		GoogleWeight:   r.GoogleWeight,
		OtherWeight:    r.OtherWeight,
		IsActive:       r.IsActive,
		DailyLimit:     r.DailyLimit,
		TotalLimit:     r.TotalLimit,
		ClearLimits:    r.ClearLimits,
		Priority:       r.Priority,
		AutoDistribute: r.AutoDistribute,
	}
}

type SaveRulesRequest struct {
	Rules []RuleRequest `json:"rules" binding:"required,min=1,dive"`
}
