package response

import "time"

type RuleResponse struct {
	ID             string    `json:"id"`
	SalesPageID    string    `json:"salesPageId"`
	GoogleWeight   float64   `json:"googleWeight"`
	OtherWeight    float64   `json:"otherWeight"`
	IsActive       bool      `json:"isActive"`
	DailyLimit     *int      `json:"dailyLimit"`
	TotalLimit     *int      `json:"totalLimit"`
	Priority       int       `json:"priority"`
	AutoDistribute bool      `json:"autoDistribute"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type TotalsResponse struct {
	Google      float64 `json:"google"`
	Other       float64 `json:"other"`
	GoogleValid bool    `json:"googleValid"`
	OtherValid  bool    `json:"otherValid"`
}

type RulesResponse struct {
	Success bool           `json:"success"`
	Rules   []RuleResponse `json:"rules"`
	Totals  TotalsResponse `json:"totals"`
}

type RuleUpdatedResponse struct {
	Success bool         `json:"success"`
	Created bool         `json:"created"`
	Rule    RuleResponse `json:"rule"`
}

type PublicRule struct {
	SalesPageID  string  `json:"salesPageId"`
	GoogleWeight float64 `json:"googleWeight"`
	OtherWeight  float64 `json:"otherWeight"`
	Priority     int     `json:"priority"`
}

type PublicRulesResponse struct {
	Success bool         `json:"success"`
	Rules   []PublicRule `json:"rules"`
}
