package response

type RouteResponse struct {
	SalesPageID string `json:"salesPageId"`
	RedirectURL string `json:"redirectUrl"`
	Bucket      string `json:"bucket"`
	Sticky      bool   `json:"sticky"`
	Channel     string `json:"channel"`
}

type AllocationEntry struct {
	SalesPageID string  `json:"salesPageId"`
	Weight      float64 `json:"weight"`
	ExactShare  float64 `json:"exactShare"`
	FloorCount  int     `json:"floorCount"`
	Remainder   float64 `json:"remainder"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
}

type AllocationResponse struct {
	Success     bool              `json:"success"`
	Channel     string            `json:"channel"`
	Total       int               `json:"total"`
	Allocations []AllocationEntry `json:"allocations"`
}

type PageStatsResponse struct {
	SalesPageID  string  `json:"salesPageId"`
	GoogleWeight float64 `json:"googleWeight"`
	OtherWeight  float64 `json:"otherWeight"`
	IsActive     bool    `json:"isActive"`
	DailyLimit   *int    `json:"dailyLimit"`
	TotalLimit   *int    `json:"totalLimit"`
	TodayVisits  int64   `json:"todayVisits"`
	TotalVisits  int64   `json:"totalVisits"`
	LimitReached bool    `json:"limitReached"`
}

type StatsResponse struct {
	Success bool                `json:"success"`
	Pages   []PageStatsResponse `json:"pages"`
	Totals  TotalsResponse      `json:"totals"`
}
