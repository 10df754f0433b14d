package distributiondto

type PageStats struct {
	SalesPageID  string
	GoogleWeight float64
	OtherWeight  float64
	IsActive     bool
	DailyLimit   *int
	TotalLimit   *int
	TodayVisits  int64
	TotalVisits  int64
	LimitReached bool
}

type StatsOutput struct {
	Pages       []PageStats
	GoogleTotal float64
	OtherTotal  float64
	GoogleExact bool
	OtherExact  bool
}
