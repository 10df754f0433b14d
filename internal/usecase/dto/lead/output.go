package leaddto

import "github.com/LavaJover/shvark-sales-distribution-service/internal/domain"

type GetLeadsOutput struct {
	Leads      []*domain.PhoneLead
	Pagination Pagination
}

type Pagination struct {
	CurrentPage  int
	TotalPages   int
	TotalItems   int64
	ItemsPerPage int
}

type SweepOutput struct {
	Checked int
	Expired int
}
