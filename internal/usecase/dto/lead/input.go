package leaddto

import "github.com/LavaJover/shvark-sales-distribution-service/internal/domain"

type LeadFields struct {
	Name        string
	PhoneNumber string
	SalesPageID string
	Source      string
	Country     string
	City        string
	DeviceType  string
	Notes       string
	IPAddress   string
	UserAgent   string
}

type CreateLeadInput struct {
	LeadFields
	// DeadlineHours nil means the lead never expires on its own
	DeadlineHours *int
}

type ManualLeadInput struct {
	LeadFields
	AddTimer bool
}

type GetLeadsInput struct {
	SalesPageID     string
	OnlyExpired     bool
	OnlyTransferred bool
	Contacted       *bool
	Archived        bool
	Page            int
	Limit           int
}

func (in *GetLeadsInput) Filter() domain.LeadFilter {
	filter := domain.LeadFilter{
		OnlyExpired:     in.OnlyExpired,
		OnlyTransferred: in.OnlyTransferred,
		Contacted:       in.Contacted,
		Archived:        in.Archived,
		Page:            in.Page,
		Limit:           in.Limit,
	}
	if in.SalesPageID != "" {
		page := in.SalesPageID
		filter.SalesPageID = &page
	}
	return filter
}
