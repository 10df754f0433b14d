package lead

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	leaddto "github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/dto/lead"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// GetLead expires the lead on read when its deadline has passed.
func (uc *DefaultLeadUsecase) GetLead(ctx context.Context, leadID string) (*domain.PhoneLead, error) {
	lead, err := uc.leadRepo.GetLeadByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	return uc.ExpireLead(ctx, lead)
}

func (uc *DefaultLeadUsecase) GetLeads(ctx context.Context, input *leaddto.GetLeadsInput) (*leaddto.GetLeadsOutput, error) {
	filter := input.Filter()
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	leads, total, err := uc.leadRepo.ListLeads(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	for i, lead := range leads {
		if !uc.CheckExpiry(lead) {
			continue
		}
		stored, err := uc.ExpireLead(ctx, lead)
		if err != nil {
			uc.logger.Warn("failed to expire lead on read", "lead_id", lead.ID, "error", err)
			continue
		}
		leads[i] = stored
	}

	return &leaddto.GetLeadsOutput{
		Leads: leads,
		Pagination: leaddto.Pagination{
			CurrentPage:  filter.Page,
			TotalPages:   int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
			TotalItems:   total,
			ItemsPerPage: filter.Limit,
		},
	}, nil
}

// MarkContacted records the first contact with an active lead and stops its
// deadline. Terminal leads are returned unchanged.
func (uc *DefaultLeadUsecase) MarkContacted(ctx context.Context, leadID string) (*domain.PhoneLead, error) {
	lead, err := uc.GetLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Terminal() {
		return lead, nil
	}

	changed, err := uc.leadRepo.MarkContacted(ctx, leadID, uc.now())
	if err != nil {
		return nil, fmt.Errorf("failed to mark lead %s contacted: %w", leadID, err)
	}
	if changed {
		uc.logger.Info("lead contacted", "lead_id", leadID, "sales_page_id", lead.SalesPageID)
	}
	return uc.leadRepo.GetLeadByID(ctx, leadID)
}

func (uc *DefaultLeadUsecase) SetArchived(ctx context.Context, leadID string, archived bool) (*domain.PhoneLead, error) {
	if _, err := uc.leadRepo.GetLeadByID(ctx, leadID); err != nil {
		return nil, err
	}
	if err := uc.leadRepo.SetArchived(ctx, leadID, archived); err != nil {
		return nil, fmt.Errorf("failed to archive lead %s: %w", leadID, err)
	}
	return uc.leadRepo.GetLeadByID(ctx, leadID)
}
