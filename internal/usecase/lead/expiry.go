package lead

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	leaddto "github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/dto/lead"
)

// CheckExpiry reports whether the lead is past its deadline and not yet
// expired. It does not modify the lead.
func (uc *DefaultLeadUsecase) CheckExpiry(lead *domain.PhoneLead) bool {
	return lead.ExpiryDue(uc.now())
}

// ExpireLead marks a due lead expired. A lead that is not due, or that
// another writer already moved out of ACTIVE, comes back as stored.
func (uc *DefaultLeadUsecase) ExpireLead(ctx context.Context, lead *domain.PhoneLead) (*domain.PhoneLead, error) {
	stored, _, err := uc.expire(ctx, lead)
	return stored, err
}

func (uc *DefaultLeadUsecase) expire(ctx context.Context, lead *domain.PhoneLead) (*domain.PhoneLead, bool, error) {
	if !uc.CheckExpiry(lead) {
		return lead, false, nil
	}

	now := uc.now()
	changed, err := uc.leadRepo.Transition(ctx, lead.ID, domain.LeadTransition{ExpiredAt: now})
	if err != nil {
		return nil, false, fmt.Errorf("failed to expire lead %s: %w", lead.ID, err)
	}
	if !changed {
		stored, err := uc.leadRepo.GetLeadByID(ctx, lead.ID)
		return stored, false, err
	}

	expired := *lead
	expired.IsExpired = true
	expired.ExpiredAt = &now
	expired.UpdatedAt = now
	expired.DeadlineAt = nil
	expired.DeadlineHours = nil

	uc.metrics.RecordLeadExpired(expired.SalesPageID)
	uc.logger.Info("lead expired", "lead_id", expired.ID, "sales_page_id", expired.SalesPageID)
	uc.publish(&expired, eventLeadExpired)
	return &expired, true, nil
}

// ExpireDue expires every lead whose deadline has passed.
func (uc *DefaultLeadUsecase) ExpireDue(ctx context.Context) (*leaddto.SweepOutput, error) {
	start := time.Now()
	defer func() {
		uc.metrics.RecordExpirySweep(time.Since(start).Seconds())
	}()

	due, err := uc.leadRepo.FindDueLeads(ctx, uc.now())
	if err != nil {
		return nil, fmt.Errorf("failed to find due leads: %w", err)
	}

	out := &leaddto.SweepOutput{Checked: len(due)}
	for _, lead := range due {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		_, changed, err := uc.expire(ctx, lead)
		if err != nil {
			uc.logger.Error("failed to expire lead", "lead_id", lead.ID, "error", err)
			continue
		}
		if changed {
			out.Expired++
		}
	}

	if out.Expired > 0 {
		uc.logger.Info("expired due leads", "checked", out.Checked, "expired", out.Expired)
	}
	return out, nil
}
