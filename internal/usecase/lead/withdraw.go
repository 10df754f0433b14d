package lead

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
)

const withdrawReason = "withdrawn by operator"

// Withdraw takes an active lead out of the pool and hands it to the current
// owner of its sales page. Without an owner the lead is still expired, and
// is returned together with ErrNoOwnerAssigned. Terminal leads are returned
// unchanged.
func (uc *DefaultLeadUsecase) Withdraw(ctx context.Context, leadID string, operator domain.Operator) (*domain.PhoneLead, error) {
	if !operator.CanWithdraw() {
		return nil, domain.ErrWithdrawForbidden
	}

	lead, err := uc.leadRepo.GetLeadByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Terminal() {
		return lead, nil
	}
	// The deadline passing first means expiry already won.
	if uc.CheckExpiry(lead) {
		return uc.ExpireLead(ctx, lead)
	}

	owner, err := uc.ownerRepo.GetActiveOwner(ctx, lead.SalesPageID)
	if err != nil && !errors.Is(err, domain.ErrOwnerNotFound) {
		return nil, fmt.Errorf("failed to look up page owner: %w", err)
	}

	now := uc.now()
	transition := domain.LeadTransition{ExpiredAt: now}
	if owner != nil {
		transition.Transfer = true
		transition.OriginalSalesPageID = lead.SalesPageID
		transition.TransferredToUserID = owner.UserID
		transition.TransferredBy = operator.UserID
		transition.TransferReason = withdrawReason
	}

	changed, err := uc.leadRepo.Transition(ctx, lead.ID, transition)
	if err != nil {
		return nil, fmt.Errorf("failed to withdraw lead %s: %w", lead.ID, err)
	}
	if !changed {
		return uc.leadRepo.GetLeadByID(ctx, lead.ID)
	}

	withdrawn := *lead
	withdrawn.IsExpired = true
	withdrawn.ExpiredAt = &now
	withdrawn.UpdatedAt = now
	withdrawn.DeadlineAt = nil
	withdrawn.DeadlineHours = nil
	if owner != nil {
		withdrawn.IsTransferred = true
		withdrawn.OriginalSalesPageID = transition.OriginalSalesPageID
		withdrawn.TransferredToUserID = transition.TransferredToUserID
		withdrawn.TransferredBy = transition.TransferredBy
		withdrawn.TransferReason = transition.TransferReason
		withdrawn.TransferredAt = &now
	}

	uc.metrics.RecordLeadWithdrawn(withdrawn.SalesPageID, withdrawn.IsTransferred)
	uc.logger.Info("lead withdrawn",
		"lead_id", withdrawn.ID,
		"sales_page_id", withdrawn.SalesPageID,
		"transferred_to", withdrawn.TransferredToUserID,
		"operator", operator.UserID,
	)
	uc.publish(&withdrawn, eventLeadWithdrawn)

	if owner == nil {
		return &withdrawn, domain.ErrNoOwnerAssigned
	}
	return &withdrawn, nil
}
