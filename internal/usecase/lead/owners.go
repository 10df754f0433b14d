package lead

import (
	"context"
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
)

// AssignOwner makes userID the owner of the sales page. The previous
// assignment, if any, is deactivated.
func (uc *DefaultLeadUsecase) AssignOwner(ctx context.Context, salesPageID, userID string, operator domain.Operator) (*domain.PageOwner, error) {
	if !operator.IsAdmin() {
		return nil, fmt.Errorf("%w: assigning page owners requires the ADMIN role", domain.ErrForbidden)
	}
	salesPageID, userID = strings.TrimSpace(salesPageID), strings.TrimSpace(userID)
	if salesPageID == "" || userID == "" {
		return nil, fmt.Errorf("%w: sales page id and user id are required", domain.ErrInvalidOwner)
	}

	owner := &domain.PageOwner{
		SalesPageID: salesPageID,
		UserID:      userID,
		AssignedBy:  operator.UserID,
		Active:      true,
		AssignedAt:  uc.now(),
	}
	if err := uc.ownerRepo.AssignOwner(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to assign owner of %s: %w", salesPageID, err)
	}
	uc.logger.Info("page owner assigned", "sales_page_id", salesPageID, "user_id", userID, "assigned_by", operator.UserID)
	return owner, nil
}

func (uc *DefaultLeadUsecase) GetActiveOwner(ctx context.Context, salesPageID string) (*domain.PageOwner, error) {
	return uc.ownerRepo.GetActiveOwner(ctx, salesPageID)
}
