package mappers

import (
	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/postgres/models"
)

func ToDomainPageOwner(model *models.PageOwnerModel) *domain.PageOwner {
	return &domain.PageOwner{
		ID:          model.ID,
		SalesPageID: model.SalesPageID,
		UserID:      model.UserID,
		AssignedBy:  model.AssignedBy,
		Active:      model.Active,
		AssignedAt:  model.AssignedAt,
	}
}
