package repository

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultPageOwnerRepository struct {
	db *gorm.DB
}

func NewDefaultPageOwnerRepository(db *gorm.DB) *DefaultPageOwnerRepository {
	return &DefaultPageOwnerRepository{db: db}
}

func (r *DefaultPageOwnerRepository) AssignOwner(ctx context.Context, owner *domain.PageOwner) error {
	ownerModel := models.PageOwnerModel{
		ID:          uuid.New().String(),
		SalesPageID: owner.SalesPageID,
		UserID:      owner.UserID,
		AssignedBy:  owner.AssignedBy,
		Active:      true,
		AssignedAt:  owner.AssignedAt,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PageOwnerModel{}).
			Where("sales_page_id = ? AND active = ?", owner.SalesPageID, true).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Create(&ownerModel).Error
	})
	if err != nil {
		return err
	}
	owner.ID = ownerModel.ID
	owner.Active = true
	return nil
}

func (r *DefaultPageOwnerRepository) GetActiveOwner(ctx context.Context, salesPageID string) (*domain.PageOwner, error) {
	var ownerModel models.PageOwnerModel
	err := r.db.WithContext(ctx).
		Where("sales_page_id = ? AND active = ?", salesPageID, true).
		Order("assigned_at DESC").
		First(&ownerModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOwnerNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainPageOwner(&ownerModel), nil
}
