package repository

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultPhoneLeadRepository struct {
	db *gorm.DB
}

func NewDefaultPhoneLeadRepository(db *gorm.DB) *DefaultPhoneLeadRepository {
	return &DefaultPhoneLeadRepository{db: db}
}

func (r *DefaultPhoneLeadRepository) CreateLead(ctx context.Context, lead *domain.PhoneLead) error {
	leadModel := mappers.ToGORMPhoneLead(lead)
	leadModel.ID = uuid.New().String()
	if err := r.db.WithContext(ctx).Create(leadModel).Error; err != nil {
		// idx_phone_leads_active rejects a second active lead for the contact
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateLead
		}
		return err
	}
	lead.ID = leadModel.ID
	lead.CreatedAt = leadModel.CreatedAt
	lead.UpdatedAt = leadModel.UpdatedAt
	return nil
}

func (r *DefaultPhoneLeadRepository) GetLeadByID(ctx context.Context, leadID string) (*domain.PhoneLead, error) {
	var leadModel models.PhoneLeadModel
	err := r.db.WithContext(ctx).Where("id = ?", leadID).First(&leadModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainPhoneLead(&leadModel), nil
}

func (r *DefaultPhoneLeadRepository) FindActiveLead(ctx context.Context, phoneNumber, salesPageID string) (*domain.PhoneLead, error) {
	var leadModel models.PhoneLeadModel
	err := r.db.WithContext(ctx).
		Where("phone_number = ? AND sales_page_id = ?", phoneNumber, salesPageID).
		Where("is_expired = ?", false).
		Order("created_at DESC").
		First(&leadModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainPhoneLead(&leadModel), nil
}

func (r *DefaultPhoneLeadRepository) Transition(ctx context.Context, leadID string, t domain.LeadTransition) (bool, error) {
	updates := map[string]interface{}{
		"is_expired":     true,
		"expired_at":     t.ExpiredAt,
		"deadline_at":    nil,
		"deadline_hours": nil,
	}
	if t.Transfer {
		updates["is_transferred"] = true
		updates["original_sales_page_id"] = t.OriginalSalesPageID
		updates["transferred_to_user_id"] = t.TransferredToUserID
		updates["transferred_by"] = t.TransferredBy
		updates["transferred_at"] = t.ExpiredAt
		updates["transfer_reason"] = t.TransferReason
	}

	result := r.db.WithContext(ctx).
		Model(&models.PhoneLeadModel{}).
		Where("id = ? AND is_expired = ?", leadID, false).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *DefaultPhoneLeadRepository) FindDueLeads(ctx context.Context, now time.Time) ([]*domain.PhoneLead, error) {
	var leadModels []models.PhoneLeadModel
	if err := r.db.WithContext(ctx).
		Where("is_expired = ?", false).
		Where("deadline_at IS NOT NULL AND deadline_at <= ?", now).
		Order("deadline_at ASC").
		Find(&leadModels).Error; err != nil {
		return nil, err
	}
	return toDomainLeads(leadModels), nil
}

func (r *DefaultPhoneLeadRepository) MarkContacted(ctx context.Context, leadID string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PhoneLeadModel{}).
		Where("id = ? AND is_expired = ?", leadID, false).
		Updates(map[string]interface{}{
			"is_contacted":   true,
			"contacted_at":   at,
			"deadline_at":    nil,
			"deadline_hours": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *DefaultPhoneLeadRepository) SetArchived(ctx context.Context, leadID string, archived bool) error {
	return r.db.WithContext(ctx).
		Model(&models.PhoneLeadModel{}).
		Where("id = ?", leadID).
		Update("is_archived", archived).Error
}

func (r *DefaultPhoneLeadRepository) ListLeads(ctx context.Context, filter domain.LeadFilter) ([]*domain.PhoneLead, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PhoneLeadModel{})

	if filter.SalesPageID != nil {
		query = query.Where("(sales_page_id = ? OR original_sales_page_id = ?)", *filter.SalesPageID, *filter.SalesPageID)
	}
	if filter.OnlyExpired {
		query = query.Where("is_expired = ? AND is_transferred = ?", true, false)
	}
	if filter.OnlyTransferred {
		query = query.Where("is_transferred = ?", true)
	}
	if filter.Contacted != nil {
		query = query.Where("is_contacted = ?", *filter.Contacted)
	}
	query = query.Where("is_archived = ?", filter.Archived)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var leadModels []models.PhoneLeadModel
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&leadModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainLeads(leadModels), total, nil
}

func toDomainLeads(leadModels []models.PhoneLeadModel) []*domain.PhoneLead {
	leads := make([]*domain.PhoneLead, len(leadModels))
	for i := range leadModels {
		leads[i] = mappers.ToDomainPhoneLead(&leadModels[i])
	}
	return leads
}
