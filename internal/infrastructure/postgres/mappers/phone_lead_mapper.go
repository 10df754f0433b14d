package mappers

import (
	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/postgres/models"
)

func ToDomainPhoneLead(model *models.PhoneLeadModel) *domain.PhoneLead {
	return &domain.PhoneLead{
		ID:                  model.ID,
		Name:                model.Name,
		PhoneNumber:         model.PhoneNumber,
		SalesPageID:         model.SalesPageID,
		Source:              model.Source,
		Country:             model.Country,
		City:                model.City,
		DeviceType:          model.DeviceType,
		Notes:               model.Notes,
		IPAddress:           model.IPAddress,
		UserAgent:           model.UserAgent,
		DeadlineHours:       model.DeadlineHours,
		DeadlineAt:          model.DeadlineAt,
		IsExpired:           model.IsExpired,
		ExpiredAt:           model.ExpiredAt,
		IsTransferred:       model.IsTransferred,
		OriginalSalesPageID: model.OriginalSalesPageID,
		TransferredToUserID: model.TransferredToUserID,
		TransferredBy:       model.TransferredBy,
		TransferredAt:       model.TransferredAt,
		TransferReason:      model.TransferReason,
		IsContacted:         model.IsContacted,
		ContactedAt:         model.ContactedAt,
		IsArchived:          model.IsArchived,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

func ToGORMPhoneLead(lead *domain.PhoneLead) *models.PhoneLeadModel {
	return &models.PhoneLeadModel{
		ID:                  lead.ID,
		Name:                lead.Name,
		PhoneNumber:         lead.PhoneNumber,
		SalesPageID:         lead.SalesPageID,
		Source:              lead.Source,
		Country:             lead.Country,
		City:                lead.City,
		DeviceType:          lead.DeviceType,
		Notes:               lead.Notes,
		IPAddress:           lead.IPAddress,
		UserAgent:           lead.UserAgent,
		DeadlineHours:       lead.DeadlineHours,
		DeadlineAt:          lead.DeadlineAt,
		IsExpired:           lead.IsExpired,
		ExpiredAt:           lead.ExpiredAt,
		IsTransferred:       lead.IsTransferred,
		OriginalSalesPageID: lead.OriginalSalesPageID,
		TransferredToUserID: lead.TransferredToUserID,
		TransferredBy:       lead.TransferredBy,
		TransferredAt:       lead.TransferredAt,
		TransferReason:      lead.TransferReason,
		IsContacted:         lead.IsContacted,
		ContactedAt:         lead.ContactedAt,
		IsArchived:          lead.IsArchived,
		CreatedAt:           lead.CreatedAt,
		UpdatedAt:           lead.UpdatedAt,
	}
}
