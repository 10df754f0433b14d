package mappers

import (
	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/postgres/models"
)

func ToDomainDistributionRule(model *models.DistributionRuleModel) *domain.DistributionRule {
	return &domain.DistributionRule{
		ID:             model.ID,
		SalesPageID:    model.SalesPageID,
		GoogleWeight:   model.GoogleWeight,
		OtherWeight:    model.OtherWeight,
		IsActive:       model.IsActive,
		DailyLimit:     model.DailyLimit,
		TotalLimit:     model.TotalLimit,
		Priority:       model.Priority,
		AutoDistribute: model.AutoDistribute,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

func ToGORMDistributionRule(rule *domain.DistributionRule) *models.DistributionRuleModel {
	return &models.DistributionRuleModel{
		ID:             rule.ID,
		SalesPageID:    rule.SalesPageID,
		GoogleWeight:   rule.GoogleWeight,
		OtherWeight:    rule.OtherWeight,
		IsActive:       rule.IsActive,
		DailyLimit:     rule.DailyLimit,
		TotalLimit:     rule.TotalLimit,
		Priority:       rule.Priority,
		AutoDistribute: rule.AutoDistribute,
		CreatedAt:      rule.CreatedAt,
		UpdatedAt:      rule.UpdatedAt,
	}
}
