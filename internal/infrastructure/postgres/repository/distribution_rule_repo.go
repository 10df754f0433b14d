package repository

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultDistributionRuleRepository struct {
	db *gorm.DB
}

func NewDefaultDistributionRuleRepository(db *gorm.DB) *DefaultDistributionRuleRepository {
	return &DefaultDistributionRuleRepository{db: db}
}

func (r *DefaultDistributionRuleRepository) ListRules(ctx context.Context) ([]*domain.DistributionRule, error) {
	return listRules(r.db.WithContext(ctx))
}

func listRules(db *gorm.DB) ([]*domain.DistributionRule, error) {
	var ruleModels []models.DistributionRuleModel
	if err := db.Order("priority DESC").Order("sales_page_id ASC").Find(&ruleModels).Error; err != nil {
		return nil, err
	}
	rules := make([]*domain.DistributionRule, len(ruleModels))
	for i := range ruleModels {
		rules[i] = mappers.ToDomainDistributionRule(&ruleModels[i])
	}
	return rules, nil
}

func (r *DefaultDistributionRuleRepository) GetRuleByPage(ctx context.Context, salesPageID string) (*domain.DistributionRule, error) {
	var ruleModel models.DistributionRuleModel
	err := r.db.WithContext(ctx).Where("sales_page_id = ?", salesPageID).First(&ruleModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRuleNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainDistributionRule(&ruleModel), nil
}

func (r *DefaultDistributionRuleRepository) CreateDefaultsIfEmpty(ctx context.Context, rules []*domain.DistributionRule) ([]*domain.DistributionRule, error) {
	var stored []*domain.DistributionRule
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.DistributionRuleModel{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			ruleModels := make([]*models.DistributionRuleModel, len(rules))
			for i, rule := range rules {
				ruleModels[i] = mappers.ToGORMDistributionRule(rule)
				ruleModels[i].ID = uuid.New().String()
			}
			// A concurrent bootstrap may have inserted the same pages.
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ruleModels).Error; err != nil {
				return err
			}
		}
		var err error
		stored, err = listRules(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *DefaultDistributionRuleRepository) UpsertRule(ctx context.Context, update *domain.RuleUpdate) (*domain.DistributionRule, error) {
	var stored models.DistributionRuleModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("sales_page_id = ?", update.SalesPageID).First(&stored).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stored = models.DistributionRuleModel{
				ID:          uuid.New().String(),
				SalesPageID: update.SalesPageID,
				IsActive:    true,
			}
			applyRuleUpdate(&stored, update)
			return tx.Create(&stored).Error
		}
		if err != nil {
			return err
		}

		updates := ruleUpdateColumns(update)
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&models.DistributionRuleModel{}).
			Where("id = ?", stored.ID).
			Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", stored.ID).First(&stored).Error
	})
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainDistributionRule(&stored), nil
}

// ReplaceWeights writes weights, activity and priority of the given pages
// and deactivates every page not in the set.
func (r *DefaultDistributionRuleRepository) ReplaceWeights(ctx context.Context, rules []*domain.DistributionRule) error {
	pages := make([]string, len(rules))
	ruleModels := make([]*models.DistributionRuleModel, len(rules))
	for i, rule := range rules {
		pages[i] = rule.SalesPageID
		ruleModels[i] = mappers.ToGORMDistributionRule(rule)
		ruleModels[i].ID = uuid.New().String()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.DistributionRuleModel{}).
			Where("sales_page_id NOT IN ?", pages).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sales_page_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"google_weight", "other_weight", "is_active", "priority", "auto_distribute", "updated_at"}),
		}).Create(&ruleModels).Error
	})
}

func applyRuleUpdate(model *models.DistributionRuleModel, update *domain.RuleUpdate) {
	if update.GoogleWeight != nil {
		model.GoogleWeight = *update.GoogleWeight
	}
	if update.OtherWeight != nil {
		model.OtherWeight = *update.OtherWeight
	}
	if update.IsActive != nil {
		model.IsActive = *update.IsActive
	}
	if update.DailyLimit != nil {
		model.DailyLimit = update.DailyLimit
	}
	if update.TotalLimit != nil {
		model.TotalLimit = update.TotalLimit
	}
	if update.Priority != nil {
		model.Priority = *update.Priority
	}
	if update.AutoDistribute != nil {
		model.AutoDistribute = *update.AutoDistribute
	}
}

func ruleUpdateColumns(update *domain.RuleUpdate) map[string]interface{} {
	updates := map[string]interface{}{}
	if update.GoogleWeight != nil {
		updates["google_weight"] = *update.GoogleWeight
	}
	if update.OtherWeight != nil {
		updates["other_weight"] = *update.OtherWeight
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}
	if update.ClearLimits {
		updates["daily_limit"] = nil
		updates["total_limit"] = nil
	}
	if update.DailyLimit != nil {
		updates["daily_limit"] = *update.DailyLimit
	}
	if update.TotalLimit != nil {
		updates["total_limit"] = *update.TotalLimit
	}
	if update.Priority != nil {
		updates["priority"] = *update.Priority
	}
	if update.AutoDistribute != nil {
		updates["auto_distribute"] = *update.AutoDistribute
	}
	return updates
}
