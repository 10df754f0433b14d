package postgres

import (
	"fmt"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/config"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GormConfig translates driver errors so unique violations surface as
// gorm.ErrDuplicatedKey.
func GormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// InitDB opens the database and applies file migrations, or automigrates
// the models when no migrations path is configured.
func InitDB(cfg *config.DistributionConfig, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DistributionDB.Dsn), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to init db: %w", err)
	}

	if cfg.DistributionDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.DistributionDB.MigrationsPath, log); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return db, nil
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to automigrate: %w", err)
	}
	log.Info("distribution schema automigrated")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.DistributionRuleModel{},
		&models.PhoneLeadModel{},
		&models.PageOwnerModel{},
		&models.VisitModel{},
	)
}
