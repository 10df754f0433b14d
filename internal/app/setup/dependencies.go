package setup

import (
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/config"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/counter"
	publisher "github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/postgres/repository"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.DistributionConfig
	DB           *gorm.DB
	Publisher    domain.PublisherPort
	VisitCounter domain.VisitCounter
	Repositories *Repositories

	closers []func() error
}

type Repositories struct {
	RuleRepo  domain.DistributionRuleRepository
	VisitRepo domain.VisitRepository
	LeadRepo  domain.PhoneLeadRepository
	OwnerRepo domain.PageOwnerRepository
}

func InitializeDependencies(cfg *config.DistributionConfig, log *logger.Logger) (*Dependencies, error) {
	db, err := postgres.InitDB(cfg, log)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Config: cfg,
		DB:     db,
		Repositories: &Repositories{
			RuleRepo:  repository.NewDefaultDistributionRuleRepository(db),
			VisitRepo: repository.NewDefaultVisitRepository(db),
			LeadRepo:  repository.NewDefaultPhoneLeadRepository(db),
			OwnerRepo: repository.NewDefaultPageOwnerRepository(db),
		},
	}

	if brokers := cfg.KafkaService.Brokers(); brokers != nil {
		pub := publisher.NewDefaultKafkaPublisher(brokers)
		deps.Publisher = pub
		deps.closers = append(deps.closers, pub.Close)
		log.Info("lead events enabled", "brokers", brokers, "topic", cfg.KafkaService.LeadTopic)
	} else {
		log.Warn("kafka is not configured, lead events are disabled")
	}

	visitCounter, err := initVisitCounter(cfg, db, log)
	if err != nil {
		return nil, fmt.Errorf("visit counter: %w", err)
	}
	deps.VisitCounter = visitCounter

	if sqlDB, err := db.DB(); err == nil {
		deps.closers = append(deps.closers, sqlDB.Close)
	}
	return deps, nil
}

// initVisitCounter prefers redis and counts from the visits table without it.
func initVisitCounter(cfg *config.DistributionConfig, db *gorm.DB, log *logger.Logger) (domain.VisitCounter, error) {
	if cfg.Redis.Addr == "" {
		log.Info("redis is not configured, counting visits in the database")
		return repository.NewSQLVisitCounter(db), nil
	}
	redisCounter, err := counter.NewRedisVisitCounter(cfg.Redis)
	if err != nil {
		return nil, err
	}
	log.Info("counting visits in redis", "addr", cfg.Redis.Addr)
	return redisCounter, nil
}

func (d *Dependencies) Close() error {
	var errs []error
	if closer, ok := d.VisitCounter.(interface{ Close() error }); ok {
		errs = append(errs, closer.Close())
	}
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i]())
	}
	return errors.Join(errs...)
}
