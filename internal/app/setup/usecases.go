package setup

import (
	"fmt"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/distribution"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/lead"
)

type UseCases struct {
	DistributionUsecase distribution.DistributionUsecase
	LeadUsecase         lead.LeadUsecase
}

func InitializeUseCases(deps *Dependencies, m *metrics.DistributionMetrics, log *logger.Logger) (*UseCases, error) {
	router, err := distribution.NewDefaultRouter()
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	distributionUsecase := distribution.NewDefaultDistributionUsecase(
		deps.Repositories.RuleRepo,
		deps.Repositories.VisitRepo,
		deps.VisitCounter,
		router,
		m,
		log.With("usecase", "distribution"),
		deps.Config.Distribution.DefaultPages,
	)

	topic := ""
	if deps.Publisher != nil {
		topic = deps.Config.KafkaService.LeadTopic
	}
	leadUsecase := lead.NewDefaultLeadUsecase(
		deps.Repositories.LeadRepo,
		deps.Repositories.OwnerRepo,
		deps.Publisher,
		m,
		log.With("usecase", "lead"),
		lead.Options{
			Topic:                topic,
			CaptureDeadlineHours: deps.Config.Leads.CaptureDeadlineHours,
			ManualDeadlineHours:  deps.Config.Leads.ManualDeadlineHours,
		},
	)

	return &UseCases{
		DistributionUsecase: distributionUsecase,
		LeadUsecase:         leadUsecase,
	}, nil
}
