package lead

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/metrics"
	leaddto "github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/dto/lead"
)

type LeadUsecase interface {
	CreateLead(ctx context.Context, input *leaddto.CreateLeadInput) (*domain.PhoneLead, error)
	CaptureLead(ctx context.Context, fields *leaddto.LeadFields) (*domain.PhoneLead, error)
	AddManualLead(ctx context.Context, input *leaddto.ManualLeadInput, operator domain.Operator) (*domain.PhoneLead, error)

	CheckExpiry(lead *domain.PhoneLead) bool
	ExpireLead(ctx context.Context, lead *domain.PhoneLead) (*domain.PhoneLead, error)
	ExpireDue(ctx context.Context) (*leaddto.SweepOutput, error)
	Withdraw(ctx context.Context, leadID string, operator domain.Operator) (*domain.PhoneLead, error)

	GetLead(ctx context.Context, leadID string) (*domain.PhoneLead, error)
	GetLeads(ctx context.Context, input *leaddto.GetLeadsInput) (*leaddto.GetLeadsOutput, error)
	MarkContacted(ctx context.Context, leadID string) (*domain.PhoneLead, error)
	SetArchived(ctx context.Context, leadID string, archived bool) (*domain.PhoneLead, error)

	AssignOwner(ctx context.Context, salesPageID, userID string, operator domain.Operator) (*domain.PageOwner, error)
	GetActiveOwner(ctx context.Context, salesPageID string) (*domain.PageOwner, error)
}

type Options struct {
	// Topic for lead events, empty disables publishing
	Topic                string
	CaptureDeadlineHours int
	ManualDeadlineHours  int
}

type DefaultLeadUsecase struct {
	leadRepo  domain.PhoneLeadRepository
	ownerRepo domain.PageOwnerRepository
	publisher domain.PublisherPort
	metrics   *metrics.DistributionMetrics
	logger    *logger.Logger
	opts      Options
	now       func() time.Time
}

func NewDefaultLeadUsecase(
	leadRepo domain.PhoneLeadRepository,
	ownerRepo domain.PageOwnerRepository,
	publisher domain.PublisherPort,
	metrics *metrics.DistributionMetrics,
	logger *logger.Logger,
	opts Options,
) *DefaultLeadUsecase {
	if opts.CaptureDeadlineHours <= 0 {
		opts.CaptureDeadlineHours = 6
	}
	if opts.ManualDeadlineHours <= 0 {
		opts.ManualDeadlineHours = 6
	}
	return &DefaultLeadUsecase{
		leadRepo:  leadRepo,
		ownerRepo: ownerRepo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		opts:      opts,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source, used by tests.
func (uc *DefaultLeadUsecase) WithClock(now func() time.Time) *DefaultLeadUsecase {
	uc.now = now
	return uc
}
