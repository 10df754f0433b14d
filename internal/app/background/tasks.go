package background

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/lead"
)

const defaultSweepInterval = time.Minute

type BackgroundTasks struct {
	LeadUsecase   lead.LeadUsecase
	SweepInterval time.Duration
	logger        *logger.Logger
}

func NewBackgroundTasks(leadUC lead.LeadUsecase, sweepInterval time.Duration, log *logger.Logger) *BackgroundTasks {
	if sweepInterval <= 0 {
		sweepInterval = defaultSweepInterval
	}
	return &BackgroundTasks{
		LeadUsecase:   leadUC,
		SweepInterval: sweepInterval,
		logger:        log.With("component", "background"),
	}
}

// StartAll runs every task until ctx is cancelled. The returned channel is
// closed once all of them have stopped.
func (bt *BackgroundTasks) StartAll(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		bt.startLeadExpirySweep(ctx)
	}()
	return done
}

func (bt *BackgroundTasks) startLeadExpirySweep(ctx context.Context) {
	ticker := time.NewTicker(bt.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			out, err := bt.LeadUsecase.ExpireDue(ctx)
			if err != nil {
				if ctx.Err() == nil {
					bt.logger.Error("lead expiry sweep failed", "error", err)
				}
				continue
			}
			if out.Expired > 0 {
				bt.logger.Info("expired due leads", "checked", out.Checked, "expired", out.Expired)
			}
		}
	}
}
