package domain

import (
	"context"
	"time"
)

type Visit struct {
	ID          string
	SalesPageID string
	Channel     Channel
	Sticky      bool
	Referrer    string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	GCLID       string
	UserAgent   string
	IPAddress   string
	CreatedAt   time.Time
}

type VisitRepository interface {
	CreateVisit(ctx context.Context, visit *Visit) error
}

// VisitCounter tracks routed visits per sales page for daily and total caps.
type VisitCounter interface {
	Counts(ctx context.Context, pageIDs []string) (map[string]PageCounts, error)
	Increment(ctx context.Context, pageID string) error
}
