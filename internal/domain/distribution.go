package domain

import (
	"context"
	"strings"
	"time"
)

type Channel string

const (
	ChannelGoogle Channel = "google"
	ChannelOther  Channel = "other"
)

func ParseChannel(s string) (Channel, bool) {
	switch Channel(strings.ToLower(strings.TrimSpace(s))) {
	case ChannelGoogle:
		return ChannelGoogle, true
	case ChannelOther:
		return ChannelOther, true
	}
	return "", false
}

type DistributionRule struct {
	ID             string
	SalesPageID    string
	GoogleWeight   float64
	OtherWeight    float64
	IsActive       bool
	DailyLimit     *int
	TotalLimit     *int
	Priority       int
	AutoDistribute bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Weight returns the weight field that applies to the channel.
func (r *DistributionRule) Weight(channel Channel) float64 {
	if channel == ChannelGoogle {
		return r.GoogleWeight
	}
	return r.OtherWeight
}

// PageCounts are routed visits of a sales page, used against rule caps.
type PageCounts struct {
	Today int64
	Total int64
}

// LimitReached reports whether any configured cap is exhausted.
func (r *DistributionRule) LimitReached(c PageCounts) bool {
	if r.DailyLimit != nil && c.Today >= int64(*r.DailyLimit) {
		return true
	}
	if r.TotalLimit != nil && c.Total >= int64(*r.TotalLimit) {
		return true
	}
	return false
}

// RuleUpdate is a partial update of a rule, nil fields stay untouched.
type RuleUpdate struct {
	SalesPageID    string
	GoogleWeight   *float64
	OtherWeight    *float64
	IsActive       *bool
	DailyLimit     *int
	TotalLimit     *int
	ClearLimits    bool
	Priority       *int
	AutoDistribute *bool
}

type RuleTotals struct {
	Google      float64
	Other       float64
	GoogleExact bool
	OtherExact  bool
}

type DistributionRuleRepository interface {
	ListRules(ctx context.Context) ([]*DistributionRule, error)
	GetRuleByPage(ctx context.Context, salesPageID string) (*DistributionRule, error)
	// CreateDefaultsIfEmpty inserts rules only when the table has no rows
	// and returns the stored rule set either way.
	CreateDefaultsIfEmpty(ctx context.Context, rules []*DistributionRule) ([]*DistributionRule, error)
	UpsertRule(ctx context.Context, update *RuleUpdate) (*DistributionRule, error)
	ReplaceWeights(ctx context.Context, rules []*DistributionRule) error
}
