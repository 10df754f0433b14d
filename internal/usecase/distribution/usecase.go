package distribution

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/metrics"
	distributiondto "github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/dto/distribution"
)

type DistributionUsecase interface {
	GetSnapshot(ctx context.Context) ([]*domain.DistributionRule, error)
	RouteVisitor(ctx context.Context, input *distributiondto.RouteVisitorInput) (*domain.RouteDecision, error)
	SaveRules(ctx context.Context, updates []*domain.RuleUpdate) ([]*domain.DistributionRule, error)
	GetRule(ctx context.Context, salesPageID string) (*domain.DistributionRule, error)
	// UpdateRule reports whether the page had no rule before.
	UpdateRule(ctx context.Context, update *domain.RuleUpdate) (*domain.DistributionRule, bool, error)
	ResetRules(ctx context.Context) ([]*domain.DistributionRule, error)
	RuleTotals(ctx context.Context) (domain.RuleTotals, error)
	PreviewAllocation(ctx context.Context, input *distributiondto.PreviewAllocationInput) ([]AllocationResult, error)
	Stats(ctx context.Context) (*distributiondto.StatsOutput, error)
}

type DefaultDistributionUsecase struct {
	ruleRepo     domain.DistributionRuleRepository
	visitRepo    domain.VisitRepository
	counter      domain.VisitCounter
	router       *Router
	metrics      *metrics.DistributionMetrics
	logger       *logger.Logger
	defaultPages []string
}

func NewDefaultDistributionUsecase(
	ruleRepo domain.DistributionRuleRepository,
	visitRepo domain.VisitRepository,
	counter domain.VisitCounter,
	router *Router,
	metrics *metrics.DistributionMetrics,
	logger *logger.Logger,
	defaultPages []string,
) *DefaultDistributionUsecase {
	if len(defaultPages) == 0 {
		defaultPages = DefaultSalesPages
	}
	return &DefaultDistributionUsecase{
		ruleRepo:     ruleRepo,
		visitRepo:    visitRepo,
		counter:      counter,
		router:       router,
		metrics:      metrics,
		logger:       logger,
		defaultPages: defaultPages,
	}
}

// GetSnapshot returns the configured rules ordered by priority desc. An
// empty rule table gets the default page set first.
func (uc *DefaultDistributionUsecase) GetSnapshot(ctx context.Context) ([]*domain.DistributionRule, error) {
	rules, err := uc.ruleRepo.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list distribution rules: %w", err)
	}
	if len(rules) == 0 {
		rules, err = uc.bootstrap(ctx)
		if err != nil {
			return nil, err
		}
	}
	sortByPriority(rules)
	return rules, nil
}

func (uc *DefaultDistributionUsecase) bootstrap(ctx context.Context) ([]*domain.DistributionRule, error) {
	defaults, err := DefaultRules(uc.defaultPages)
	if err != nil {
		return nil, err
	}
	rules, err := uc.ruleRepo.CreateDefaultsIfEmpty(ctx, defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap distribution rules: %w", err)
	}
	uc.metrics.RecordBootstrap()
	uc.logger.Info("distribution rules bootstrapped", "pages", len(rules))
	return rules, nil
}

func (uc *DefaultDistributionUsecase) RouteVisitor(ctx context.Context, input *distributiondto.RouteVisitorInput) (*domain.RouteDecision, error) {
	var existing *domain.BucketToken
	if input.Bucket != "" {
		token, err := domain.ParseBucketToken(input.Bucket)
		if err != nil {
			uc.logger.Debug("ignoring bucket cookie", "bucket", input.Bucket, "error", err)
		} else {
			existing = token
		}
	}

	channel := input.Channel
	if channel == "" {
		channel = domain.ChannelOther
	}

	rules, err := uc.GetSnapshot(ctx)
	if err != nil {
		uc.metrics.RecordRoutingFailure("snapshot")
		return nil, err
	}

	counts := uc.pageCounts(ctx, rules)

	decision, err := uc.router.Route(existing, channel, rules, counts)
	if err != nil {
		if errors.Is(err, domain.ErrNoActivePages) {
			uc.metrics.RecordRoutingFailure("no_active_pages")
		}
		return nil, err
	}

	// Tracking failures never block the redirect.
	visit := &domain.Visit{
		SalesPageID: decision.PageID,
		Channel:     channel,
		Sticky:      decision.Sticky,
		Referrer:    input.Referrer,
		UTMSource:   input.UTMSource,
		UTMMedium:   input.UTMMedium,
		UTMCampaign: input.UTMCampaign,
		GCLID:       input.GCLID,
		UserAgent:   input.UserAgent,
		IPAddress:   input.IPAddress,
	}
	if err := uc.visitRepo.CreateVisit(ctx, visit); err != nil {
		uc.logger.Warn("failed to record visit", "sales_page_id", decision.PageID, "error", err)
	}
	if err := uc.counter.Increment(ctx, decision.PageID); err != nil {
		uc.logger.Warn("failed to increment visit counter", "sales_page_id", decision.PageID, "error", err)
	}

	uc.metrics.RecordVisitRouted(decision.PageID, string(channel), decision.Sticky)
	return decision, nil
}

// pageCounts returns nil when the counter is unavailable, caps are then not
// enforced for this request.
func (uc *DefaultDistributionUsecase) pageCounts(ctx context.Context, rules []*domain.DistributionRule) map[string]domain.PageCounts {
	var capped []string
	for _, rule := range rules {
		if rule.DailyLimit != nil || rule.TotalLimit != nil {
			capped = append(capped, rule.SalesPageID)
		}
	}
	if len(capped) == 0 {
		return nil
	}
	counts, err := uc.counter.Counts(ctx, capped)
	if err != nil {
		uc.logger.Warn("failed to read visit counters", "error", err)
		return nil
	}
	return counts
}

func (uc *DefaultDistributionUsecase) SaveRules(ctx context.Context, updates []*domain.RuleUpdate) ([]*domain.DistributionRule, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no rules to save", domain.ErrInvalidRule)
	}
	for _, update := range updates {
		if err := validateRuleUpdate(update); err != nil {
			return nil, err
		}
	}
	for _, update := range updates {
		if _, err := uc.ruleRepo.UpsertRule(ctx, update); err != nil {
			return nil, fmt.Errorf("failed to save rule %s: %w", update.SalesPageID, err)
		}
	}
	uc.logger.Info("distribution rules saved", "count", len(updates))
	return uc.GetSnapshot(ctx)
}

func (uc *DefaultDistributionUsecase) GetRule(ctx context.Context, salesPageID string) (*domain.DistributionRule, error) {
	if salesPageID == "" {
		return nil, fmt.Errorf("%w: sales page id is required", domain.ErrInvalidRule)
	}
	rule, err := uc.ruleRepo.GetRuleByPage(ctx, salesPageID)
	if err != nil {
		if errors.Is(err, domain.ErrRuleNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get rule %s: %w", salesPageID, err)
	}
	return rule, nil
}

func (uc *DefaultDistributionUsecase) UpdateRule(ctx context.Context, update *domain.RuleUpdate) (*domain.DistributionRule, bool, error) {
	if err := validateRuleUpdate(update); err != nil {
		return nil, false, err
	}
	_, err := uc.ruleRepo.GetRuleByPage(ctx, update.SalesPageID)
	created := errors.Is(err, domain.ErrRuleNotFound)
	if err != nil && !created {
		return nil, false, fmt.Errorf("failed to look up rule %s: %w", update.SalesPageID, err)
	}

	rule, err := uc.ruleRepo.UpsertRule(ctx, update)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update rule %s: %w", update.SalesPageID, err)
	}
	if created {
		uc.logger.Info("distribution rule created", "sales_page_id", rule.SalesPageID)
	} else {
		uc.logger.Info("distribution rule updated", "sales_page_id", rule.SalesPageID)
	}
	return rule, created, nil
}

// ResetRules restores the default page set with equal weights and
// deactivates every other page.
func (uc *DefaultDistributionUsecase) ResetRules(ctx context.Context) ([]*domain.DistributionRule, error) {
	defaults, err := DefaultRules(uc.defaultPages)
	if err != nil {
		return nil, err
	}
	if err := uc.ruleRepo.ReplaceWeights(ctx, defaults); err != nil {
		return nil, fmt.Errorf("failed to reset distribution rules: %w", err)
	}
	uc.logger.Info("distribution rules reset", "pages", len(defaults))
	return uc.GetSnapshot(ctx)
}

func (uc *DefaultDistributionUsecase) RuleTotals(ctx context.Context) (domain.RuleTotals, error) {
	rules, err := uc.GetSnapshot(ctx)
	if err != nil {
		return domain.RuleTotals{}, err
	}
	return Totals(rules), nil
}

// PreviewAllocation splits total over the rules a fresh visitor of the
// channel could be routed to, without consulting visit counts.
func (uc *DefaultDistributionUsecase) PreviewAllocation(ctx context.Context, input *distributiondto.PreviewAllocationInput) ([]AllocationResult, error) {
	rules, err := uc.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	channel := input.Channel
	if channel == "" {
		channel = domain.ChannelOther
	}
	eligible := EligibleRules(channel, rules, nil)
	items := make([]AllocationItem, len(eligible))
	for i, rule := range eligible {
		items[i] = AllocationItem{ID: rule.SalesPageID, Weight: rule.Weight(channel)}
	}

	results, err := Allocate(items, input.Total)
	if err != nil {
		return nil, err
	}
	uc.metrics.RecordAllocation(string(channel))
	return results, nil
}

func (uc *DefaultDistributionUsecase) Stats(ctx context.Context) (*distributiondto.StatsOutput, error) {
	rules, err := uc.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	pageIDs := make([]string, len(rules))
	for i, rule := range rules {
		pageIDs[i] = rule.SalesPageID
	}
	counts, err := uc.counter.Counts(ctx, pageIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to read visit counters: %w", err)
	}

	totals := Totals(rules)
	out := &distributiondto.StatsOutput{
		Pages:       make([]distributiondto.PageStats, len(rules)),
		GoogleTotal: totals.Google,
		OtherTotal:  totals.Other,
		GoogleExact: totals.GoogleExact,
		OtherExact:  totals.OtherExact,
	}
	for i, rule := range rules {
		c := counts[rule.SalesPageID]
		out.Pages[i] = distributiondto.PageStats{
			SalesPageID:  rule.SalesPageID,
			GoogleWeight: rule.GoogleWeight,
			OtherWeight:  rule.OtherWeight,
			IsActive:     rule.IsActive,
			DailyLimit:   rule.DailyLimit,
			TotalLimit:   rule.TotalLimit,
			TodayVisits:  c.Today,
			TotalVisits:  c.Total,
			LimitReached: rule.LimitReached(c),
		}
	}
	return out, nil
}

func validateRuleUpdate(update *domain.RuleUpdate) error {
	if update == nil || update.SalesPageID == "" {
		return fmt.Errorf("%w: sales page id is required", domain.ErrInvalidRule)
	}
	if err := validateWeight("googleWeight", update.SalesPageID, update.GoogleWeight); err != nil {
		return err
	}
	if err := validateWeight("otherWeight", update.SalesPageID, update.OtherWeight); err != nil {
		return err
	}
	if update.DailyLimit != nil && *update.DailyLimit < 0 {
		return fmt.Errorf("%w: dailyLimit must not be negative (page %s)", domain.ErrInvalidRule, update.SalesPageID)
	}
	if update.TotalLimit != nil && *update.TotalLimit < 0 {
		return fmt.Errorf("%w: totalLimit must not be negative (page %s)", domain.ErrInvalidRule, update.SalesPageID)
	}
	return nil
}

func validateWeight(name, salesPageID string, w *float64) error {
	if w != nil && (*w < 0 || *w > 100 || math.IsNaN(*w)) {
		return fmt.Errorf("%w: %s must be between 0 and 100 (page %s: %v)", domain.ErrInvalidRule, name, salesPageID, *w)
	}
	return nil
}

func sortByPriority(rules []*domain.DistributionRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return rules[i].SalesPageID < rules[j].SalesPageID
	})
}
