package distribution

import (
	"context"
	"errors"
	"testing"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/logger"
	distributiondto "github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/dto/distribution"
	"github.com/stretchr/testify/require"
)

type fakeRuleRepo struct {
	rules          []*domain.DistributionRule
	bootstrapCalls int
	listErr        error
}

func (f *fakeRuleRepo) ListRules(ctx context.Context) ([]*domain.DistributionRule, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.DistributionRule, len(f.rules))
	for i, r := range f.rules {
		cp := *r
		out[i] = &cp
	}
	return out, nil
}

func (f *fakeRuleRepo) GetRuleByPage(ctx context.Context, salesPageID string) (*domain.DistributionRule, error) {
	for _, r := range f.rules {
		if r.SalesPageID == salesPageID {
			return r, nil
		}
	}
	return nil, domain.ErrRuleNotFound
}

func (f *fakeRuleRepo) CreateDefaultsIfEmpty(ctx context.Context, rules []*domain.DistributionRule) ([]*domain.DistributionRule, error) {
	f.bootstrapCalls++
	if len(f.rules) == 0 {
		f.rules = rules
	}
	return f.ListRules(ctx)
}

func (f *fakeRuleRepo) UpsertRule(ctx context.Context, update *domain.RuleUpdate) (*domain.DistributionRule, error) {
	target, _ := f.GetRuleByPage(ctx, update.SalesPageID)
	if target == nil {
		target = &domain.DistributionRule{SalesPageID: update.SalesPageID, IsActive: true}
		f.rules = append(f.rules, target)
	}
	if update.GoogleWeight != nil {
		target.GoogleWeight = *update.GoogleWeight
	}
	if update.OtherWeight != nil {
		target.OtherWeight = *update.OtherWeight
	}
	if update.IsActive != nil {
		target.IsActive = *update.IsActive
	}
	if update.Priority != nil {
		target.Priority = *update.Priority
	}
	if update.DailyLimit != nil {
		target.DailyLimit = update.DailyLimit
	}
	if update.TotalLimit != nil {
		target.TotalLimit = update.TotalLimit
	}
	return target, nil
}

func (f *fakeRuleRepo) ReplaceWeights(ctx context.Context, rules []*domain.DistributionRule) error {
	byPage := make(map[string]*domain.DistributionRule, len(rules))
	for _, r := range rules {
		byPage[r.SalesPageID] = r
	}
	for _, existing := range f.rules {
		if _, ok := byPage[existing.SalesPageID]; !ok {
			existing.IsActive = false
		}
	}
	for _, r := range rules {
		target, _ := f.GetRuleByPage(ctx, r.SalesPageID)
		if target == nil {
			f.rules = append(f.rules, r)
			continue
		}
		target.GoogleWeight, target.OtherWeight = r.GoogleWeight, r.OtherWeight
		target.IsActive, target.Priority = true, r.Priority
	}
	return nil
}

type fakeVisitRepo struct {
	visits []*domain.Visit
	err    error
}

func (f *fakeVisitRepo) CreateVisit(ctx context.Context, visit *domain.Visit) error {
	if f.err != nil {
		return f.err
	}
	f.visits = append(f.visits, visit)
	return nil
}

type fakeCounter struct {
	counts map[string]domain.PageCounts
	err    error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]domain.PageCounts{}}
}

func (f *fakeCounter) Counts(ctx context.Context, pageIDs []string) (map[string]domain.PageCounts, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]domain.PageCounts, len(pageIDs))
	for _, id := range pageIDs {
		out[id] = f.counts[id]
	}
	return out, nil
}

func (f *fakeCounter) Increment(ctx context.Context, pageID string) error {
	if f.err != nil {
		return f.err
	}
	c := f.counts[pageID]
	c.Today++
	c.Total++
	f.counts[pageID] = c
	return nil
}

type fixture struct {
	uc      *DefaultDistributionUsecase
	rules   *fakeRuleRepo
	visits  *fakeVisitRepo
	counter *fakeCounter
}

func newFixture(rnd float64, rules ...*domain.DistributionRule) *fixture {
	f := &fixture{
		rules:   &fakeRuleRepo{rules: rules},
		visits:  &fakeVisitRepo{},
		counter: newFakeCounter(),
	}
	f.uc = NewDefaultDistributionUsecase(
		f.rules, f.visits, f.counter,
		NewRouter(fixedRandom(rnd), fixedToken),
		nil, logger.NewNop(), nil,
	)
	return f
}

func TestGetSnapshot_BootstrapsDefaults(t *testing.T) {
	f := newFixture(0)

	rules, err := f.uc.GetSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, len(DefaultSalesPages))
	require.Equal(t, 1, f.rules.bootstrapCalls)

	pages := make([]string, len(rules))
	google, other := 0.0, 0.0
	for i, r := range rules {
		pages[i] = r.SalesPageID
		google += r.GoogleWeight
		other += r.OtherWeight
	}
	require.Equal(t, DefaultSalesPages, pages)
	require.InDelta(t, 100.0, google, 1e-9)
	require.InDelta(t, 100.0, other, 1e-9)

	_, err = f.uc.GetSnapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, f.rules.bootstrapCalls)
}

func TestGetSnapshot_OrderedByPriority(t *testing.T) {
	f := newFixture(0, rule("a", 1, 1, 1), rule("b", 1, 1, 9), rule("c", 1, 1, 5))

	rules, err := f.uc.GetSnapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, "b", rules[0].SalesPageID)
	require.Equal(t, "c", rules[1].SalesPageID)
	require.Equal(t, "a", rules[2].SalesPageID)
}

func TestGetSnapshot_RepositoryError(t *testing.T) {
	f := newFixture(0)
	f.rules.listErr = errors.New("connection refused")

	_, err := f.uc.GetSnapshot(context.Background())
	require.ErrorContains(t, err, "connection refused")
}

func TestRouteVisitor_FreshAndSticky(t *testing.T) {
	f := newFixture(0.9, rule("sales1", 50, 50, 2), rule("sales2", 50, 50, 1))
	ctx := context.Background()

	decision, err := f.uc.RouteVisitor(ctx, &distributiondto.RouteVisitorInput{
		Channel:  domain.ChannelGoogle,
		Referrer: "https://www.google.com/",
	})
	require.NoError(t, err)
	require.Equal(t, "sales2", decision.PageID)
	require.False(t, decision.Sticky)
	require.Equal(t, "sales2.newtoken", decision.Bucket.String())

	decision, err = f.uc.RouteVisitor(ctx, &distributiondto.RouteVisitorInput{
		Bucket:  decision.Bucket.String(),
		Channel: domain.ChannelGoogle,
	})
	require.NoError(t, err)
	require.Equal(t, "sales2", decision.PageID)
	require.True(t, decision.Sticky)

	require.Len(t, f.visits.visits, 2)
	require.Equal(t, "https://www.google.com/", f.visits.visits[0].Referrer)
	require.True(t, f.visits.visits[1].Sticky)
	require.Equal(t, int64(2), f.counter.counts["sales2"].Total)
}

func TestRouteVisitor_MalformedBucketIsIgnored(t *testing.T) {
	f := newFixture(0, rule("sales1", 50, 50, 1))

	decision, err := f.uc.RouteVisitor(context.Background(), &distributiondto.RouteVisitorInput{Bucket: "garbage"})
	require.NoError(t, err)
	require.Equal(t, "sales1", decision.PageID)
	require.False(t, decision.Sticky)
	require.Equal(t, domain.ChannelOther, f.visits.visits[0].Channel)
}

func TestRouteVisitor_NoActivePagesDoesNotBootstrap(t *testing.T) {
	inactive := rule("sales1", 50, 50, 1)
	inactive.IsActive = false
	f := newFixture(0, inactive)

	_, err := f.uc.RouteVisitor(context.Background(), &distributiondto.RouteVisitorInput{Channel: domain.ChannelOther})
	require.ErrorIs(t, err, domain.ErrNoActivePages)
	require.Zero(t, f.rules.bootstrapCalls)
	require.Empty(t, f.visits.visits)
}

func TestRouteVisitor_TrackingFailuresDoNotBlock(t *testing.T) {
	f := newFixture(0, rule("sales1", 50, 50, 1))
	f.visits.err = errors.New("insert failed")
	f.counter.err = errors.New("redis down")

	decision, err := f.uc.RouteVisitor(context.Background(), &distributiondto.RouteVisitorInput{})
	require.NoError(t, err)
	require.Equal(t, "sales1", decision.PageID)
}

func TestRouteVisitor_DailyCapMovesTraffic(t *testing.T) {
	capped := rule("sales1", 90, 90, 2)
	capped.DailyLimit = intPtr(2)
	f := newFixture(0, capped, rule("sales2", 10, 10, 1))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		decision, err := f.uc.RouteVisitor(ctx, &distributiondto.RouteVisitorInput{})
		require.NoError(t, err)
		require.Equal(t, "sales1", decision.PageID)
	}

	decision, err := f.uc.RouteVisitor(ctx, &distributiondto.RouteVisitorInput{})
	require.NoError(t, err)
	require.Equal(t, "sales2", decision.PageID)
}

func TestUpdateRule_Validation(t *testing.T) {
	f := newFixture(0, rule("sales1", 50, 50, 1))
	ctx := context.Background()

	tooHeavy := 120.0
	_, _, err := f.uc.UpdateRule(ctx, &domain.RuleUpdate{SalesPageID: "sales1", GoogleWeight: &tooHeavy})
	require.ErrorIs(t, err, domain.ErrInvalidRule)
	require.ErrorContains(t, err, "googleWeight")

	_, _, err = f.uc.UpdateRule(ctx, &domain.RuleUpdate{})
	require.ErrorIs(t, err, domain.ErrInvalidRule)

	_, _, err = f.uc.UpdateRule(ctx, &domain.RuleUpdate{SalesPageID: "sales1", DailyLimit: intPtr(-1)})
	require.ErrorIs(t, err, domain.ErrInvalidRule)

	weight := 30.0
	updated, created, err := f.uc.UpdateRule(ctx, &domain.RuleUpdate{SalesPageID: "sales1", OtherWeight: &weight})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, 30.0, updated.OtherWeight)
	require.Equal(t, 50.0, updated.GoogleWeight)
}

func TestUpdateRule_ReportsCreatedPage(t *testing.T) {
	f := newFixture(0, rule("sales1", 50, 50, 1))
	ctx := context.Background()

	weight := 10.0
	got, created, err := f.uc.UpdateRule(ctx, &domain.RuleUpdate{SalesPageID: "sales12", GoogleWeight: &weight})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "sales12", got.SalesPageID)

	_, created, err = f.uc.UpdateRule(ctx, &domain.RuleUpdate{SalesPageID: "sales12", OtherWeight: &weight})
	require.NoError(t, err)
	require.False(t, created)
}

func TestGetRule(t *testing.T) {
	f := newFixture(0, rule("sales1", 50, 50, 1))
	ctx := context.Background()

	got, err := f.uc.GetRule(ctx, "sales1")
	require.NoError(t, err)
	require.Equal(t, 50.0, got.GoogleWeight)

	_, err = f.uc.GetRule(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrRuleNotFound)

	_, err = f.uc.GetRule(ctx, "")
	require.ErrorIs(t, err, domain.ErrInvalidRule)
}

func TestSaveRules_RejectsWholeBatchOnInvalidEntry(t *testing.T) {
	f := newFixture(0, rule("sales1", 50, 50, 1))
	ok, bad := 10.0, -1.0

	_, err := f.uc.SaveRules(context.Background(), []*domain.RuleUpdate{
		{SalesPageID: "sales1", GoogleWeight: &ok},
		{SalesPageID: "sales2", OtherWeight: &bad},
	})
	require.ErrorIs(t, err, domain.ErrInvalidRule)
	require.Equal(t, 50.0, f.rules.rules[0].GoogleWeight)
	require.Len(t, f.rules.rules, 1)
}

func TestResetRules(t *testing.T) {
	f := newFixture(0, rule("legacy", 100, 100, 50), rule("sales1", 1, 1, 1))

	rules, err := f.uc.ResetRules(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, len(DefaultSalesPages)+1)

	totals, err := f.uc.RuleTotals(context.Background())
	require.NoError(t, err)
	require.True(t, totals.GoogleExact)
	require.True(t, totals.OtherExact)

	legacy, err := f.rules.GetRuleByPage(context.Background(), "legacy")
	require.NoError(t, err)
	require.False(t, legacy.IsActive)
}

func TestPreviewAllocation(t *testing.T) {
	f := newFixture(0, rule("sales1", 60, 0, 2), rule("sales2", 40, 100, 1))

	results, err := f.uc.PreviewAllocation(context.Background(), &distributiondto.PreviewAllocationInput{
		Channel: domain.ChannelGoogle,
		Total:   11,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "sales1", results[0].ID)
	require.Equal(t, 7, results[0].Count)
	require.Equal(t, 4, results[1].Count)

	results, err = f.uc.PreviewAllocation(context.Background(), &distributiondto.PreviewAllocationInput{
		Channel: domain.ChannelOther,
		Total:   5,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 5, results[0].Count)

	_, err = f.uc.PreviewAllocation(context.Background(), &distributiondto.PreviewAllocationInput{
		Channel: domain.ChannelGoogle,
		Total:   0,
	})
	require.ErrorIs(t, err, domain.ErrNonPositiveTotal)
}

func TestStats(t *testing.T) {
	capped := rule("sales1", 70, 70, 2)
	capped.TotalLimit = intPtr(3)
	f := newFixture(0, capped, rule("sales2", 30, 30, 1))
	f.counter.counts["sales1"] = domain.PageCounts{Today: 1, Total: 3}

	stats, err := f.uc.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats.Pages, 2)
	require.Equal(t, "sales1", stats.Pages[0].SalesPageID)
	require.Equal(t, int64(3), stats.Pages[0].TotalVisits)
	require.True(t, stats.Pages[0].LimitReached)
	require.False(t, stats.Pages[1].LimitReached)
	require.True(t, stats.GoogleExact)
}
