package distribution

import (
	"testing"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/stretchr/testify/require"
)

func fixedRandom(v float64) func() float64 {
	return func() float64 { return v }
}

func fixedToken() string { return "newtoken" }

func intPtr(v int) *int { return &v }

func rule(page string, google, other float64, priority int) *domain.DistributionRule {
	return &domain.DistributionRule{
		SalesPageID:  page,
		GoogleWeight: google,
		OtherWeight:  other,
		IsActive:     true,
		Priority:     priority,
	}
}

func TestRouter_StickyBucketKeepsPage(t *testing.T) {
	router := NewRouter(fixedRandom(0), fixedToken)
	bucket := &domain.BucketToken{PageID: "sales3", ID: "abc"}

	rules := []*domain.DistributionRule{
		rule("sales1", 80, 80, 3),
		rule("sales2", 10, 10, 2),
		rule("sales3", 10, 10, 1),
	}
	decision, err := router.Route(bucket, domain.ChannelGoogle, rules, nil)
	require.NoError(t, err)
	require.Equal(t, "sales3", decision.PageID)
	require.True(t, decision.Sticky)
	require.Equal(t, *bucket, decision.Bucket)

	// Weights change between calls, including a zero weight on the sticky page.
	rules[0].GoogleWeight = 100
	rules[2].GoogleWeight = 0
	decision, err = router.Route(bucket, domain.ChannelGoogle, rules, nil)
	require.NoError(t, err)
	require.Equal(t, "sales3", decision.PageID)
	require.True(t, decision.Sticky)
}

func TestRouter_StickyIgnoresCaps(t *testing.T) {
	router := NewRouter(fixedRandom(0), fixedToken)
	bucket := &domain.BucketToken{PageID: "sales2", ID: "abc"}

	capped := rule("sales2", 50, 50, 1)
	capped.DailyLimit = intPtr(1)
	rules := []*domain.DistributionRule{rule("sales1", 50, 50, 2), capped}
	counts := map[string]domain.PageCounts{"sales2": {Today: 10, Total: 10}}

	decision, err := router.Route(bucket, domain.ChannelOther, rules, counts)
	require.NoError(t, err)
	require.Equal(t, "sales2", decision.PageID)
	require.True(t, decision.Sticky)
}

func TestRouter_InactiveStickyPageIsRerouted(t *testing.T) {
	router := NewRouter(fixedRandom(0), fixedToken)
	bucket := &domain.BucketToken{PageID: "sales3", ID: "abc"}

	inactive := rule("sales3", 50, 50, 1)
	inactive.IsActive = false
	rules := []*domain.DistributionRule{rule("sales1", 50, 50, 2), inactive}

	decision, err := router.Route(bucket, domain.ChannelOther, rules, nil)
	require.NoError(t, err)
	require.Equal(t, "sales1", decision.PageID)
	require.False(t, decision.Sticky)
	require.Equal(t, domain.BucketToken{PageID: "sales1", ID: "newtoken"}, decision.Bucket)
}

func TestRouter_UnknownStickyPageIsRerouted(t *testing.T) {
	router := NewRouter(fixedRandom(0), fixedToken)
	bucket := &domain.BucketToken{PageID: "removed", ID: "abc"}

	decision, err := router.Route(bucket, domain.ChannelOther, []*domain.DistributionRule{rule("sales1", 1, 1, 1)}, nil)
	require.NoError(t, err)
	require.Equal(t, "sales1", decision.PageID)
	require.False(t, decision.Sticky)
}

func TestRouter_WeightedDraw(t *testing.T) {
	rules := []*domain.DistributionRule{
		rule("low", 70, 5, 1),
		rule("high", 30, 95, 2),
	}

	cases := []struct {
		rnd     float64
		channel domain.Channel
		want    string
	}{
		{0, domain.ChannelGoogle, "high"},
		{0.29, domain.ChannelGoogle, "high"},
		{0.5, domain.ChannelGoogle, "low"},
		{0.999, domain.ChannelGoogle, "low"},
		{0.9, domain.ChannelOther, "high"},
		{0.97, domain.ChannelOther, "low"},
	}
	for _, tc := range cases {
		router := NewRouter(fixedRandom(tc.rnd), fixedToken)
		decision, err := router.Route(nil, tc.channel, rules, nil)
		require.NoError(t, err)
		require.Equal(t, tc.want, decision.PageID, "rnd %v channel %s", tc.rnd, tc.channel)
		require.Equal(t, tc.want, decision.Bucket.PageID)
		require.False(t, decision.Sticky)
	}
}

func TestRouter_ZeroWeightNeverChosen(t *testing.T) {
	rules := []*domain.DistributionRule{
		rule("sales1", 0, 50, 2),
		rule("sales2", 100, 50, 1),
	}
	for _, rnd := range []float64{0, 0.1, 0.5, 0.99999} {
		router := NewRouter(fixedRandom(rnd), fixedToken)
		decision, err := router.Route(nil, domain.ChannelGoogle, rules, nil)
		require.NoError(t, err)
		require.Equal(t, "sales2", decision.PageID)
	}
}

func TestRouter_CapsExcludePage(t *testing.T) {
	daily := rule("sales1", 50, 50, 2)
	daily.DailyLimit = intPtr(5)
	total := rule("sales2", 50, 50, 1)
	total.TotalLimit = intPtr(100)
	open := rule("sales3", 50, 50, 0)

	rules := []*domain.DistributionRule{daily, total, open}
	counts := map[string]domain.PageCounts{
		"sales1": {Today: 5, Total: 5},
		"sales2": {Today: 1, Total: 100},
	}

	router := NewRouter(fixedRandom(0), fixedToken)
	decision, err := router.Route(nil, domain.ChannelOther, rules, counts)
	require.NoError(t, err)
	require.Equal(t, "sales3", decision.PageID)

	eligible := EligibleRules(domain.ChannelOther, rules, map[string]domain.PageCounts{"sales1": {Today: 4}})
	require.Len(t, eligible, 3)
}

func TestRouter_NoActivePages(t *testing.T) {
	router := NewRouter(fixedRandom(0), fixedToken)

	_, err := router.Route(nil, domain.ChannelOther, nil, nil)
	require.ErrorIs(t, err, domain.ErrNoActivePages)

	inactive := rule("sales1", 50, 50, 1)
	inactive.IsActive = false
	_, err = router.Route(nil, domain.ChannelOther, []*domain.DistributionRule{inactive, rule("sales2", 50, 0, 1)}, nil)
	require.ErrorIs(t, err, domain.ErrNoActivePages)
}

func TestEligibleRules_Order(t *testing.T) {
	rules := []*domain.DistributionRule{
		rule("b", 1, 1, 1),
		rule("c", 1, 1, 5),
		rule("a", 1, 1, 1),
	}
	eligible := EligibleRules(domain.ChannelGoogle, rules, nil)
	require.Equal(t, "c", eligible[0].SalesPageID)
	require.Equal(t, "a", eligible[1].SalesPageID)
	require.Equal(t, "b", eligible[2].SalesPageID)
}

func TestNewDefaultRouter_IssuesBucketForChosenPage(t *testing.T) {
	router, err := NewDefaultRouter()
	require.NoError(t, err)

	decision, err := router.Route(nil, domain.ChannelOther, []*domain.DistributionRule{rule("sales1", 0, 100, 1)}, nil)
	require.NoError(t, err)
	require.Equal(t, "sales1", decision.PageID)
	require.Len(t, decision.Bucket.ID, bucketIDLength)

	parsed, err := domain.ParseBucketToken(decision.Bucket.String())
	require.NoError(t, err)
	require.Equal(t, decision.Bucket, *parsed)
}
