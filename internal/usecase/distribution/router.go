package distribution

import (
	"math/rand/v2"
	"sort"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/jaevor/go-nanoid"
)

const bucketIDLength = 15

// Router decides the sales page for a visitor. It only works on the
// snapshot it is given and never reads the store itself.
type Router struct {
	random  func() float64
	tokenID func() string
}

func NewRouter(random func() float64, tokenID func() string) *Router {
	return &Router{random: random, tokenID: tokenID}
}

// NewDefaultRouter draws with math/rand and issues nanoid bucket ids.
func NewDefaultRouter() (*Router, error) {
	idGenerator, err := nanoid.Standard(bucketIDLength)
	if err != nil {
		return nil, err
	}
	return NewRouter(rand.Float64, idGenerator), nil
}

// Route returns the sticky page when the bucket still points at an active
// rule, otherwise draws a page proportionally to the channel weights of the
// eligible rules and issues a new bucket for it.
func (r *Router) Route(
	existing *domain.BucketToken,
	channel domain.Channel,
	rules []*domain.DistributionRule,
	counts map[string]domain.PageCounts,
) (*domain.RouteDecision, error) {
	if existing != nil {
		for _, rule := range rules {
			if rule.SalesPageID == existing.PageID && rule.IsActive {
				return &domain.RouteDecision{PageID: rule.SalesPageID, Bucket: *existing, Sticky: true}, nil
			}
		}
	}

	eligible := EligibleRules(channel, rules, counts)
	if len(eligible) == 0 {
		return nil, domain.ErrNoActivePages
	}

	picked := pickWeighted(eligible, channel, r.random())
	return &domain.RouteDecision{
		PageID: picked.SalesPageID,
		Bucket: domain.BucketToken{PageID: picked.SalesPageID, ID: r.tokenID()},
	}, nil
}

// EligibleRules are active rules with a positive channel weight whose caps
// are not reached, ordered by priority desc then page id.
func EligibleRules(channel domain.Channel, rules []*domain.DistributionRule, counts map[string]domain.PageCounts) []*domain.DistributionRule {
	eligible := make([]*domain.DistributionRule, 0, len(rules))
	for _, rule := range rules {
		if !rule.IsActive || rule.Weight(channel) <= 0 {
			continue
		}
		if rule.LimitReached(counts[rule.SalesPageID]) {
			continue
		}
		eligible = append(eligible, rule)
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Priority != eligible[j].Priority {
			return eligible[i].Priority > eligible[j].Priority
		}
		return eligible[i].SalesPageID < eligible[j].SalesPageID
	})
	return eligible
}

// pickWeighted walks the cumulative weights with rnd in [0, 1).
func pickWeighted(rules []*domain.DistributionRule, channel domain.Channel, rnd float64) *domain.DistributionRule {
	total := 0.0
	for _, rule := range rules {
		total += rule.Weight(channel)
	}
	cursor := rnd * total
	for _, rule := range rules {
		cursor -= rule.Weight(channel)
		if cursor < 0 {
			return rule
		}
	}
	return rules[len(rules)-1]
}
