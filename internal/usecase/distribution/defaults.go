package distribution

import (
	"fmt"
	"math"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
)

var DefaultSalesPages = []string{
	"sales1", "sales2", "sales3", "sales4", "sales5", "sales6",
	"sales7", "sales8", "sales9", "sales10", "sales11",
}

// weightScale is the resolution of default weights: hundredths of a percent.
const weightScale = 10000

// EqualWeights spreads 100 percentage points over pages at 0.01 resolution
// so the weights total exactly 100.
func EqualWeights(pages []string) (map[string]float64, error) {
	items := make([]AllocationItem, len(pages))
	for i, page := range pages {
		items[i] = AllocationItem{ID: page, Weight: 1}
	}
	results, err := Allocate(items, weightScale)
	if err != nil {
		return nil, err
	}
	weights := make(map[string]float64, len(results))
	for _, r := range results {
		weights[r.ID] = float64(r.Count) / (weightScale / 100)
	}
	return weights, nil
}

// DefaultRules is the bootstrap rule set: every page active with equal
// weights on both channels, priority descending in page order.
func DefaultRules(pages []string) ([]*domain.DistributionRule, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: default page list is empty", domain.ErrInvalidRule)
	}
	weights, err := EqualWeights(pages)
	if err != nil {
		return nil, err
	}

	rules := make([]*domain.DistributionRule, len(pages))
	for i, page := range pages {
		rules[i] = &domain.DistributionRule{
			SalesPageID:  page,
			GoogleWeight: weights[page],
			OtherWeight:  weights[page],
			IsActive:     true,
			Priority:     len(pages) - i,
		}
	}
	return rules, nil
}

const totalsTolerance = 0.01

// Totals sums channel weights over active rules.
func Totals(rules []*domain.DistributionRule) domain.RuleTotals {
	var t domain.RuleTotals
	for _, r := range rules {
		if !r.IsActive {
			continue
		}
		t.Google += r.GoogleWeight
		t.Other += r.OtherWeight
	}
	t.GoogleExact = math.Abs(t.Google-100) < totalsTolerance
	t.OtherExact = math.Abs(t.Other-100) < totalsTolerance
	return t
}
