package distribution

import (
	"fmt"
	"math"
	"sort"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
)

type AllocationItem struct {
	ID     string
	Weight float64
}

type AllocationResult struct {
	ID         string
	Weight     float64
	ExactShare float64
	FloorCount int
	Remainder  float64
	Count      int
	Percentage float64
}

// Allocate splits total into integer counts proportional to the item weights
// using the largest remainder method. Counts always sum to total and each
// count is within 1 of its exact share. Ties on the remainder go to the
// earlier item, so identical input yields identical output.
func Allocate(items []AllocationItem, total int) ([]AllocationResult, error) {
	if len(items) == 0 {
		return nil, domain.ErrNoAllocationPages
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w (got %d)", domain.ErrNonPositiveTotal, total)
	}
	if total > domain.MaxAllocationTotal {
		return nil, fmt.Errorf("%w (got %d)", domain.ErrTotalTooLarge, total)
	}

	totalWeight := 0.0
	for _, item := range items {
		if item.Weight < 0 || math.IsNaN(item.Weight) || math.IsInf(item.Weight, 0) {
			return nil, fmt.Errorf("%w (page %s: %v)", domain.ErrNegativeWeight, item.ID, item.Weight)
		}
		totalWeight += item.Weight
	}
	if totalWeight == 0 {
		return nil, domain.ErrZeroTotalWeight
	}
	if math.IsInf(totalWeight, 0) {
		return nil, domain.ErrWeightOverflow
	}

	results := make([]AllocationResult, len(items))
	assigned := 0
	for i, item := range items {
		exact := item.Weight / totalWeight * float64(total)
		floor := int(math.Floor(exact))
		results[i] = AllocationResult{
			ID:         item.ID,
			Weight:     item.Weight,
			ExactShare: exact,
			FloorCount: floor,
			Remainder:  exact - float64(floor),
			Count:      floor,
		}
		assigned += floor
	}

	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return results[order[a]].Remainder > results[order[b]].Remainder
	})

	// deficit is in [0, len(items)) in exact arithmetic; the modulo and the
	// surplus branch absorb float drift in the shares.
	deficit := total - assigned
	for i := 0; i < deficit; i++ {
		results[order[i%len(order)]].Count++
	}
	for i := len(order) - 1; deficit < 0 && i >= 0; i-- {
		if results[order[i]].Count > 0 {
			results[order[i]].Count--
			deficit++
		}
	}

	for i := range results {
		results[i].Percentage = float64(results[i].Count) / float64(total) * 100
	}

	return results, nil
}
