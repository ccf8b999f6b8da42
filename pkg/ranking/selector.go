package ranking

import (
	"slices"
)

// Reference thresholds for the cross-effort strategy. They are fixed values
// carried over from the established selection behavior, not tuned ones.
const (
	DefaultCrossEffortMinItems       = 4
	DefaultCrossEffortMaxComparisons = 5
)

// Selector chooses the next pair of items to compare.
//
// Once every unordered pair has been compared, the selector spends extra
// comparisons across effort groups, but only when the board has at least
// CrossEffortMinItems items and one of the two items has fewer than
// CrossEffortMaxComparisons comparisons.
type Selector struct {
	CrossEffortMinItems       int
	CrossEffortMaxComparisons int
}

// DefaultSelector returns a Selector with the reference thresholds.
func DefaultSelector() Selector {
	return Selector{
		CrossEffortMinItems:       DefaultCrossEffortMinItems,
		CrossEffortMaxComparisons: DefaultCrossEffortMaxComparisons,
	}
}

// SelectNextPair chooses the next pair using DefaultSelector.
// It returns false when fewer than two items exist or comparisons converged.
func SelectNextPair(items []Item, decisions []Decision) (Pair, bool) {
	return DefaultSelector().Next(items, decisions)
}

// Next returns the next pair to present, or false when no further comparison
// is useful. An exact unordered pair is never returned twice by the coverage
// strategy; the cross-effort strategy only runs after coverage is complete.
func (s Selector) Next(items []Item, decisions []Decision) (Pair, bool) {
	if len(items) < 2 {
		return Pair{}, false
	}

	counts := comparisonCounts(items, decisions)
	compared := comparedSet(decisions)

	ordered := slices.Clone(items)
	slices.SortStableFunc(ordered, func(a, b Item) int {
		return counts[a.ID] - counts[b.ID]
	})

	if pair, ok := firstUncompared(ordered, items, compared); ok {
		return pair, true
	}

	if len(items) >= s.CrossEffortMinItems {
		if pair, ok := s.firstCrossEffort(ordered, items, counts); ok {
			return pair, true
		}
	}

	return Pair{}, false
}

func firstUncompared(ordered, items []Item, compared map[PairKey]struct{}) (Pair, bool) {
	for _, a := range ordered {
		for _, b := range items {
			if a.ID == b.ID {
				continue
			}
			if _, seen := compared[NewPairKey(a.ID, b.ID)]; !seen {
				return Pair{ItemA: a, ItemB: b}, true
			}
		}
	}
	return Pair{}, false
}

func (s Selector) firstCrossEffort(ordered, items []Item, counts map[string]int) (Pair, bool) {
	for _, a := range ordered {
		for _, b := range items {
			if a.ID == b.ID || a.Effort.group() == b.Effort.group() {
				continue
			}
			if counts[a.ID] < s.CrossEffortMaxComparisons || counts[b.ID] < s.CrossEffortMaxComparisons {
				return Pair{ItemA: a, ItemB: b}, true
			}
		}
	}
	return Pair{}, false
}
