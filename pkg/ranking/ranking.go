// Package ranking implements the pairwise-comparison ranking engine.
// It selects the next pair of items to compare and converts a history of
// "A beat B" decisions into a total order with impact and confidence scores.
// All functions are pure: they read the values they are given and return new
// values, with no I/O and no state carried between calls.
package ranking

import (
	"slices"
	"time"
)

// Category is the closed set of improvement categories.
type Category string

const (
	CategoryUIUX        Category = "UI_UX"
	CategoryDataQuality Category = "DATA_QUALITY"
	CategoryWorkflow    Category = "WORKFLOW"
	CategoryBugFix      Category = "BUG_FIX"
	CategoryFeature     Category = "FEATURE"
)

var categories = []Category{
	CategoryUIUX,
	CategoryDataQuality,
	CategoryWorkflow,
	CategoryBugFix,
	CategoryFeature,
}

// Categories returns the listed categories in declaration order.
func Categories() []Category {
	return slices.Clone(categories)
}

// Known reports whether c is one of the listed categories.
func (c Category) Known() bool {
	return slices.Contains(categories, c)
}

// Effort is a coarse implementation cost estimate.
// The zero value means the item has not been estimated.
type Effort string

const (
	EffortUnknown Effort = ""
	EffortSmall   Effort = "SMALL"
	EffortMedium  Effort = "MEDIUM"
	EffortLarge   Effort = "LARGE"
)

var efforts = []Effort{
	EffortSmall,
	EffortMedium,
	EffortLarge,
}

// Efforts returns the estimated effort levels in ascending cost order.
func Efforts() []Effort {
	return slices.Clone(efforts)
}

// Known reports whether e is an estimated effort level.
func (e Effort) Known() bool {
	return slices.Contains(efforts, e)
}

// group returns the effort partition key, folding unestimated into UNKNOWN.
func (e Effort) group() string {
	if e.Known() {
		return string(e)
	}
	return "UNKNOWN"
}

// Item is a candidate unit of work under comparison.
type Item struct {
	ID            string   `json:"id" yaml:"id"`
	Category      Category `json:"category" yaml:"category"`
	Effort        Effort   `json:"effort,omitempty" yaml:"effort,omitempty"`
	EvidenceCount int      `json:"evidence_count,omitempty" yaml:"evidence_count,omitempty"`
}

// Decision records one completed comparison.
// WinnerID must equal ItemAID or ItemBID, and the two item ids must differ.
type Decision struct {
	ItemAID   string    `json:"item_a_id" yaml:"item_a"`
	ItemBID   string    `json:"item_b_id" yaml:"item_b"`
	WinnerID  string    `json:"winner_id" yaml:"winner"`
	DecidedAt time.Time `json:"decided_at" yaml:"decided_at"`
}

// Key returns the order-independent pair key for the decision.
func (d Decision) Key() PairKey {
	return NewPairKey(d.ItemAID, d.ItemBID)
}

// LoserID returns the id of the item that did not win.
func (d Decision) LoserID() string {
	if d.WinnerID == d.ItemAID {
		return d.ItemBID
	}
	return d.ItemAID
}

// RankedItem is the recomputed standing of a single item.
type RankedItem struct {
	ID           string  `json:"id"`
	RankPosition int     `json:"rank_position"`
	Confidence   float64 `json:"confidence"`
	ImpactScore  float64 `json:"impact_score"`
	Wins         int     `json:"wins"`
	Comparisons  int     `json:"comparisons"`
}

// Pair is the next two items to present for comparison.
type Pair struct {
	ItemA Item `json:"item_a"`
	ItemB Item `json:"item_b"`
}

// PairKey identifies an unordered pair of item ids.
type PairKey struct {
	lo string
	hi string
}

// NewPairKey returns the same key for (a, b) and (b, a).
func NewPairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{lo: a, hi: b}
}

// String renders the key as "lo|hi".
func (k PairKey) String() string {
	return k.lo + "|" + k.hi
}

// TotalPairs returns the number of unordered pairs among n items.
func TotalPairs(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// ComparedPairs returns the number of distinct unordered pairs with at least
// one decision.
func ComparedPairs(decisions []Decision) int {
	return len(comparedSet(decisions))
}

func comparedSet(decisions []Decision) map[PairKey]struct{} {
	set := make(map[PairKey]struct{}, len(decisions))
	for _, d := range decisions {
		set[d.Key()] = struct{}{}
	}
	return set
}

func comparisonCounts(items []Item, decisions []Decision) map[string]int {
	counts := make(map[string]int, len(items))
	for _, it := range items {
		counts[it.ID] = 0
	}
	for _, d := range decisions {
		if _, ok := counts[d.ItemAID]; ok {
			counts[d.ItemAID]++
		}
		if _, ok := counts[d.ItemBID]; ok && d.ItemBID != d.ItemAID {
			counts[d.ItemBID]++
		}
	}
	return counts
}
