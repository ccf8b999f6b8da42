package ranking

import (
	"math"
	"slices"
)

const (
	// InitialRating is the impact score every item starts from.
	InitialRating = 1500.0
	// KFactor bounds the rating change of a single decision.
	KFactor = 32.0
	// ratingScale is the rating gap at which the expected win odds are 10:1.
	ratingScale = 400.0
)

// Confidence maps a comparison count to the coarse confidence step function.
// Nothing other than the count influences the result.
func Confidence(comparisons int) float64 {
	switch {
	case comparisons < 2:
		return 0.3
	case comparisons == 2:
		return 0.5
	case comparisons < 5:
		return 0.7
	default:
		return 0.9
	}
}

// ExpectedWin returns the probability the rating model assigns to a win by
// an item rated winner over an item rated loser.
func ExpectedWin(winner, loser float64) float64 {
	return 1 / (1 + math.Pow(10, (loser-winner)/ratingScale))
}

// CalculateRanking replays the full decision history in chronological order
// and returns every item ranked by impact score, highest first.
//
// Decisions are sorted by DecidedAt with ties kept in their given order.
// Items with equal scores keep their input order, so an empty history ranks
// items exactly as given. Decisions that reference unknown items, compare an
// item with itself, or name a winner outside the pair are skipped; use
// Validate to detect them.
func CalculateRanking(items []Item, decisions []Decision) []RankedItem {
	scores := make(map[string]float64, len(items))
	comparisons := make(map[string]int, len(items))
	wins := make(map[string]int, len(items))

	for _, it := range items {
		scores[it.ID] = InitialRating
		comparisons[it.ID] = 0
	}

	for _, d := range chronological(decisions) {
		if !applicable(d, scores) {
			continue
		}

		loserID := d.LoserID()
		delta := KFactor * (1 - ExpectedWin(scores[d.WinnerID], scores[loserID]))

		scores[d.WinnerID] += delta
		scores[loserID] -= delta
		comparisons[d.WinnerID]++
		comparisons[loserID]++
		wins[d.WinnerID]++
	}

	ranked := make([]RankedItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}

		ranked = append(ranked, RankedItem{
			ID:          it.ID,
			Confidence:  Confidence(comparisons[it.ID]),
			ImpactScore: scores[it.ID],
			Wins:        wins[it.ID],
			Comparisons: comparisons[it.ID],
		})
	}

	slices.SortStableFunc(ranked, func(a, b RankedItem) int {
		switch {
		case a.ImpactScore > b.ImpactScore:
			return -1
		case a.ImpactScore < b.ImpactScore:
			return 1
		default:
			return 0
		}
	})

	for i := range ranked {
		ranked[i].RankPosition = i + 1
	}

	return ranked
}

func chronological(decisions []Decision) []Decision {
	ordered := slices.Clone(decisions)
	slices.SortStableFunc(ordered, func(a, b Decision) int {
		return a.DecidedAt.Compare(b.DecidedAt)
	})
	return ordered
}

func applicable(d Decision, scores map[string]float64) bool {
	if d.ItemAID == d.ItemBID {
		return false
	}
	if d.WinnerID != d.ItemAID && d.WinnerID != d.ItemBID {
		return false
	}
	if _, ok := scores[d.ItemAID]; !ok {
		return false
	}
	_, ok := scores[d.ItemBID]
	return ok
}
