// Package comparisons drives a board's ranking session. It loads the
// board's improvements and decision log, asks the ranking engine for the
// next pair or the current standings, and persists recomputed standings
// whenever the board's items or log change.
package comparisons

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/vantage/internal/decisions"
	"github.com/JaimeStill/vantage/internal/improvements"
	"github.com/JaimeStill/vantage/pkg/ranking"
)

// Progress reports how far a board is through full pair coverage.
type Progress struct {
	Compared   int `json:"compared"`
	TotalPairs int `json:"total_pairs"`
	Decisions  int `json:"decisions"`
}

// Matchup is the next comparison to present. When Complete is true no pair
// remains and ItemA, ItemB and Prompt are empty.
type Matchup struct {
	BoardID  uuid.UUID                 `json:"board_id"`
	Complete bool                      `json:"complete"`
	ItemA    *improvements.Improvement `json:"item_a,omitempty"`
	ItemB    *improvements.Improvement `json:"item_b,omitempty"`
	Prompt   string                    `json:"prompt,omitempty"`
	Progress Progress                  `json:"progress"`
}

// Standing is one improvement's computed position.
type Standing struct {
	ImprovementID uuid.UUID        `json:"improvement_id"`
	Title         string           `json:"title"`
	Category      ranking.Category `json:"category"`
	EffortLevel   *ranking.Effort  `json:"effort_level,omitempty"`
	EvidenceCount int              `json:"evidence_count"`
	RankPosition  int              `json:"rank_position"`
	Confidence    float64          `json:"confidence"`
	ImpactScore   float64          `json:"impact_score"`
	Wins          int              `json:"wins"`
	Comparisons   int              `json:"comparisons"`
}

// Standings is a board's full ranking, best first.
type Standings struct {
	BoardID    uuid.UUID  `json:"board_id"`
	Items      []Standing `json:"items"`
	Progress   Progress   `json:"progress"`
	ComputedAt time.Time  `json:"computed_at"`
}

// Outcome is the result of recording a decision.
type Outcome struct {
	Decision  decisions.Decision `json:"decision"`
	Standings Standings          `json:"standings"`
}

// Snapshot identifies standings written to blob storage.
type Snapshot struct {
	Key       string    `json:"key"`
	Standings Standings `json:"standings"`
}

// BuildMatchup selects the next pair for a board from its improvements, in
// creation order, and its decision log.
func BuildMatchup(
	boardID uuid.UUID,
	sel ranking.Selector,
	items []improvements.Improvement,
	history []decisions.Decision,
) Matchup {
	rankingDecisions := decisions.RankingDecisions(history)
	m := Matchup{
		BoardID:  boardID,
		Progress: progress(len(items), rankingDecisions),
	}

	pair, ok := sel.Next(improvements.RankingItems(items), rankingDecisions)
	if !ok {
		m.Complete = true
		return m
	}

	byID := index(items)
	m.ItemA = byID[pair.ItemA.ID]
	m.ItemB = byID[pair.ItemB.ID]
	m.Prompt = ranking.GenerateDecisionPrompt(pair.ItemA, pair.ItemB)
	return m
}

// BuildStandings replays history over items and joins each ranked entry
// with its improvement.
func BuildStandings(
	boardID uuid.UUID,
	items []improvements.Improvement,
	history []decisions.Decision,
	at time.Time,
) (Standings, []ranking.RankedItem) {
	rankingDecisions := decisions.RankingDecisions(history)
	ranked := ranking.CalculateRanking(improvements.RankingItems(items), rankingDecisions)

	byID := index(items)
	out := make([]Standing, 0, len(ranked))
	for _, r := range ranked {
		imp := byID[r.ID]
		if imp == nil {
			continue
		}
		out = append(out, Standing{
			ImprovementID: imp.ID,
			Title:         imp.Title,
			Category:      imp.Category,
			EffortLevel:   imp.EffortLevel,
			EvidenceCount: imp.EvidenceCount,
			RankPosition:  r.RankPosition,
			Confidence:    r.Confidence,
			ImpactScore:   r.ImpactScore,
			Wins:          r.Wins,
			Comparisons:   r.Comparisons,
		})
	}

	return Standings{
		BoardID:    boardID,
		Items:      out,
		Progress:   progress(len(items), rankingDecisions),
		ComputedAt: at,
	}, ranked
}

func progress(n int, history []ranking.Decision) Progress {
	return Progress{
		Compared:   ranking.ComparedPairs(history),
		TotalPairs: ranking.TotalPairs(n),
		Decisions:  len(history),
	}
}

func index(items []improvements.Improvement) map[string]*improvements.Improvement {
	byID := make(map[string]*improvements.Improvement, len(items))
	for i := range items {
		byID[items[i].ID.String()] = &items[i]
	}
	return byID
}
