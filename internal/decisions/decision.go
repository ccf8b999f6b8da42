// Package decisions holds the append-only log of pairwise comparison
// outcomes. Rows are written and removed only by the comparisons package,
// inside its board-locked transactions.
package decisions

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/vantage/pkg/ranking"
)

// Decision records that WinnerID was preferred over the other item.
type Decision struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"board_id"`
	ItemAID   uuid.UUID `json:"item_a_id"`
	ItemBID   uuid.UUID `json:"item_b_id"`
	WinnerID  uuid.UUID `json:"winner_id"`
	DecidedAt time.Time `json:"decided_at"`
}

// ToRankingDecision converts the record into the value the ranking engine
// reads.
func (d Decision) ToRankingDecision() ranking.Decision {
	return ranking.Decision{
		ItemAID:   d.ItemAID.String(),
		ItemBID:   d.ItemBID.String(),
		WinnerID:  d.WinnerID.String(),
		DecidedAt: d.DecidedAt,
	}
}

// RankingDecisions converts list in order.
func RankingDecisions(list []Decision) []ranking.Decision {
	out := make([]ranking.Decision, len(list))
	for i, d := range list {
		out[i] = d.ToRankingDecision()
	}
	return out
}

// RecordCommand appends a decision to a board's log.
type RecordCommand struct {
	BoardID  uuid.UUID `json:"-"`
	ItemAID  uuid.UUID `json:"item_a_id"`
	ItemBID  uuid.UUID `json:"item_b_id"`
	WinnerID uuid.UUID `json:"winner_id"`
}

// Validate enforces the decision invariants: two distinct items, and a
// winner that is one of them.
func (c RecordCommand) Validate() error {
	if c.ItemAID == uuid.Nil || c.ItemBID == uuid.Nil {
		return ErrMissingItem
	}
	if c.ItemAID == c.ItemBID {
		return ErrSelfPair
	}
	if c.WinnerID != c.ItemAID && c.WinnerID != c.ItemBID {
		return ErrInvalidWinner
	}
	return nil
}
