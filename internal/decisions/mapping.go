package decisions

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/vantage/pkg/query"
	"github.com/JaimeStill/vantage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "decisions", "d").
	Project("id", "ID").
	Project("board_id", "BoardID").
	Project("item_a_id", "ItemAID").
	Project("item_b_id", "ItemBID").
	Project("winner_id", "WinnerID").
	Project("decided_at", "DecidedAt")

var defaultSort = query.SortField{Field: "DecidedAt", Descending: true}

// chronological is the replay order. The id breaks timestamp ties so every
// replay sees the same sequence.
var chronological = []query.SortField{
	{Field: "DecidedAt"},
	{Field: "ID"},
}

// Filters narrows a decision listing. ItemID matches either side of the
// comparison.
type Filters struct {
	BoardID  *uuid.UUID `json:"board_id,omitempty"`
	ItemID   *uuid.UUID `json:"item_id,omitempty"`
	WinnerID *uuid.UUID `json:"winner_id,omitempty"`
}

// Apply adds the filter conditions to b.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("BoardID", f.BoardID).
		WhereAnyEquals(f.ItemID, "ItemAID", "ItemBID").
		WhereEquals("WinnerID", f.WinnerID)
}

// FiltersFromQuery reads filters from URL query parameters. Malformed ids
// are ignored.
func FiltersFromQuery(values url.Values) Filters {
	return Filters{
		BoardID:  parseID(values.Get("board_id")),
		ItemID:   parseID(values.Get("item_id")),
		WinnerID: parseID(values.Get("winner_id")),
	}
}

func parseID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func scanDecision(s repository.Scanner) (Decision, error) {
	var d Decision
	err := s.Scan(
		&d.ID,
		&d.BoardID,
		&d.ItemAID,
		&d.ItemBID,
		&d.WinnerID,
		&d.DecidedAt,
	)
	return d, err
}
