package improvements

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/vantage/pkg/query"
	"github.com/JaimeStill/vantage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "improvements", "i").
	Project("id", "ID").
	Project("board_id", "BoardID").
	Project("title", "Title").
	Project("description", "Description").
	Project("category", "Category").
	Project("effort_level", "EffortLevel").
	Project("rank_position", "RankPosition").
	Project("confidence", "Confidence").
	Project("impact_score", "ImpactScore").
	Project("wins", "Wins").
	Project("comparisons", "Comparisons").
	ProjectExpr("(SELECT COUNT(*) FROM public.evidence e WHERE e.improvement_id = i.id)", "EvidenceCount").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// Listings default to standings order with unranked items last.
var defaultSort = []query.SortField{
	{Field: "RankPosition"},
	{Field: "CreatedAt"},
}

// inputOrder is the stable order the ranking engine receives items in.
var inputOrder = []query.SortField{
	{Field: "CreatedAt"},
	{Field: "ID"},
}

// Filters narrows an improvement listing. Unestimated selects items with
// (true) or without (false) an effort level.
type Filters struct {
	BoardID     *uuid.UUID `json:"board_id,omitempty"`
	Category    *string    `json:"category,omitempty"`
	EffortLevel *string    `json:"effort_level,omitempty"`
	Unestimated *bool      `json:"unestimated,omitempty"`
}

// Apply adds the filter conditions to b.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("BoardID", f.BoardID).
		WhereEquals("Category", f.Category).
		WhereEquals("EffortLevel", f.EffortLevel).
		WhereNull("EffortLevel", f.Unestimated)
}

// FiltersFromQuery reads filters from URL query parameters. Unparseable
// values are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("board_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.BoardID = &id
		}
	}
	if v := values.Get("category"); v != "" {
		f.Category = &v
	}
	if v := values.Get("effort_level"); v != "" {
		f.EffortLevel = &v
	}
	if v := values.Get("unestimated"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Unestimated = &b
		}
	}

	return f
}

func scanImprovement(s repository.Scanner) (Improvement, error) {
	var i Improvement
	err := s.Scan(
		&i.ID,
		&i.BoardID,
		&i.Title,
		&i.Description,
		&i.Category,
		&i.EffortLevel,
		&i.RankPosition,
		&i.Confidence,
		&i.ImpactScore,
		&i.Wins,
		&i.Comparisons,
		&i.EvidenceCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
