package boards

import (
	"net/url"

	"github.com/JaimeStill/vantage/pkg/query"
	"github.com/JaimeStill/vantage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "boards", "b").
	Project("id", "ID").
	Project("name", "Name").
	Project("description", "Description").
	ProjectExpr("(SELECT COUNT(*) FROM public.improvements i WHERE i.board_id = b.id)", "ImprovementCount").
	ProjectExpr("(SELECT COUNT(*) FROM public.decisions d WHERE d.board_id = b.id)", "DecisionCount").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

// Filters narrows a board listing. Name matches case-insensitively as a
// substring.
type Filters struct {
	Name *string `json:"name,omitempty"`
}

// Apply adds the filter conditions to b.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereSearch(f.Name, "Name")
}

// FiltersFromQuery reads filters from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if n := values.Get("name"); n != "" {
		f.Name = &n
	}
	return f
}

func scanBoard(s repository.Scanner) (Board, error) {
	var b Board
	err := s.Scan(
		&b.ID,
		&b.Name,
		&b.Description,
		&b.ImprovementCount,
		&b.DecisionCount,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}
