package query_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/vantage/pkg/query"
)

func projection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "improvements", "i").
		Project("id", "ID").
		Project("title", "Title").
		Project("category", "Category").
		Project("effort_level", "EffortLevel").
		Project("created_at", "CreatedAt")
}

func ptr[T any](v T) *T { return &v }

func TestProjectionMap(t *testing.T) {
	p := projection()

	if got := p.Table(); got != "public.improvements i" {
		t.Errorf("Table() = %q", got)
	}
	if got := p.Columns(); got != "i.id, i.title, i.category, i.effort_level, i.created_at" {
		t.Errorf("Columns() = %q", got)
	}

	tests := []struct {
		field string
		want  string
	}{
		{"Title", "i.title"},
		{"CreatedAt", "i.created_at"},
		{"unmapped", "unmapped"},
	}
	for _, tt := range tests {
		if got := p.Column(tt.field); got != tt.want {
			t.Errorf("Column(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestProjectionMapJoinAndExpr(t *testing.T) {
	p := query.NewProjectionMap("public", "decisions", "d").
		Project("id", "ID").
		Join("JOIN", "public", "boards", "b", "b.id = d.board_id").
		ProjectAs("b", "name", "BoardName").
		ProjectExpr("(SELECT COUNT(*) FROM public.evidence e WHERE e.improvement_id = d.winner_id)", "WinnerEvidence")

	want := "public.decisions d JOIN public.boards b ON b.id = d.board_id"
	if got := p.From(); got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
	if got := p.Column("BoardName"); got != "b.name" {
		t.Errorf("Column(BoardName) = %q", got)
	}
	if got := len(p.ColumnList()); got != 3 {
		t.Errorf("ColumnList() has %d entries, want 3", got)
	}
}

func TestColumnListIsCopy(t *testing.T) {
	p := projection()
	cols := p.ColumnList()
	cols[0] = "mutated"
	if slices.Contains(p.ColumnList(), "mutated") {
		t.Error("ColumnList exposes internal slice")
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		in   string
		want []query.SortField
	}{
		{"", nil},
		{"Title", []query.SortField{{Field: "Title"}}},
		{"Title,-CreatedAt", []query.SortField{{Field: "Title"}, {Field: "CreatedAt", Descending: true}}},
		{" -Title , ,Category", []query.SortField{{Field: "Title", Descending: true}, {Field: "Category"}}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, query.ParseSortFields(tt.in)); diff != "" {
				t.Errorf("ParseSortFields(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	def := query.SortField{Field: "CreatedAt"}

	tests := []struct {
		name     string
		build    func(b *query.Builder) *query.Builder
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "no conditions uses default sort",
			build:   func(b *query.Builder) *query.Builder { return b },
			wantSQL: "SELECT i.id, i.title, i.category, i.effort_level, i.created_at FROM public.improvements i ORDER BY i.created_at ASC",
		},
		{
			name: "nil pointer filters are skipped",
			build: func(b *query.Builder) *query.Builder {
				var cat *string
				return b.WhereEquals("Category", cat).WhereSearch(nil, "Title")
			},
			wantSQL: "SELECT i.id, i.title, i.category, i.effort_level, i.created_at FROM public.improvements i ORDER BY i.created_at ASC",
		},
		{
			name: "placeholders number in order",
			build: func(b *query.Builder) *query.Builder {
				return b.
					WhereEquals("Category", ptr("BUG_FIX")).
					WhereSearch(ptr("login"), "Title", "Category").
					WhereIn("ID", []any{"a", "b"})
			},
			wantSQL: "SELECT i.id, i.title, i.category, i.effort_level, i.created_at FROM public.improvements i" +
				" WHERE i.category = $1 AND (i.title ILIKE $2 OR i.category ILIKE $3) AND i.id IN ($4, $5)" +
				" ORDER BY i.created_at ASC",
			wantArgs: []any{"BUG_FIX", "%login%", "%login%", "a", "b"},
		},
		{
			name: "null check takes no argument",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereNull("EffortLevel", ptr(true)).WhereEquals("Category", "FEATURE")
			},
			wantSQL: "SELECT i.id, i.title, i.category, i.effort_level, i.created_at FROM public.improvements i" +
				" WHERE i.effort_level IS NULL AND i.category = $1 ORDER BY i.created_at ASC",
			wantArgs: []any{"FEATURE"},
		},
		{
			name: "any equals repeats the value per field",
			build: func(b *query.Builder) *query.Builder {
				return b.WhereEquals("Category", "UI_UX").WhereAnyEquals(ptr("x"), "ID", "Title")
			},
			wantSQL: "SELECT i.id, i.title, i.category, i.effort_level, i.created_at FROM public.improvements i" +
				" WHERE i.category = $1 AND (i.id = $2 OR i.title = $3) ORDER BY i.created_at ASC",
			wantArgs: []any{"UI_UX", "x", "x"},
		},
		{
			name: "explicit sort overrides default",
			build: func(b *query.Builder) *query.Builder {
				return b.OrderByFields([]query.SortField{{Field: "Title", Descending: true}, {Field: "ID"}})
			},
			wantSQL: "SELECT i.id, i.title, i.category, i.effort_level, i.created_at FROM public.improvements i ORDER BY i.title DESC, i.id ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.build(query.NewBuilder(projection(), def)).Build()
			if sql != tt.wantSQL {
				t.Errorf("sql:\n got %s\nwant %s", sql, tt.wantSQL)
			}
			if diff := cmp.Diff(tt.wantArgs, args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildCountAndPage(t *testing.T) {
	b := query.NewBuilder(projection(), query.SortField{Field: "CreatedAt", Descending: true}).
		WhereNull("EffortLevel", ptr(false))

	count, _ := b.BuildCount()
	if want := "SELECT COUNT(*) FROM public.improvements i WHERE i.effort_level IS NOT NULL"; count != want {
		t.Errorf("count:\n got %s\nwant %s", count, want)
	}

	page, _ := b.BuildPage(3, 20)
	want := "SELECT i.id, i.title, i.category, i.effort_level, i.created_at FROM public.improvements i" +
		" WHERE i.effort_level IS NOT NULL ORDER BY i.created_at DESC LIMIT 20 OFFSET 40"
	if page != want {
		t.Errorf("page:\n got %s\nwant %s", page, want)
	}
}

func TestBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(projection()).BuildSingle("ID", "abc")

	if want := "SELECT i.id, i.title, i.category, i.effort_level, i.created_at FROM public.improvements i WHERE i.id = $1"; sql != want {
		t.Errorf("sql = %s", sql)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("args = %v", args)
	}
}
