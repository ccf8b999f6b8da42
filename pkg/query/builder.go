package query

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// SortField is one ORDER BY term. Field is a view field name.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses "name,-created_at" into sort fields. A leading "-"
// sorts descending. Empty input yields nil.
func ParseSortFields(s string) []SortField {
	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, desc := strings.CutPrefix(part, "-")
		fields = append(fields, SortField{Field: name, Descending: desc})
	}
	return fields
}

// condition renders its clause given a function that yields the next
// positional placeholder.
type condition struct {
	render func(next func() string) string
	args   []any
}

// Builder accumulates filters and ordering for one projection.
// Placeholders are numbered when the statement is built.
type Builder struct {
	projection  *ProjectionMap
	conditions  []condition
	sort        []SortField
	defaultSort []SortField
}

// NewBuilder returns a Builder over projection, ordered by defaultSort
// unless OrderByFields overrides it.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// Build returns the full SELECT.
func (b *Builder) Build() (string, []any) {
	where, args := b.where()
	return fmt.Sprintf(
		"SELECT %s FROM %s%s%s",
		b.projection.Columns(), b.projection.From(), where, b.orderBy(),
	), args
}

// BuildCount returns SELECT COUNT(*) with the same filters.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.where()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.From(), where), args
}

// BuildPage returns the SELECT limited to one page. page is 1-based.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	q, args := b.Build()
	return fmt.Sprintf("%s LIMIT %d OFFSET %d", q, pageSize, (page-1)*pageSize), args
}

// BuildSingle returns a SELECT of the row whose field equals id. Other
// conditions on the builder are ignored.
func (b *Builder) BuildSingle(field string, id any) (string, []any) {
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(), b.projection.From(), b.projection.Column(field),
	), []any{id}
}

// OrderByFields replaces the default ordering. Empty input keeps it.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	if len(fields) > 0 {
		b.sort = fields
	}
	return b
}

// WhereEquals filters field = value. A nil value (including a typed nil
// pointer) adds nothing.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	col := b.projection.Column(field)
	b.conditions = append(b.conditions, condition{
		render: func(next func() string) string { return col + " = " + next() },
		args:   []any{deref(value)},
	})
	return b
}

// WhereAnyEquals filters rows where at least one of fields equals value.
// A nil value adds nothing.
func (b *Builder) WhereAnyEquals(value any, fields ...string) *Builder {
	if isNil(value) || len(fields) == 0 {
		return b
	}
	cols := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		cols[i] = b.projection.Column(f)
		args[i] = deref(value)
	}
	b.conditions = append(b.conditions, condition{
		render: func(next func() string) string {
			parts := make([]string, len(cols))
			for i, c := range cols {
				parts[i] = c + " = " + next()
			}
			return "(" + strings.Join(parts, " OR ") + ")"
		},
		args: args,
	})
	return b
}

// WhereIn filters field IN (values...). Empty values add nothing.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	if len(values) == 0 {
		return b
	}
	col := b.projection.Column(field)
	b.conditions = append(b.conditions, condition{
		render: func(next func() string) string {
			ph := make([]string, len(values))
			for i := range ph {
				ph[i] = next()
			}
			return col + " IN (" + strings.Join(ph, ", ") + ")"
		},
		args: values,
	})
	return b
}

// WhereNull filters field IS NULL when null is non-nil and true, IS NOT
// NULL when it is false.
func (b *Builder) WhereNull(field string, null *bool) *Builder {
	if null == nil {
		return b
	}
	clause := b.projection.Column(field) + " IS NOT NULL"
	if *null {
		clause = b.projection.Column(field) + " IS NULL"
	}
	b.conditions = append(b.conditions, condition{
		render: func(func() string) string { return clause },
	})
	return b
}

// WhereSearch adds a case-insensitive substring match across fields, any of
// which may match. A nil or empty search adds nothing.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}
	pattern := "%" + *search + "%"
	cols := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		cols[i] = b.projection.Column(f)
		args[i] = pattern
	}
	b.conditions = append(b.conditions, condition{
		render: func(next func() string) string {
			parts := make([]string, len(cols))
			for i, c := range cols {
				parts[i] = c + " ILIKE " + next()
			}
			return "(" + strings.Join(parts, " OR ") + ")"
		},
		args: args,
	})
	return b
}

func (b *Builder) where() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	n := 0
	next := func() string {
		n++
		return "$" + strconv.Itoa(n)
	}

	clauses := make([]string, len(b.conditions))
	var args []any
	for i, c := range b.conditions {
		clauses[i] = c.render(next)
		args = append(args, c.args...)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (b *Builder) orderBy() string {
	fields := b.sort
	if len(fields) == 0 {
		fields = b.defaultSort
	}
	if len(fields) == 0 {
		return ""
	}

	terms := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		terms[i] = b.projection.Column(f.Field) + " " + dir
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return rv.Elem().Interface()
	}
	return v
}
