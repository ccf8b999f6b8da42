// Package query builds parameterized SELECT statements from a projection of
// view field names onto table columns.
package query

import (
	"fmt"
	"strings"
)

type join struct {
	kind   string
	table  string
	alias  string
	clause string
}

// ProjectionMap maps view field names to qualified column expressions and
// records the FROM clause they are selected from.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	joins   []join
	columns map[string]string
	order   []string
}

// NewProjectionMap starts a projection over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project maps column on the base table to field.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	return p.ProjectAs(p.alias, column, field)
}

// ProjectAs maps column on the table aliased as alias to field.
func (p *ProjectionMap) ProjectAs(alias, column, field string) *ProjectionMap {
	return p.ProjectExpr(alias+"."+column, field)
}

// ProjectExpr maps an arbitrary SQL expression to field.
func (p *ProjectionMap) ProjectExpr(expr, field string) *ProjectionMap {
	p.columns[field] = expr
	p.order = append(p.order, expr)
	return p
}

// Join adds a join of schema.table aliased as alias. kind is the join
// keyword, e.g. "JOIN" or "LEFT JOIN".
func (p *ProjectionMap) Join(kind, schema, table, alias, on string) *ProjectionMap {
	p.joins = append(p.joins, join{
		kind:   kind,
		table:  schema + "." + table,
		alias:  alias,
		clause: on,
	})
	return p
}

// Alias returns the base table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns "schema.table alias" for the base table.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// From returns the base table followed by every join.
func (p *ProjectionMap) From() string {
	var sb strings.Builder
	sb.WriteString(p.Table())
	for _, j := range p.joins {
		fmt.Fprintf(&sb, " %s %s %s ON %s", j.kind, j.table, j.alias, j.clause)
	}
	return sb.String()
}

// Column returns the expression mapped to field, or field unchanged.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.columns[field]; ok {
		return col
	}
	return field
}

// Columns returns the select list in projection order.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.order, ", ")
}

// ColumnList returns a copy of the select list.
func (p *ProjectionMap) ColumnList() []string {
	return append([]string(nil), p.order...)
}
