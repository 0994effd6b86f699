package composer

import (
	"strconv"
	"strings"
)

// Query is a fully composed parameterized statement. Text uses ?
// placeholders; the executor rewrites them for the backend and binds
// Values in order.
type Query struct {
	Text   string
	Values []any
}

// QueryBuilder composes a parameterized SELECT against one table. It is
// used both for top-level model queries and for the sub-queries handed
// to include filters; the zero value is not usable, build one through
// Registry.Query or a relation load.
type QueryBuilder struct {
	registry *Registry
	model    *ModelDefinition // nil when the table has no registered model
	table    string

	columns  []string
	ctes     []cte
	joins    []JoinClause
	conds    []Fragment
	groupBys []string
	orderBys []string
	limit    int
	offset   int

	includes []TrackedInclude
	err      error
}

// Query starts a builder rooted at the named model's table. An unknown
// model name is reported through Err and by the eventual fetch.
func (r *Registry) Query(model string) *QueryBuilder {
	def, ok := r.Get(model)
	if !ok {
		return &QueryBuilder{
			registry: r,
			err:      WrapRelationError("", model, ErrModelNotFound),
		}
	}
	return &QueryBuilder{
		registry: r,
		model:    def,
		table:    def.Table,
	}
}

// newTableQuery starts a builder for a raw table, resolving its model
// definition when one is registered for that table.
func newTableQuery(r *Registry, table string) *QueryBuilder {
	qb := &QueryBuilder{registry: r, table: table}
	if def, ok := r.ModelForTable(table); ok {
		qb.model = def
	}
	return qb
}

// Err returns the first composition error recorded on the builder, such
// as an unknown model or relation name.
func (q *QueryBuilder) Err() error {
	return q.err
}

// Table returns the table the builder selects from.
func (q *QueryBuilder) Table() string {
	return q.table
}

// Select replaces the projected columns. The default projection is *.
func (q *QueryBuilder) Select(columns ...string) *QueryBuilder {
	q.columns = columns
	return q
}

// Where appends one comparison condition. Conditions accumulate and are
// joined with AND.
func (q *QueryBuilder) Where(column string, op Op, values ...any) *QueryBuilder {
	q.conds = append(q.conds, Cond(column, op, values...))
	return q
}

// WhereIn appends a column IN (...) condition.
func (q *QueryBuilder) WhereIn(column string, values ...any) *QueryBuilder {
	q.conds = append(q.conds, In(column, values...))
	return q
}

// WhereFragment appends a pre-built condition fragment.
func (q *QueryBuilder) WhereFragment(f Fragment) *QueryBuilder {
	q.conds = append(q.conds, f)
	return q
}

// Join appends an INNER JOIN.
func (q *QueryBuilder) Join(table, on string) *QueryBuilder {
	q.joins = append(q.joins, InnerJoin(table, on))
	return q
}

// LeftJoin appends a LEFT JOIN.
func (q *QueryBuilder) LeftJoin(table, on string) *QueryBuilder {
	q.joins = append(q.joins, LeftJoin(table, on))
	return q
}

// GroupBy appends grouping columns.
func (q *QueryBuilder) GroupBy(columns ...string) *QueryBuilder {
	q.groupBys = append(q.groupBys, columns...)
	return q
}

// OrderBy appends an ordering term. direction is ASC or DESC.
func (q *QueryBuilder) OrderBy(column, direction string) *QueryBuilder {
	q.orderBys = append(q.orderBys, column+" "+direction)
	return q
}

// Limit caps the number of returned rows.
func (q *QueryBuilder) Limit(n int) *QueryBuilder {
	q.limit = n
	return q
}

// Offset skips the first n rows.
func (q *QueryBuilder) Offset(n int) *QueryBuilder {
	q.offset = n
	return q
}

// Build renders the builder into a parameterized query with ?
// placeholders and the bound values in placeholder order.
func (q *QueryBuilder) Build() Query {
	var sb strings.Builder
	var values []any

	if len(q.ctes) > 0 {
		sb.WriteString("WITH ")
		if q.hasRecursiveCTE() {
			sb.WriteString("RECURSIVE ")
		}
		for i, c := range q.ctes {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(c.render())
			values = append(values, c.query.Values...)
		}
		sb.WriteByte(' ')
	}

	sb.WriteString("SELECT ")
	if len(q.columns) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(q.columns, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(q.table)

	for _, j := range q.joins {
		sb.WriteByte(' ')
		sb.WriteString(j.String())
	}

	if len(q.conds) > 0 {
		where := And(q.conds...)
		sb.WriteString(" WHERE ")
		sb.WriteString(where.Text)
		values = append(values, where.Values...)
	}

	if len(q.groupBys) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(q.groupBys, ", "))
	}
	if len(q.orderBys) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(q.orderBys, ", "))
	}
	if q.limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(q.limit))
	}
	if q.offset > 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(q.offset))
	}

	return Query{Text: sb.String(), Values: values}
}
