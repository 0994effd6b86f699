package composer

import "strings"

// cte is one common table expression prefixed onto a built query.
type cte struct {
	name      string
	columns   []string
	query     Query
	recursive bool
}

func (c cte) render() string {
	var sb strings.Builder
	sb.WriteString(c.name)
	if len(c.columns) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(c.columns, ", "))
		sb.WriteByte(')')
	}
	sb.WriteString(" AS (")
	sb.WriteString(c.query.Text)
	sb.WriteByte(')')
	return sb.String()
}

func (q *QueryBuilder) hasRecursiveCTE() bool {
	for _, c := range q.ctes {
		if c.recursive {
			return true
		}
	}
	return false
}

// WithCTE prefixes the query with a named common table expression.
// The body may be raw SQL, a Query, or another builder.
func (q *QueryBuilder) WithCTE(name string, body any) *QueryBuilder {
	var inner Query
	switch b := body.(type) {
	case string:
		inner = Query{Text: b}
	case Query:
		inner = b
	case *QueryBuilder:
		inner = b.Build()
	default:
		return q
	}
	q.ctes = append(q.ctes, cte{name: name, query: inner})
	return q
}

// WithRecursiveCTE prefixes the query with a WITH RECURSIVE expression
// whose body is the base query unioned with the recursive step.
func (q *QueryBuilder) WithRecursiveCTE(name string, columns []string, base, step Query) *QueryBuilder {
	body := Query{
		Text:   base.Text + " UNION ALL " + step.Text,
		Values: append(append([]any(nil), base.Values...), step.Values...),
	}
	q.ctes = append(q.ctes, cte{
		name:      name,
		columns:   columns,
		query:     body,
		recursive: true,
	})
	return q
}
