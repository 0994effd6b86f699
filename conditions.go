package composer

import (
	"fmt"
	"strings"
)

// Op is a SQL comparison operator usable in a WHERE condition.
type Op string

const (
	OpEq        Op = "="
	OpNe        Op = "!="
	OpGt        Op = ">"
	OpGte       Op = ">="
	OpLt        Op = "<"
	OpLte       Op = "<="
	OpLike      Op = "LIKE"
	OpILike     Op = "ILIKE"
	OpIn        Op = "IN"
	OpNotIn     Op = "NOT IN"
	OpIsNull    Op = "IS NULL"
	OpIsNotNull Op = "IS NOT NULL"
	OpBetween   Op = "BETWEEN"
)

// Fragment is a piece of parameterized SQL: its text uses ? placeholders
// and carries the bound values in order. Fragments compose into larger
// fragments and finally into a full query.
type Fragment struct {
	Text   string
	Values []any
}

// Cond builds a single comparison fragment for column against op.
// Value arity follows the operator: none for IS NULL / IS NOT NULL, two
// for BETWEEN, any number for IN / NOT IN, one otherwise.
func Cond(column string, op Op, values ...any) Fragment {
	switch op {
	case OpIsNull, OpIsNotNull:
		return Fragment{Text: fmt.Sprintf("%s %s", column, op)}
	case OpIn, OpNotIn:
		return Fragment{
			Text:   fmt.Sprintf("%s %s (%s)", column, op, questionMarks(len(values))),
			Values: values,
		}
	case OpBetween:
		return Fragment{
			Text:   fmt.Sprintf("%s BETWEEN ? AND ?", column),
			Values: values,
		}
	default:
		return Fragment{
			Text:   fmt.Sprintf("%s %s ?", column, op),
			Values: values,
		}
	}
}

// In is shorthand for Cond(column, OpIn, values...).
func In(column string, values ...any) Fragment {
	return Cond(column, OpIn, values...)
}

// Raw wraps already-formed SQL text and its values into a fragment.
// The text must use ? placeholders.
func Raw(text string, values ...any) Fragment {
	return Fragment{Text: text, Values: values}
}

// And joins fragments with AND. Empty fragments are skipped.
func And(frags ...Fragment) Fragment {
	return joinFragments(" AND ", frags)
}

// Or joins fragments with OR, wrapping the result in parentheses so it
// composes safely with surrounding AND conditions.
func Or(frags ...Fragment) Fragment {
	f := joinFragments(" OR ", frags)
	if f.Text != "" {
		f.Text = "(" + f.Text + ")"
	}
	return f
}

func joinFragments(sep string, frags []Fragment) Fragment {
	parts := make([]string, 0, len(frags))
	var values []any
	for _, f := range frags {
		if f.Text == "" {
			continue
		}
		parts = append(parts, f.Text)
		values = append(values, f.Values...)
	}
	return Fragment{Text: strings.Join(parts, sep), Values: values}
}

// questionMarks returns n comma-separated ? placeholders.
func questionMarks(n int) string {
	if n <= 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(n * 2)
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('?')
	}
	return sb.String()
}

// JoinClause is one join appended to a query's FROM clause.
type JoinClause struct {
	Kind  string // INNER JOIN, LEFT JOIN, ...
	Table string
	On    string
}

func (j JoinClause) String() string {
	return fmt.Sprintf("%s %s ON %s", j.Kind, j.Table, j.On)
}

// InnerJoin builds an INNER JOIN clause.
func InnerJoin(table, on string) JoinClause {
	return JoinClause{Kind: "INNER JOIN", Table: table, On: on}
}

// LeftJoin builds a LEFT JOIN clause.
func LeftJoin(table, on string) JoinClause {
	return JoinClause{Kind: "LEFT JOIN", Table: table, On: on}
}
