package composer

import (
	"fmt"
	"strings"
)

// JSONBContains matches rows whose jsonb column contains the given
// document (the @> operator). document is raw JSON text.
func JSONBContains(column string, document string) Fragment {
	return Fragment{
		Text:   fmt.Sprintf("%s @> ?::jsonb", column),
		Values: []any{document},
	}
}

// JSONBContainedBy matches rows whose jsonb column is contained by the
// given document (the <@ operator).
func JSONBContainedBy(column string, document string) Fragment {
	return Fragment{
		Text:   fmt.Sprintf("%s <@ ?::jsonb", column),
		Values: []any{document},
	}
}

// JSONBHasKey matches rows whose jsonb column has the given top-level
// key. Uses the jsonb_exists function form; the ? operator would
// collide with placeholder syntax.
func JSONBHasKey(column string, key string) Fragment {
	return Fragment{
		Text:   fmt.Sprintf("jsonb_exists(%s, ?)", column),
		Values: []any{key},
	}
}

// JSONBExtractText renders a #>> path extraction expression, usable as
// a projected column or inside a condition.
func JSONBExtractText(column string, path ...string) string {
	return fmt.Sprintf("%s #>> '{%s}'", column, strings.Join(path, ","))
}

// JSONBPathEquals matches rows where the text at the given path equals
// the value.
func JSONBPathEquals(column string, path []string, value any) Fragment {
	return Fragment{
		Text:   JSONBExtractText(column, path...) + " = ?",
		Values: []any{value},
	}
}

// WhereJSONBContains appends a jsonb containment condition.
func (q *QueryBuilder) WhereJSONBContains(column string, document string) *QueryBuilder {
	return q.WhereFragment(JSONBContains(column, document))
}

// WhereJSONBHasKey appends a jsonb key-existence condition.
func (q *QueryBuilder) WhereJSONBHasKey(column string, key string) *QueryBuilder {
	return q.WhereFragment(JSONBHasKey(column, key))
}
