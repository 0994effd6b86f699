package composer

import "fmt"

// defaultTextSearchConfig is the regconfig used when none is given.
const defaultTextSearchConfig = "english"

// FullTextMatch matches rows where the column's text vector matches
// the plain-language query.
func FullTextMatch(config, column, query string) Fragment {
	return Fragment{
		Text: fmt.Sprintf("to_tsvector('%s', %s) @@ plainto_tsquery('%s', ?)",
			config, column, config),
		Values: []any{query},
	}
}

// FullTextPhrase matches rows where the column contains the query terms
// as an adjacent phrase.
func FullTextPhrase(config, column, query string) Fragment {
	return Fragment{
		Text: fmt.Sprintf("to_tsvector('%s', %s) @@ phraseto_tsquery('%s', ?)",
			config, column, config),
		Values: []any{query},
	}
}

// FullTextRank renders a ts_rank expression for the column against the
// query, for projection or ordering.
func FullTextRank(config, column, query string) Fragment {
	return Fragment{
		Text: fmt.Sprintf("ts_rank(to_tsvector('%s', %s), plainto_tsquery('%s', ?))",
			config, column, config),
		Values: []any{query},
	}
}

// WhereFullText appends an english full-text match condition.
func (q *QueryBuilder) WhereFullText(column, query string) *QueryBuilder {
	return q.WhereFragment(FullTextMatch(defaultTextSearchConfig, column, query))
}

// WhereFullTextWithConfig appends a full-text match condition using the
// given text search configuration, e.g. "spanish".
func (q *QueryBuilder) WhereFullTextWithConfig(column, query, config string) *QueryBuilder {
	return q.WhereFragment(FullTextMatch(config, column, query))
}

// WhereFullTextPhrase appends an english phrase match condition.
func (q *QueryBuilder) WhereFullTextPhrase(column, query string) *QueryBuilder {
	return q.WhereFragment(FullTextPhrase(defaultTextSearchConfig, column, query))
}
