package composer

import "context"

// ExistsFragment wraps a sub-query in an EXISTS condition.
func ExistsFragment(sub *QueryBuilder) Fragment {
	inner := sub.Build()
	return Fragment{
		Text:   "EXISTS (" + inner.Text + ")",
		Values: inner.Values,
	}
}

// NotExistsFragment wraps a sub-query in a NOT EXISTS condition.
func NotExistsFragment(sub *QueryBuilder) Fragment {
	inner := sub.Build()
	return Fragment{
		Text:   "NOT EXISTS (" + inner.Text + ")",
		Values: inner.Values,
	}
}

// WhereExists appends an EXISTS condition over the sub-query.
func (q *QueryBuilder) WhereExists(sub *QueryBuilder) *QueryBuilder {
	return q.WhereFragment(ExistsFragment(sub))
}

// WhereNotExists appends a NOT EXISTS condition over the sub-query.
func (q *QueryBuilder) WhereNotExists(sub *QueryBuilder) *QueryBuilder {
	return q.WhereFragment(NotExistsFragment(sub))
}

// Exists reports whether the query matches at least one row, without
// fetching the rows themselves.
func (q *QueryBuilder) Exists(ctx context.Context, exec Executor) (bool, error) {
	if q.err != nil {
		return false, q.err
	}
	if exec == nil {
		return false, ErrNilExecutor
	}

	inner := q.Clone().Select("1").Limit(1).Build()
	probe := Query{
		Text:   "SELECT EXISTS (" + inner.Text + ") AS present",
		Values: inner.Values,
	}

	rows, err := exec.Execute(ctx, probe)
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}
	return truthy(rows[0]["present"]), nil
}

// truthy interprets a driver-dependent boolean result column.
func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case int:
		return b != 0
	case string:
		return b == "t" || b == "true" || b == "1"
	case []byte:
		return truthy(string(b))
	default:
		return false
	}
}
