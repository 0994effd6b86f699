package composer

// IncludeFilter customizes the batch query of an included relation. It
// receives the sub-query that will load the related rows and may narrow,
// order or limit it, or include further relations off it. The callback
// is held unevaluated until the batch query is generated, and then runs
// exactly once per batch.
type IncludeFilter func(*QueryBuilder)

// TrackedInclude is one recorded include on a builder: the relation
// name, its resolved config and the optional filter callback.
type TrackedInclude struct {
	Relation string
	Config   RelationConfig
	Filter   IncludeFilter
}

// Include records that the named relation should be resolved and
// attached to every fetched row. An unknown relation name is recorded
// as an error immediately, before any query runs; it surfaces through
// Err and fails the fetch. The optional filter is not invoked here.
func (q *QueryBuilder) Include(relation string, filter ...IncludeFilter) *QueryBuilder {
	if q.err != nil {
		return q
	}
	if q.model == nil {
		q.err = WrapRelationError(relation, q.table, ErrModelNotFound)
		return q
	}
	cfg, ok := q.model.Relation(relation)
	if !ok {
		q.err = WrapRelationError(relation, q.model.Name, ErrRelationNotFound)
		return q
	}

	inc := TrackedInclude{Relation: relation, Config: cfg}
	if len(filter) > 0 {
		inc.Filter = filter[0]
	}
	q.includes = append(q.includes, inc)
	return q
}

// GetIncludes returns a copy of the recorded includes. Mutating the
// returned slice does not affect the builder.
func (q *QueryBuilder) GetIncludes() []TrackedInclude {
	out := make([]TrackedInclude, len(q.includes))
	copy(out, q.includes)
	return out
}

// Clone returns an independent copy of the builder. The slices are
// shallow-copied, so appending conditions or includes to the clone
// leaves the original untouched, while recorded entries are shared.
func (q *QueryBuilder) Clone() *QueryBuilder {
	c := *q
	c.columns = append([]string(nil), q.columns...)
	c.ctes = append([]cte(nil), q.ctes...)
	c.joins = append([]JoinClause(nil), q.joins...)
	c.conds = append([]Fragment(nil), q.conds...)
	c.groupBys = append([]string(nil), q.groupBys...)
	c.orderBys = append([]string(nil), q.orderBys...)
	c.includes = append([]TrackedInclude(nil), q.includes...)
	return &c
}
