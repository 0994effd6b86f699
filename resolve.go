package composer

import "context"

// Fetch executes the built query and resolves every recorded include
// against the fetched rows. Each include becomes one batched query per
// nesting level, never one per row. A composition error recorded
// earlier (unknown model or relation) fails here before anything runs.
func (q *QueryBuilder) Fetch(ctx context.Context, exec Executor) ([]Row, error) {
	if q.err != nil {
		return nil, q.err
	}
	if exec == nil {
		return nil, ErrNilExecutor
	}

	rows, err := exec.Execute(ctx, q.Build())
	if err != nil {
		return nil, err
	}
	if err := attachRelations(ctx, q.registry, exec, rows, q.includes); err != nil {
		return nil, err
	}
	return rows, nil
}

// First fetches at most one row, with includes resolved. Returns nil
// when nothing matches.
func (q *QueryBuilder) First(ctx context.Context, exec Executor) (Row, error) {
	rows, err := q.Clone().Limit(1).Fetch(ctx, exec)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// attachRelations loads every include for the parent rows through one
// Loader each and attaches the resolved values under the relation
// name. Misses materialize as nil for single relations and as an empty
// list for list relations. Includes recorded by a filter on the batch
// sub-query resolve recursively against the loaded rows.
func attachRelations(ctx context.Context, reg *Registry, exec Executor, parents []Row, includes []TrackedInclude) error {
	if len(parents) == 0 || len(includes) == 0 {
		return nil
	}

	for _, inc := range includes {
		loader := NewLoader(reg, inc.Config, exec, WithBatchFilter(inc.Filter))
		keyCol := inc.Config.parentKeyColumn()

		// Buffer every parent key before resolving anything, so the
		// whole level shares one batch.
		thunks := make([]Thunk, len(parents))
		for i, parent := range parents {
			key, ok := parent[keyCol]
			if !ok || key == nil {
				continue
			}
			thunks[i] = loader.Load(ctx, key)
		}

		for i, parent := range parents {
			if thunks[i] == nil {
				// Parent has no key to link on, e.g. a null foreign key.
				if inc.Config.single() {
					parent[inc.Relation] = nil
				} else {
					parent[inc.Relation] = []Row{}
				}
				continue
			}
			v, err := thunks[i]()
			if err != nil {
				return err
			}
			parent[inc.Relation] = v
		}

		if nested := loader.nestedIncludes(); len(nested) > 0 {
			if err := attachRelations(ctx, reg, exec, loader.fetchedRows(), nested); err != nil {
				return err
			}
		}
	}

	return nil
}
