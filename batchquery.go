package composer

import "fmt"

// BatchLoadConfig is the product of the batch query generator: one
// query that loads related rows for a whole set of parent keys, plus
// what the resulting rows are grouped by.
type BatchLoadConfig struct {
	// Query selects all related rows for the batch in a single round trip.
	Query Query

	// BatchKey is the column on the result rows whose value links each
	// row back to a parent key.
	BatchKey string

	// Cardinality tells the resolver whether each parent gets one row
	// or a list.
	Cardinality Cardinality
}

// BuildBatchQuery generates the batched query for one relation and a
// set of unique parent keys. It has no side effects and touches no
// connection; the registry is only consulted to resolve the target
// table's model for nested includes.
func BuildBatchQuery(r *Registry, rel RelationConfig, keys []any) (BatchLoadConfig, error) {
	qb, batchKey, err := batchQueryBuilder(r, rel, keys)
	if err != nil {
		return BatchLoadConfig{}, err
	}
	return BatchLoadConfig{
		Query:       qb.Build(),
		BatchKey:    batchKey,
		Cardinality: rel.Cardinality(),
	}, nil
}

// batchQueryBuilder maps a relation config onto a builder keyed by the
// collected parent keys. The switch is exhaustive over the relation
// types; anything else is a config error.
func batchQueryBuilder(r *Registry, rel RelationConfig, keys []any) (*QueryBuilder, string, error) {
	switch rel.Type {
	case RelationBelongsTo:
		// Parents carry the foreign key, so the batch matches the
		// target's key column against the collected values.
		qb := newTableQuery(r, rel.Target).WhereIn(rel.PrimaryKey, keys...)
		return qb, rel.PrimaryKey, nil

	case RelationHasOne, RelationHasMany:
		qb := newTableQuery(r, rel.Target).WhereIn(rel.ForeignKey, keys...)
		return qb, rel.ForeignKey, nil

	case RelationHasManyThrough:
		// Target rows joined over the junction; the junction's owner
		// column is projected so rows can be grouped back to parents.
		on := fmt.Sprintf("%s.%s = %s.%s",
			rel.Target, rel.ThroughPrimaryKey, rel.Through, rel.ThroughForeignKey)
		qb := newTableQuery(r, rel.Target).
			Select(rel.Target+".*", rel.Through+"."+rel.ForeignKey).
			Join(rel.Through, on).
			WhereIn(rel.Through+"."+rel.ForeignKey, keys...)
		return qb, rel.ForeignKey, nil

	default:
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidRelation, rel.Type)
	}
}
