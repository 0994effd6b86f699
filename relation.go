package composer

// RelationType identifies how two tables are linked.
type RelationType string

const (
	// RelationBelongsTo links a child row to its parent via a foreign key
	// on the child's own table.
	RelationBelongsTo RelationType = "belongsTo"

	// RelationHasOne links a parent row to at most one child row holding
	// the parent's key in a foreign key column.
	RelationHasOne RelationType = "hasOne"

	// RelationHasMany links a parent row to any number of child rows
	// holding the parent's key in a foreign key column.
	RelationHasMany RelationType = "hasMany"

	// RelationHasManyThrough links a parent row to target rows reached
	// over a junction table.
	RelationHasManyThrough RelationType = "hasManyThrough"
)

// Cardinality describes whether a relation resolves to a single row or a
// list of rows.
type Cardinality string

const (
	CardinalitySingle   Cardinality = "single"
	CardinalityMultiple Cardinality = "multiple"
)

// RelationConfig describes one named relation on a model. Zero-value
// fields are filled with conventional defaults when the owning model is
// registered, so most configs only need Type and Target.
type RelationConfig struct {
	// Type selects the linkage semantics.
	Type RelationType

	// Target is the related table the relation resolves rows from.
	Target string

	// Through is the junction table, only used by hasManyThrough.
	Through string

	// ForeignKey is the linking column. For belongsTo it lives on the
	// owning table, for hasOne/hasMany on the target table, and for
	// hasManyThrough on the junction table (pointing back at the owner).
	// Defaults to the singular form of the referenced table plus "_id".
	ForeignKey string

	// PrimaryKey is the column whose values are collected from the
	// owning rows (for belongsTo it is the key column on the target).
	// Defaults to the owner's primary key, or "id" for belongsTo.
	PrimaryKey string

	// ThroughForeignKey is the junction column pointing at the target,
	// only used by hasManyThrough. Defaults to singular target + "_id".
	ThroughForeignKey string

	// ThroughPrimaryKey is the column on the target matched against
	// ThroughForeignKey, only used by hasManyThrough. Defaults to "id".
	ThroughPrimaryKey string
}

// BelongsTo builds a child-to-parent relation config. Pass an empty
// foreignKey to use the "<singular target>_id" convention.
func BelongsTo(target, foreignKey string) RelationConfig {
	return RelationConfig{
		Type:       RelationBelongsTo,
		Target:     target,
		ForeignKey: foreignKey,
	}
}

// HasOne builds a parent-to-single-child relation config. Pass an empty
// foreignKey to use the "<singular owner>_id" convention.
func HasOne(target, foreignKey string) RelationConfig {
	return RelationConfig{
		Type:       RelationHasOne,
		Target:     target,
		ForeignKey: foreignKey,
	}
}

// HasMany builds a parent-to-children relation config. Pass an empty
// foreignKey to use the "<singular owner>_id" convention.
func HasMany(target, foreignKey string) RelationConfig {
	return RelationConfig{
		Type:       RelationHasMany,
		Target:     target,
		ForeignKey: foreignKey,
	}
}

// HasManyThrough builds a relation config that reaches target rows over
// a junction table. foreignKey is the junction column pointing back at
// the owner, throughForeignKey the junction column pointing at the
// target; either may be empty to use the "_id" conventions.
func HasManyThrough(target, through, foreignKey, throughForeignKey string) RelationConfig {
	return RelationConfig{
		Type:              RelationHasManyThrough,
		Target:            target,
		Through:           through,
		ForeignKey:        foreignKey,
		ThroughForeignKey: throughForeignKey,
	}
}

// Cardinality reports whether the relation resolves to one row or many.
func (c RelationConfig) Cardinality() Cardinality {
	switch c.Type {
	case RelationBelongsTo, RelationHasOne:
		return CardinalitySingle
	default:
		return CardinalityMultiple
	}
}

// single reports whether a miss should materialize as nil rather than
// an empty list.
func (c RelationConfig) single() bool {
	return c.Cardinality() == CardinalitySingle
}

// parentKeyColumn is the column read off each parent row to collect the
// keys a batch load is keyed by.
func (c RelationConfig) parentKeyColumn() string {
	if c.Type == RelationBelongsTo {
		return c.ForeignKey
	}
	return c.PrimaryKey
}
