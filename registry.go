package composer

import (
	"sync"

	"github.com/gertd/go-pluralize"
	"github.com/iancoleman/strcase"
)

var inflector = pluralize.NewClient()

// ModelConfig is the caller-supplied description of a model. Table and
// PrimaryKey may be left empty to use conventions (pluralized snake_case
// name, "id").
type ModelConfig struct {
	Name       string
	Table      string
	PrimaryKey string
	Relations  map[string]RelationConfig
}

// ModelDefinition is a registered model. Its relation map is a private
// copy of the config's map, so later mutations of the caller's map do
// not leak into the registry.
type ModelDefinition struct {
	Name       string
	Table      string
	PrimaryKey string

	relations map[string]RelationConfig
}

// Relation returns the named relation config, if configured.
func (m *ModelDefinition) Relation(name string) (RelationConfig, bool) {
	rel, ok := m.relations[name]
	return rel, ok
}

// RelationNames returns the configured relation names in no particular order.
func (m *ModelDefinition) RelationNames() []string {
	names := make([]string, 0, len(m.relations))
	for name := range m.relations {
		names = append(names, name)
	}
	return names
}

// Registry maps model names to their definitions. All methods are safe
// for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*ModelDefinition
}

// NewRegistry creates an empty model registry.
func NewRegistry() *Registry {
	return &Registry{
		models: make(map[string]*ModelDefinition),
	}
}

// Define registers a model under cfg.Name, filling in conventional
// defaults for the table name, primary key and every relation's key
// columns. Re-defining an existing name replaces the previous entry.
func (r *Registry) Define(cfg ModelConfig) *ModelDefinition {
	table := cfg.Table
	if table == "" {
		table = inflector.Plural(strcase.ToSnake(cfg.Name))
	}
	pk := cfg.PrimaryKey
	if pk == "" {
		pk = "id"
	}

	def := &ModelDefinition{
		Name:       cfg.Name,
		Table:      table,
		PrimaryKey: pk,
		relations:  make(map[string]RelationConfig, len(cfg.Relations)),
	}
	for name, rel := range cfg.Relations {
		def.relations[name] = normalizeRelation(rel, def)
	}

	r.mu.Lock()
	r.models[cfg.Name] = def
	r.mu.Unlock()

	return def
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (*ModelDefinition, bool) {
	r.mu.RLock()
	def, ok := r.models[name]
	r.mu.RUnlock()
	return def, ok
}

// HasRelation reports whether the named model exists and configures the
// named relation.
func (r *Registry) HasRelation(model, relation string) bool {
	def, ok := r.Get(model)
	if !ok {
		return false
	}
	_, ok = def.relations[relation]
	return ok
}

// GetRelation returns the named relation config on the named model.
func (r *Registry) GetRelation(model, relation string) (RelationConfig, bool) {
	def, ok := r.Get(model)
	if !ok {
		return RelationConfig{}, false
	}
	return def.Relation(relation)
}

// ModelForTable returns the definition whose table matches, if any.
// When several models share a table, which one is returned is undefined.
func (r *Registry) ModelForTable(table string) (*ModelDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, def := range r.models {
		if def.Table == table {
			return def, true
		}
	}
	return nil, false
}

// ClearAll removes every registered model. Mostly useful in tests.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	r.models = make(map[string]*ModelDefinition)
	r.mu.Unlock()
}

// normalizeRelation fills a relation config's zero-value key columns
// with the conventional defaults relative to its owning model.
func normalizeRelation(rel RelationConfig, owner *ModelDefinition) RelationConfig {
	switch rel.Type {
	case RelationBelongsTo:
		if rel.ForeignKey == "" {
			rel.ForeignKey = foreignKeyFor(rel.Target)
		}
		if rel.PrimaryKey == "" {
			rel.PrimaryKey = "id"
		}
	case RelationHasOne, RelationHasMany:
		if rel.ForeignKey == "" {
			rel.ForeignKey = foreignKeyFor(owner.Table)
		}
		if rel.PrimaryKey == "" {
			rel.PrimaryKey = owner.PrimaryKey
		}
	case RelationHasManyThrough:
		if rel.ForeignKey == "" {
			rel.ForeignKey = foreignKeyFor(owner.Table)
		}
		if rel.PrimaryKey == "" {
			rel.PrimaryKey = owner.PrimaryKey
		}
		if rel.ThroughForeignKey == "" {
			rel.ThroughForeignKey = foreignKeyFor(rel.Target)
		}
		if rel.ThroughPrimaryKey == "" {
			rel.ThroughPrimaryKey = "id"
		}
	}
	return rel
}

// foreignKeyFor derives the conventional foreign key column for a table:
// the singular snake_case form suffixed with "_id".
func foreignKeyFor(table string) string {
	return inflector.Singular(strcase.ToSnake(table)) + "_id"
}

// defaultRegistry backs the package-level convenience functions.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry used by the package-level Define
// and Get helpers.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Define registers a model in the default registry.
func Define(cfg ModelConfig) *ModelDefinition {
	return defaultRegistry.Define(cfg)
}

// Get looks a model up in the default registry.
func Get(name string) (*ModelDefinition, bool) {
	return defaultRegistry.Get(name)
}
