package composer

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/table"
)

// PrintSchematic writes a human-readable summary of every registered
// model, its table and its relations, for debugging configuration.
func (r *Registry) PrintSchematic(out io.Writer) {
	r.mu.RLock()
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	defs := make([]*ModelDefinition, len(names))
	for i, name := range names {
		defs[i] = r.models[name]
	}
	r.mu.RUnlock()

	for _, def := range defs {
		fmt.Fprintf(out, "model: %s (table %s, pk %s)\n", def.Name, def.Table, def.PrimaryKey)

		relNames := def.RelationNames()
		sort.Strings(relNames)

		w := table.NewWriter()
		w.AppendHeader(table.Row{"Relation", "Type", "Target", "Through", "Foreign Key", "Primary Key"})
		for _, relName := range relNames {
			rel, _ := def.Relation(relName)
			w.AppendRow(table.Row{relName, rel.Type, rel.Target, rel.Through, rel.ForeignKey, rel.PrimaryKey})
		}
		fmt.Fprintln(out, w.Render())
	}
}
