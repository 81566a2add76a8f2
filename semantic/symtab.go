// Package semantic implements the Semantic Analyzer stage (§4.3): symbol
// table construction (phase 1) and the three validation phases (2-4) that
// decide whether a parsed Schema may be handed to the code generator.
package semantic

import (
	"github.com/schema-dl/schemadl/diagnostic"
	"github.com/schema-dl/schemadl/syntax"
)

// symbolEntry pairs a TypeDefinition with its declaration index, used to
// detect forward references (§3 invariant 8).
type symbolEntry struct {
	def   syntax.TypeDefinition
	index int
}

// SymbolTable is the insertion-ordered name -> definition map built by
// phase 1 of semantic analysis (§4.3).
type SymbolTable struct {
	order   []string
	entries map[string]symbolEntry
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{entries: make(map[string]symbolEntry)}
}

// buildSymbolTable walks Schema.Definitions in order, recording a
// "Duplicate type definition" diagnostic for any repeated name instead of
// overwriting the earlier entry.
func buildSymbolTable(schema syntax.Schema, diags *diagnostic.List) *SymbolTable {
	tab := newSymbolTable()
	for i, def := range schema.Definitions {
		if _, dup := tab.entries[def.Name]; dup {
			diags.Add(def.Pos, "Duplicate type definition: '%s'", def.Name)
			continue
		}
		tab.entries[def.Name] = symbolEntry{def: def, index: i}
		tab.order = append(tab.order, def.Name)
	}
	return tab
}

// Lookup returns the definition bound to name and its declaration index.
func (t *SymbolTable) Lookup(name string) (syntax.TypeDefinition, int, bool) {
	e, ok := t.entries[name]
	return e.def, e.index, ok
}

// Names returns the defined type names in declaration order.
func (t *SymbolTable) Names() []string {
	return t.order
}

// Len reports the number of distinct defined names.
func (t *SymbolTable) Len() int {
	return len(t.order)
}
