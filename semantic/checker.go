package semantic

import (
	"github.com/schema-dl/schemadl/diagnostic"
	"github.com/schema-dl/schemadl/syntax"
)

// Checker validates a parsed Schema against the invariants of spec §3 and
// accumulates diagnostics. It is pure over the AST: it never mutates
// nodes (§4.3 contract).
type Checker struct {
	schema syntax.Schema
	symtab *SymbolTable
	diags  diagnostic.List
}

// NewChecker builds a Checker for schema. Call Check to run all phases.
func NewChecker(schema syntax.Schema) *Checker {
	return &Checker{schema: schema}
}

// SymbolTable returns the table built by phase 1. It is only meaningful
// after Check has run.
func (c *Checker) SymbolTable() *SymbolTable {
	return c.symtab
}

// Errors returns the accumulated semantic diagnostics, formatted
// "Line L, Column C: message".
func (c *Checker) Errors() []string {
	return c.diags.Errors()
}

// Check runs all four phases in order and reports whether every
// invariant in §3 held. Symbol-table construction happens-before
// per-definition validation (§5 ordering guarantee).
func (c *Checker) Check() bool {
	c.symtab = buildSymbolTable(c.schema, &c.diags)

	for i, def := range c.schema.Definitions {
		c.validate(def.Body, def.Name, i)
	}

	for i, def := range c.schema.Definitions {
		if _, idx, ok := c.symtab.Lookup(def.Name); ok && idx == i {
			c.checkLeafTermination(def.Body, def.Name, map[string]bool{})
		}
	}

	c.detectCycles()

	return c.diags.Empty()
}

// validate is phase 2: per-definition structural validation and
// identifier resolution, walked with a context breadcrumb string used in
// messages (e.g. "Player.inventory (map value)").
func (c *Checker) validate(t syntax.TypeExpr, ctx string, defIndex int) {
	switch v := t.(type) {
	case syntax.StructType:
		if len(v.Fields) == 0 {
			c.diags.Add(v.Pos, "Struct must have at least one field in type '%s'", ctx)
		}
		seen := map[string]bool{}
		for _, f := range v.Fields {
			if seen[f.Name] {
				c.diags.Add(f.Pos, "Duplicate field name '%s' in type '%s'", f.Name, ctx)
			}
			seen[f.Name] = true
			c.validate(f.Type, ctx+"."+f.Name, defIndex)
		}

	case syntax.VariantType:
		if len(v.Alternatives) == 0 {
			c.diags.Add(v.Pos, "Variant must have at least one alternative in type '%s'", ctx)
		}
		seen := map[string]bool{}
		for _, a := range v.Alternatives {
			if seen[a.Name] {
				c.diags.Add(a.Pos, "Duplicate alternative name '%s' in type '%s'", a.Name, ctx)
			}
			seen[a.Name] = true
			if a.Type != nil {
				c.validate(a.Type, ctx+"."+a.Name, defIndex)
			}
		}

	case syntax.EnumType:
		if len(v.Values) == 0 {
			c.diags.Add(v.Pos, "Enum must have at least one value in type '%s'", ctx)
		}
		seen := map[string]bool{}
		for _, val := range v.Values {
			if seen[val.Name] {
				c.diags.Add(val.Pos, "Duplicate enum value '%s' in type '%s'", val.Name, ctx)
			}
			seen[val.Name] = true
		}

	case syntax.ContainerType:
		switch v.Kind {
		case syntax.ContainerArray:
			c.validate(v.Element, ctx+" (array element)", defIndex)
		case syntax.ContainerOptional:
			c.validate(v.Element, ctx+" (optional element)", defIndex)
			if containsOptional(v.Element) {
				c.diags.Add(v.Pos, "Nested optional types are not allowed in type '%s'", ctx)
			}
		case syntax.ContainerMap:
			c.validate(v.Key, ctx+" (map key)", defIndex)
			c.validate(v.Value, ctx+" (map value)", defIndex)
		}

	case syntax.IdentifierType:
		_, idx, ok := c.symtab.Lookup(v.Name)
		if !ok {
			c.diags.Add(v.Pos, "Undefined type '%s' referenced in '%s'", v.Name, ctx)
			return
		}
		if idx > defIndex {
			c.diags.Add(v.Pos, "Forward reference to type '%s' (defined later) in '%s'", v.Name, ctx)
		}

	case syntax.PrimitiveType, syntax.RefType:
		// no per-node obligations (§4.3 phase 2)
	}
}

// containsOptional walks through Array/Map/Optional container nesting
// (never through Struct/Variant/Identifier) looking for another Optional,
// implementing the "directly or transitively (through containers only)"
// wording of §3 invariant 7.
func containsOptional(t syntax.TypeExpr) bool {
	ct, ok := t.(syntax.ContainerType)
	if !ok {
		return false
	}
	switch ct.Kind {
	case syntax.ContainerOptional:
		return true
	case syntax.ContainerArray:
		return containsOptional(ct.Element)
	case syntax.ContainerMap:
		return containsOptional(ct.Key) || containsOptional(ct.Value)
	}
	return false
}

// checkLeafTermination is phase 3: every path from a definition's root
// must terminate at a Primitive, Ref, or Enum leaf (§3 invariant 10).
// visiting guards against infinite recursion on a not-yet-reported cycle;
// phase 4 is responsible for reporting cycles themselves.
func (c *Checker) checkLeafTermination(t syntax.TypeExpr, ctx string, visiting map[string]bool) bool {
	switch v := t.(type) {
	case syntax.PrimitiveType, syntax.RefType, syntax.EnumType:
		return true

	case syntax.StructType:
		if len(v.Fields) == 0 {
			return false
		}
		for _, f := range v.Fields {
			if c.checkLeafTermination(f.Type, ctx+"."+f.Name, visiting) {
				return true
			}
		}
		c.diags.Add(v.Pos, "Type path in '%s' does not terminate at a primitive or ref type", ctx)
		return false

	case syntax.VariantType:
		if len(v.Alternatives) == 0 {
			return false
		}
		for _, a := range v.Alternatives {
			if a.Type == nil {
				return true // implicit unit terminates
			}
			if c.checkLeafTermination(a.Type, ctx+"."+a.Name, visiting) {
				return true
			}
		}
		c.diags.Add(v.Pos, "Type path in '%s' does not terminate at a primitive or ref type", ctx)
		return false

	case syntax.ContainerType:
		switch v.Kind {
		case syntax.ContainerArray, syntax.ContainerOptional:
			return c.checkLeafTermination(v.Element, ctx, visiting)
		case syntax.ContainerMap:
			key := c.checkLeafTermination(v.Key, ctx+" (map key)", visiting)
			val := c.checkLeafTermination(v.Value, ctx+" (map value)", visiting)
			return key && val
		}
		return false

	case syntax.IdentifierType:
		if visiting[v.Name] {
			return true // cycle: phase 4 reports it, don't compound here
		}
		def, _, ok := c.symtab.Lookup(v.Name)
		if !ok {
			return true // already reported as undefined in phase 2
		}
		visiting[v.Name] = true
		ok2 := c.checkLeafTermination(def.Body, v.Name, visiting)
		delete(visiting, v.Name)
		return ok2
	}
	return false
}

// detectCycles is phase 4: DFS over TypeDefinition -> Identifier edges,
// using gray/black sets. Ref edges are never followed, making ref<entity>
// the canonical way to break a cycle (§4.3 phase 4).
func (c *Checker) detectCycles() {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, c.symtab.Len())
	reported := make(map[string]bool)

	var visit func(name string)
	visit = func(name string) {
		switch color[name] {
		case black:
			return
		case gray:
			if !reported[name] {
				reported[name] = true
				if def, _, ok := c.symtab.Lookup(name); ok {
					c.diags.Add(def.Pos, "Circular type dependency detected for: '%s'", name)
				} else {
					c.diags.Add(diagnostic.Position{}, "Circular type dependency detected for: '%s'", name)
				}
			}
			return
		}
		color[name] = gray
		def, _, ok := c.symtab.Lookup(name)
		if ok {
			for _, ref := range collectEdges(def.Body) {
				if _, _, exists := c.symtab.Lookup(ref); exists {
					visit(ref)
				}
			}
		}
		color[name] = black
	}

	for _, name := range c.symtab.Names() {
		visit(name)
	}
}

// collectEdges returns, in first-seen order, every named type that t
// references directly or through Struct/Variant/Container nesting. Ref
// nodes are terminal and contribute no edge.
func collectEdges(t syntax.TypeExpr) []string {
	var out []string
	seen := map[string]bool{}
	var walk func(syntax.TypeExpr)
	walk = func(t syntax.TypeExpr) {
		switch v := t.(type) {
		case syntax.StructType:
			for _, f := range v.Fields {
				walk(f.Type)
			}
		case syntax.VariantType:
			for _, a := range v.Alternatives {
				if a.Type != nil {
					walk(a.Type)
				}
			}
		case syntax.ContainerType:
			switch v.Kind {
			case syntax.ContainerArray, syntax.ContainerOptional:
				walk(v.Element)
			case syntax.ContainerMap:
				walk(v.Key)
				walk(v.Value)
			}
		case syntax.IdentifierType:
			if !seen[v.Name] {
				seen[v.Name] = true
				out = append(out, v.Name)
			}
		}
	}
	walk(t)
	return out
}
