package codegen

import (
	"strconv"

	"github.com/schema-dl/schemadl/syntax"
)

// hoister extracts anonymous compound types (inline struct/variant/enum
// bodies nested inside a field, alternative, or container element) into
// their own named TypeDefinitions, replacing the inline occurrence with an
// IdentifierType (§4.4.4). The counter is scoped to a single top-level
// definition: HoistAnonymousTypes builds a fresh hoister per definition
// so that disambiguation numbering never leaks across definitions.
type hoister struct {
	baseName string
	counter  map[string]int
	decls    []syntax.TypeDefinition
}

// HoistAnonymousTypes returns an equivalent Schema in which every
// StructType, VariantType, and EnumType reachable from a definition's body
// -- other than the body itself, when the body already is one of those
// three kinds -- has been replaced by a reference to a newly synthesized
// top-level definition. Definitions are emitted immediately before the
// definition that first introduced them, preserving a valid (no
// forward-reference) declaration order.
func HoistAnonymousTypes(schema syntax.Schema) syntax.Schema {
	var out syntax.Schema
	for _, def := range schema.Definitions {
		h := &hoister{baseName: def.Name, counter: map[string]int{}}
		body := def.Body
		if isCompound(body) {
			// The top-level body itself keeps the definition's own name;
			// only its *nested* compounds are hoisted.
			body = h.hoistChildren(body)
		} else {
			// Array<T>/Optional<T> pass the hint through unchanged, so a
			// bare "Name: array<struct{...}>" would otherwise hoist its
			// element under the definition's own name and collide with
			// it; Map<K,V> already derives distinct "_key"/"_value"
			// hints internally, so no adjustment is needed there.
			hint := def.Name
			if ct, ok := body.(syntax.ContainerType); ok &&
				(ct.Kind == syntax.ContainerArray || ct.Kind == syntax.ContainerOptional) {
				hint = def.Name + "_elem"
			}
			body = h.hoist(body, hint)
		}
		out.Definitions = append(out.Definitions, h.decls...)
		out.Definitions = append(out.Definitions, syntax.TypeDefinition{
			Node: def.Node,
			Name: def.Name,
			Body: body,
		})
	}
	return out
}

func isCompound(t syntax.TypeExpr) bool {
	switch t.(type) {
	case syntax.StructType, syntax.VariantType, syntax.EnumType:
		return true
	}
	return false
}

// hoistChildren rewrites the immediate children of a compound type,
// returning a copy: the input AST is immutable through code generation,
// so a fresh Fields/Alternatives slice is built rather than writing
// through the slice header the caller's Schema still holds.
func (h *hoister) hoistChildren(t syntax.TypeExpr) syntax.TypeExpr {
	switch v := t.(type) {
	case syntax.StructType:
		fields := make([]syntax.Field, len(v.Fields))
		for i, f := range v.Fields {
			f.Type = h.hoist(f.Type, h.baseName+"_"+f.Name)
			fields[i] = f
		}
		v.Fields = fields
		return v

	case syntax.VariantType:
		alts := make([]syntax.Alternative, len(v.Alternatives))
		for i, a := range v.Alternatives {
			if a.Type != nil {
				a.Type = h.hoist(a.Type, h.baseName+"_"+a.Name)
			}
			alts[i] = a
		}
		v.Alternatives = alts
		return v

	default:
		return t
	}
}

// hoist rewrites t, extracting it (and recursively, its own children) into
// a named definition if t is itself a compound type; otherwise it recurses
// into container elements looking for compounds further down.
func (h *hoister) hoist(t syntax.TypeExpr, nameHint string) syntax.TypeExpr {
	switch v := t.(type) {
	case syntax.StructType, syntax.VariantType, syntax.EnumType:
		name := h.freshName(nameHint)
		rewritten := h.hoistChildren(t)
		h.decls = append(h.decls, syntax.TypeDefinition{
			Node: nodeOf(v),
			Name: name,
			Body: rewritten,
		})
		return syntax.IdentifierType{Node: nodeOf(v), Name: name}

	case syntax.ContainerType:
		switch v.Kind {
		case syntax.ContainerArray, syntax.ContainerOptional:
			v.Element = h.hoist(v.Element, nameHint)
		case syntax.ContainerMap:
			v.Key = h.hoist(v.Key, nameHint+"_key")
			v.Value = h.hoist(v.Value, nameHint+"_value")
		}
		return v

	default:
		return t
	}
}

// freshName disambiguates repeated hints (e.g. two array<struct{...}>
// fields with the same field name is impossible within one struct, but
// nested containers can still produce the same hint twice) by appending a
// monotonically increasing suffix from the second occurrence onward.
func (h *hoister) freshName(hint string) string {
	n := h.counter[hint]
	h.counter[hint] = n + 1
	if n == 0 {
		return hint
	}
	return hint + "_" + strconv.Itoa(n)
}

// nodeOf recovers the embedded syntax.Node from a compound TypeExpr.
// TypeExpr only exposes position() diagnostic.Position, not the Node
// itself, so a type switch is needed to reach it.
func nodeOf(t syntax.TypeExpr) syntax.Node {
	switch v := t.(type) {
	case syntax.StructType:
		return v.Node
	case syntax.VariantType:
		return v.Node
	case syntax.EnumType:
		return v.Node
	default:
		return syntax.Node{}
	}
}
