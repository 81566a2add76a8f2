package codegen

import "github.com/schema-dl/schemadl/syntax"

// primitiveSpelling maps a PrimitiveKind onto the target-language spelling
// and the header that must be included for it (§4.4.3, §4.4.5). unit maps
// onto std::monostate rather than a synthesized Unit struct. A variant
// alternative whose payload is unit (implicit or explicit) does not reach
// this table: renderVariant emits an empty tag struct for it.
//
// TODO: no "bytes" primitive is mapped here; the grammar's primitive set
// doesn't define one, so a schema wanting a byte blob has to spell it
// array<u8>.
var primitiveSpelling = map[syntax.PrimitiveKind]struct {
	spelling string
	include  string
}{
	syntax.PrimStr:  {"std::string", "<string>"},
	syntax.PrimInt:  {"int32_t", "<cstdint>"},
	syntax.PrimBool: {"bool", ""},
	syntax.PrimUnit: {"std::monostate", "<variant>"},
	syntax.PrimU8:   {"uint8_t", "<cstdint>"},
	syntax.PrimU16:  {"uint16_t", "<cstdint>"},
	syntax.PrimU32:  {"uint32_t", "<cstdint>"},
	syntax.PrimU64:  {"uint64_t", "<cstdint>"},
	syntax.PrimI8:   {"int8_t", "<cstdint>"},
	syntax.PrimI16:  {"int16_t", "<cstdint>"},
	syntax.PrimI32:  {"int32_t", "<cstdint>"},
	syntax.PrimI64:  {"int64_t", "<cstdint>"},
	syntax.PrimF32:  {"float", ""},
	syntax.PrimF64:  {"double", ""},
}

// typeName renders the type-expression t as it appears at a use site: a
// field type, an alternative payload, a container element. Compound forms
// (Struct, Variant, Enum) must already have been replaced by an
// IdentifierType via hoisting (§4.4.4) before this is called; typeName
// panics on a bare compound node to catch a hoisting bug early.
func (g *generator) typeName(t syntax.TypeExpr) string {
	switch v := t.(type) {
	case syntax.PrimitiveType:
		g.needInclude(primitiveSpelling[v.Kind].include)
		return primitiveSpelling[v.Kind].spelling

	case syntax.RefType:
		return "EntityID"

	case syntax.IdentifierType:
		return PascalCase(v.Name)

	case syntax.ContainerType:
		switch v.Kind {
		case syntax.ContainerArray:
			g.needInclude("<vector>")
			return "std::vector<" + g.typeName(v.Element) + ">"
		case syntax.ContainerOptional:
			g.needInclude("<optional>")
			return "std::optional<" + g.typeName(v.Element) + ">"
		case syntax.ContainerMap:
			g.needInclude("<unordered_map>")
			return "std::unordered_map<" + g.typeName(v.Key) + ", " + g.typeName(v.Value) + ">"
		}
	}
	panic("codegen: typeName called on unhoisted compound type " + describeType(t))
}

func describeType(t syntax.TypeExpr) string {
	switch t.(type) {
	case syntax.StructType:
		return "struct"
	case syntax.VariantType:
		return "variant"
	case syntax.EnumType:
		return "enum"
	default:
		return "type"
	}
}
