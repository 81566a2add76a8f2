package syntax

import "github.com/schema-dl/schemadl/diagnostic"

// Node is embedded by every AST type; it carries the (line, column) of
// the node's first significant token, used for diagnostics (§3).
type Node struct {
	Pos diagnostic.Position
}

// Schema is the root of ownership for one compiled source file: an
// ordered sequence of TypeDefinitions (§3).
type Schema struct {
	Definitions []TypeDefinition
}

// TypeDefinition binds a name to a type expression at schema scope.
type TypeDefinition struct {
	Node
	Name string
	Body TypeExpr
}

// TypeExpr is the closed set of anonymous type forms a Schema-DL type
// expression can take. Each variant implements isTypeExpr as a marker,
// giving exhaustive-by-construction dispatch instead of a base-class
// downcast.
type TypeExpr interface {
	isTypeExpr()
	position() diagnostic.Position
}

func (n Node) position() diagnostic.Position { return n.Pos }

// PrimitiveKind is the finite set of primitive type names from §3.
type PrimitiveKind string

const (
	PrimStr  PrimitiveKind = "str"
	PrimInt  PrimitiveKind = "int"
	PrimBool PrimitiveKind = "bool"
	PrimUnit PrimitiveKind = "unit"
	PrimU8   PrimitiveKind = "u8"
	PrimU16  PrimitiveKind = "u16"
	PrimU32  PrimitiveKind = "u32"
	PrimU64  PrimitiveKind = "u64"
	PrimI8   PrimitiveKind = "i8"
	PrimI16  PrimitiveKind = "i16"
	PrimI32  PrimitiveKind = "i32"
	PrimI64  PrimitiveKind = "i64"
	PrimF32  PrimitiveKind = "f32"
	PrimF64  PrimitiveKind = "f64"
)

// primitiveKindByTokenKind maps a lexer Kind to the PrimitiveKind it
// denotes; used by the parser's parseTypeExpr dispatch.
var primitiveKindByTokenKind = map[Kind]PrimitiveKind{
	KindKeywordUnit:   PrimUnit,
	KindPrimitiveStr:  PrimStr,
	KindPrimitiveInt:  PrimInt,
	KindPrimitiveBool: PrimBool,
	KindPrimitiveU8:   PrimU8,
	KindPrimitiveU16:  PrimU16,
	KindPrimitiveU32:  PrimU32,
	KindPrimitiveU64:  PrimU64,
	KindPrimitiveI8:   PrimI8,
	KindPrimitiveI16:  PrimI16,
	KindPrimitiveI32:  PrimI32,
	KindPrimitiveI64:  PrimI64,
	KindPrimitiveF32:  PrimF32,
	KindPrimitiveF64:  PrimF64,
}

// PrimitiveType is a leaf TypeExpr naming one of the finite primitive
// kinds.
type PrimitiveType struct {
	Node
	Kind PrimitiveKind
}

func (PrimitiveType) isTypeExpr() {}

// Field is a named, typed member of a StructType.
type Field struct {
	Node
	Name string
	Type TypeExpr
}

// StructType is an ordered record of named fields.
type StructType struct {
	Node
	Fields []Field
}

func (StructType) isTypeExpr() {}

// Alternative is a named, optionally-payloaded member of a VariantType.
// A nil Type means the implicit unit payload (a bare `name` with no
// `: type`).
type Alternative struct {
	Node
	Name string
	Type TypeExpr
}

// VariantType is a tagged union over named alternatives.
type VariantType struct {
	Node
	Alternatives []Alternative
}

func (VariantType) isTypeExpr() {}

// EnumValue is one discriminator of an EnumType.
type EnumValue struct {
	Node
	Name string
}

// EnumType is a closed set of named, payload-less discriminators.
type EnumType struct {
	Node
	Values []EnumValue
}

func (EnumType) isTypeExpr() {}

// ContainerKind distinguishes the three parameterized container forms.
type ContainerKind int

const (
	ContainerArray ContainerKind = iota
	ContainerMap
	ContainerOptional
)

func (k ContainerKind) String() string {
	switch k {
	case ContainerArray:
		return "array"
	case ContainerMap:
		return "map"
	case ContainerOptional:
		return "optional"
	default:
		return "container"
	}
}

// ContainerType represents array<T>, map<K,V>, or optional<T> (§3). Array
// and Optional populate Element; Map populates Key and Value.
type ContainerType struct {
	Node
	Kind    ContainerKind
	Element TypeExpr
	Key     TypeExpr
	Value   TypeExpr
}

func (ContainerType) isTypeExpr() {}

// RefType is ref<entity>: an opaque entity handle with no payload. It is
// the sole mechanism by which a schema may express recursive or
// cross-referential structure (§4.3 phase 4).
type RefType struct {
	Node
}

func (RefType) isTypeExpr() {}

// IdentifierType is a deferred reference to a named TypeDefinition,
// resolved by symbol-table lookup during semantic analysis rather than
// carrying a pointer -- this keeps the AST tree-shaped (§9 Ownership).
type IdentifierType struct {
	Node
	Name string
}

func (IdentifierType) isTypeExpr() {}
