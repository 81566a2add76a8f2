package syntax

import "github.com/schema-dl/schemadl/diagnostic"

// Kind identifies the lexical category of a Token.
type Kind string

const (
	KindEOF   Kind = ""
	KindError Kind = "<error>"

	KindNewline    Kind = "<newline>"
	KindWhitespace Kind = "<whitespace>"
	KindComment    Kind = "<comment>"

	KindIdentifier     Kind = "<ident>"
	KindStringLiteral  Kind = "<string>"
	KindNumberLiteral  Kind = "<number>"
	KindBooleanLiteral Kind = "<bool>"

	// Punctuation. One kind per character; the lexeme carries the byte.
	KindColon   Kind = ":"
	KindComma   Kind = ","
	KindLBrace  Kind = "{"
	KindRBrace  Kind = "}"
	KindLAngle  Kind = "<"
	KindRAngle  Kind = ">"
	KindLParen  Kind = "("
	KindRParen  Kind = ")"

	// Structural keywords.
	KindKeywordStruct   Kind = "struct"
	KindKeywordVariant  Kind = "variant"
	KindKeywordEnum     Kind = "enum"
	KindKeywordUnit     Kind = "unit"
	KindKeywordArray    Kind = "array"
	KindKeywordMap      Kind = "map"
	KindKeywordOptional Kind = "optional"
	KindKeywordRef      Kind = "ref"
	KindKeywordEntity   Kind = "entity"

	// Primitive type names.
	KindPrimitiveStr  Kind = "str"
	KindPrimitiveInt  Kind = "int"
	KindPrimitiveBool Kind = "bool"
	KindPrimitiveU8   Kind = "u8"
	KindPrimitiveU16  Kind = "u16"
	KindPrimitiveU32  Kind = "u32"
	KindPrimitiveU64  Kind = "u64"
	KindPrimitiveI8   Kind = "i8"
	KindPrimitiveI16  Kind = "i16"
	KindPrimitiveI32  Kind = "i32"
	KindPrimitiveI64  Kind = "i64"
	KindPrimitiveF32  Kind = "f32"
	KindPrimitiveF64  Kind = "f64"
)

func (k Kind) String() string {
	if k == KindEOF {
		return "<eof>"
	}
	return string(k)
}

// keywords maps a scanned identifier lexeme to its keyword Kind. Anything
// not present here is an ordinary KindIdentifier.
var keywords = map[string]Kind{
	"struct":   KindKeywordStruct,
	"variant":  KindKeywordVariant,
	"enum":     KindKeywordEnum,
	"unit":     KindKeywordUnit,
	"array":    KindKeywordArray,
	"map":      KindKeywordMap,
	"optional": KindKeywordOptional,
	"ref":      KindKeywordRef,
	"entity":   KindKeywordEntity,

	"str":  KindPrimitiveStr,
	"int":  KindPrimitiveInt,
	"bool": KindPrimitiveBool,
	"u8":   KindPrimitiveU8,
	"u16":  KindPrimitiveU16,
	"u32":  KindPrimitiveU32,
	"u64":  KindPrimitiveU64,
	"i8":   KindPrimitiveI8,
	"i16":  KindPrimitiveI16,
	"i32":  KindPrimitiveI32,
	"i64":  KindPrimitiveI64,
	"f32":  KindPrimitiveF32,
	"f64":  KindPrimitiveF64,

	"true":  KindBooleanLiteral,
	"false": KindBooleanLiteral,
}

// primitiveKinds is the set of Kind values that denote a primitive type
// name (including the unit keyword); IsPrimitiveKind, used by the
// parser, looks kinds up here.
var primitiveKinds = map[Kind]bool{
	KindKeywordUnit:   true,
	KindPrimitiveStr:  true,
	KindPrimitiveInt:  true,
	KindPrimitiveBool: true,
	KindPrimitiveU8:   true,
	KindPrimitiveU16:  true,
	KindPrimitiveU32:  true,
	KindPrimitiveU64:  true,
	KindPrimitiveI8:   true,
	KindPrimitiveI16:  true,
	KindPrimitiveI32:  true,
	KindPrimitiveI64:  true,
	KindPrimitiveF32:  true,
	KindPrimitiveF64:  true,
}

// IsPrimitiveKind reports whether k names a primitive type in the Schema-DL
// grammar (§4.2 PrimT).
func IsPrimitiveKind(k Kind) bool {
	return primitiveKinds[k]
}

// Token is an immutable lexical unit produced by the Lexer.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    diagnostic.Position

	// Value holds the interpreted literal value for KindStringLiteral
	// (decoded string) and KindBooleanLiteral (bool); nil otherwise.
	Value any
}

// IsAny reports whether the token's Kind is one of the given kinds.
func (t Token) IsAny(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}
