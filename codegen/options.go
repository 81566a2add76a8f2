// Package codegen implements the Code Generator stage (§4.4): lowering a
// validated Schema into a self-contained target-language header text.
package codegen

// Options configures the code generator (§4.4). Every field is
// independent; unset string fields fall back to the defaults documented
// on DefaultOptions.
type Options struct {
	// NamespaceName wraps all emitted definitions in this module/namespace
	// scope.
	NamespaceName string

	// OutputBasename derives the header-guard macro name.
	OutputBasename string

	// GenerateSerialization is reserved; when true, future serialization
	// helpers are to be emitted. Not required for baseline compliance.
	//
	// TODO: the source spec reserves this flag without defining
	// serialization semantics; left unimplemented on purpose.
	GenerateSerialization bool

	// GenerateReflection is reserved, analogous to GenerateSerialization.
	GenerateReflection bool

	// UseStrongEntityID selects a typed wrapper for entity identifiers
	// instead of a bare integer alias.
	UseStrongEntityID bool

	// EntityIDTypedef is the underlying integer type used for entity
	// identifiers. Defaults to "uint64_t".
	EntityIDTypedef string

	// IndentationSize is the number of spaces per indent level. Defaults
	// to 4.
	IndentationSize int
}

// DefaultOptions returns the baseline options a caller can override
// selectively.
func DefaultOptions() Options {
	return Options{
		NamespaceName:   "schema",
		OutputBasename:  "schema",
		EntityIDTypedef: "uint64_t",
		IndentationSize: 4,
	}
}

// normalized fills in zero-valued fields with their defaults, without
// mutating the caller's Options.
func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.NamespaceName == "" {
		o.NamespaceName = d.NamespaceName
	}
	if o.OutputBasename == "" {
		o.OutputBasename = d.OutputBasename
	}
	if o.EntityIDTypedef == "" {
		o.EntityIDTypedef = d.EntityIDTypedef
	}
	if o.IndentationSize <= 0 {
		o.IndentationSize = d.IndentationSize
	}
	return o
}
