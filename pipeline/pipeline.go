// Package pipeline wires the four compilation stages -- lexer, parser,
// semantic analyzer, code generator -- into a single Compile call (§5).
// A Pipeline instance holds no state between calls and shares nothing
// with any other instance: two goroutines may each drive their own
// Pipeline over the same or different sources concurrently.
package pipeline

import (
	"strings"

	"github.com/schema-dl/schemadl/codegen"
	"github.com/schema-dl/schemadl/semantic"
	"github.com/schema-dl/schemadl/syntax"
)

// Result carries every diagnostic and, if compilation succeeded, the
// generated header text. Lexical and parse diagnostics are collected
// together, since the parser runs over the whole token stream; any of
// them stops the pipeline before semantic analysis, and any semantic
// diagnostic stops it before code generation (§5, §7).
type Result struct {
	LexErrors      []string
	ParseErrors    []string
	SemanticErrors []string

	Schema  syntax.Schema
	Output  string
	Options codegen.Options
}

// OK reports whether every stage that ran produced no diagnostics and
// code generation completed.
func (r Result) OK() bool {
	return len(r.LexErrors) == 0 && len(r.ParseErrors) == 0 && len(r.SemanticErrors) == 0 && r.Output != ""
}

// Diagnostics returns every accumulated diagnostic across all three
// diagnostic-producing stages, in stage order.
func (r Result) Diagnostics() []string {
	out := make([]string, 0, len(r.LexErrors)+len(r.ParseErrors)+len(r.SemanticErrors))
	out = append(out, r.LexErrors...)
	out = append(out, r.ParseErrors...)
	out = append(out, r.SemanticErrors...)
	return out
}

// Pipeline runs the four stages in the fixed order required by §5:
// lexing happens-before parsing, parsing happens-before semantic
// analysis, and semantic analysis happens-before code generation. Code
// generation is only attempted when the lexer, parser, and semantic
// analyzer all reported zero diagnostics, since the generator's contract
// (§4.4) assumes a validated tree.
type Pipeline struct {
	Options codegen.Options
}

// New builds a Pipeline that generates code with opts.
func New(opts codegen.Options) *Pipeline {
	return &Pipeline{Options: opts}
}

// Analyze runs Lex -> Parse -> Semantic Analysis only, for callers (such
// as a lint command) that need diagnostics but never invoke Codegen.
func (p *Pipeline) Analyze(source string) Result {
	var res Result
	res.Options = p.Options

	lex := syntax.NewLexer(strings.NewReader(source))
	parser := syntax.NewParser(lex)
	res.Schema = parser.Parse()
	res.LexErrors = lex.Errors()
	res.ParseErrors = parser.Errors()

	if len(res.LexErrors) > 0 || len(res.ParseErrors) > 0 {
		return res
	}

	checker := semantic.NewChecker(res.Schema)
	if !checker.Check() {
		res.SemanticErrors = checker.Errors()
	}
	return res
}

// Compile runs source through Lex -> Parse -> Semantic Analysis ->
// Code Generation, stopping before code generation if any earlier stage
// reported a diagnostic.
func (p *Pipeline) Compile(source string) Result {
	res := p.Analyze(source)
	if len(res.LexErrors) > 0 || len(res.ParseErrors) > 0 || len(res.SemanticErrors) > 0 {
		return res
	}

	out, err := codegen.Generate(res.Schema, p.Options)
	if err != nil {
		res.SemanticErrors = append(res.SemanticErrors, err.Error())
		return res
	}
	res.Output = out
	return res
}
