// Package diagnostic carries position-aware compiler messages shared by
// the syntax and semantic stages.
package diagnostic

import "fmt"

// Position is a 1-indexed line/column pair identifying where a token or
// AST node begins in a schema source file.
type Position struct {
	Line, Column int
}

func (p Position) String() string {
	return fmt.Sprintf("Line %d, Column %d", p.Line, p.Column)
}

// Error is a single accumulated diagnostic. Every stage of the pipeline
// produces these instead of returning early: the lexer for malformed
// bytes, the parser for unexpected tokens, and the semantic analyzer for
// invariant violations.
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// New builds an Error at pos with a formatted message.
func New(pos Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// List is an ordered collection of diagnostics accumulated by a single
// pipeline stage. The zero value is ready to use, and Errors never
// returns nil.
type List struct {
	errs []*Error
}

// Add appends a diagnostic.
func (l *List) Add(pos Position, format string, args ...any) {
	l.errs = append(l.errs, New(pos, format, args...))
}

// Errors returns the accumulated diagnostics as formatted strings, in the
// order they were recorded.
func (l *List) Errors() []string {
	out := make([]string, len(l.errs))
	for i, e := range l.errs {
		out[i] = e.Error()
	}
	return out
}

// Empty reports whether no diagnostics have been recorded.
func (l *List) Empty() bool {
	return len(l.errs) == 0
}
