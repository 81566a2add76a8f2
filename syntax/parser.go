package syntax

import (
	"github.com/schema-dl/schemadl/diagnostic"
)

// Parser consumes a Lexer by reference and produces a Schema plus an
// accumulated diagnostics list (§4.2). It never panics past its own
// Parse call: callers must inspect Errors() before trusting the tree.
type Parser struct {
	lex     *Lexer
	pending *Token
	diags   diagnostic.List
}

// NewParser creates a parser reading tokens from lex.
func NewParser(lex *Lexer) *Parser {
	return &Parser{lex: lex}
}

// Errors returns the accumulated syntactic diagnostics, formatted
// "Line L, Column C: message".
func (p *Parser) Errors() []string {
	return p.diags.Errors()
}

// abort unwinds the current TypeDef parse so the driver can synchronize
// and continue with the next definition; it never escapes Parse.
type abort struct{}

// advance returns the next significant token, discarding COMMENT and
// WHITESPACE trivia. NEWLINE is treated as insignificant here too: the
// parser uses it only inside synchronize (§4.2 "Token normalization").
func (p *Parser) advance() Token {
	if p.pending != nil {
		t := *p.pending
		p.pending = nil
		return t
	}
	for {
		t := p.lex.NextToken()
		switch t.Kind {
		case KindComment, KindWhitespace, KindNewline:
			continue
		default:
			return t
		}
	}
}

func (p *Parser) peek() Token {
	if p.pending == nil {
		t := p.advance()
		p.pending = &t
	}
	return *p.pending
}

// expect consumes the next significant token if it matches one of kinds,
// recording a diagnostic and aborting the current definition otherwise.
func (p *Parser) expect(kinds ...Kind) Token {
	t := p.advance()
	if t.IsAny(kinds...) {
		return t
	}
	if t.Kind == KindError {
		// The lexer already recorded a diagnostic for this token.
		panic(abort{})
	}
	p.diags.Add(t.Pos, "unexpected token %q, expected one of %v", describeToken(t), kinds)
	panic(abort{})
}

func describeToken(t Token) string {
	if t.Kind == KindEOF {
		return "<eof>"
	}
	if t.Lexeme != "" {
		return t.Lexeme
	}
	return string(t.Kind)
}

// synchronize implements the §4.2 recovery strategy: advance past the
// current token, then consume raw lexer tokens (bypassing trivia
// filtering) until a NEWLINE or IDENTIFIER -- the likely start of the
// next TypeDef -- is reached.
func (p *Parser) synchronize() {
	p.pending = nil
	for {
		t := p.lex.NextToken()
		switch t.Kind {
		case KindIdentifier:
			p.pending = &t
			return
		case KindNewline, KindEOF:
			return
		}
	}
}

// Parse parses the input and returns the (possibly partially populated)
// Schema; callers inspect Errors() before using it.
func (p *Parser) Parse() Schema {
	var schema Schema
	for {
		if p.peek().Kind == KindEOF {
			return schema
		}
		if def, ok := p.parseTypeDefRecovering(); ok {
			schema.Definitions = append(schema.Definitions, def)
		}
	}
}

func (p *Parser) parseTypeDefRecovering() (def TypeDefinition, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isAbort := r.(abort); !isAbort {
				panic(r)
			}
			p.synchronize()
			ok = false
		}
	}()
	def = p.parseTypeDef()
	return def, true
}

func (p *Parser) parseTypeDef() TypeDefinition {
	name := p.expect(KindIdentifier)
	p.expect(KindColon)
	body := p.parseTypeExpr()
	return TypeDefinition{
		Node: Node{Pos: name.Pos},
		Name: name.Lexeme,
		Body: body,
	}
}

func (p *Parser) parseTypeExpr() TypeExpr {
	tok := p.peek()
	switch {
	case tok.Kind == KindKeywordStruct:
		return p.parseStruct()
	case tok.Kind == KindKeywordVariant:
		return p.parseVariant()
	case tok.Kind == KindKeywordEnum:
		return p.parseEnum()
	case tok.Kind == KindKeywordArray:
		return p.parseArrayOrOptional(ContainerArray)
	case tok.Kind == KindKeywordOptional:
		return p.parseArrayOrOptional(ContainerOptional)
	case tok.Kind == KindKeywordMap:
		return p.parseMap()
	case tok.Kind == KindKeywordRef:
		return p.parseRef()
	case tok.Kind == KindIdentifier:
		p.advance()
		return IdentifierType{Node: Node{Pos: tok.Pos}, Name: tok.Lexeme}
	case IsPrimitiveKind(tok.Kind):
		p.advance()
		return PrimitiveType{Node: Node{Pos: tok.Pos}, Kind: primitiveKindByTokenKind[tok.Kind]}
	default:
		p.diags.Add(tok.Pos, "expected a type expression, got %q", describeToken(tok))
		panic(abort{})
	}
}

// parseBracedBody parses `'{' (item (',' item)* ','?)? '}'`, invoking
// parseItem once per element. It is shared by StructT, VariantT, and
// EnumT (§4.2 grammar).
func (p *Parser) parseBracedBody(parseItem func()) {
	p.expect(KindLBrace)
	if p.peek().Kind == KindRBrace {
		p.advance()
		return
	}
	for {
		parseItem()
		sep := p.expect(KindComma, KindRBrace)
		if sep.Kind == KindRBrace {
			return
		}
		if p.peek().Kind == KindRBrace {
			p.advance()
			return
		}
	}
}

func (p *Parser) parseStruct() TypeExpr {
	start := p.expect(KindKeywordStruct)
	s := StructType{Node: Node{Pos: start.Pos}}
	p.parseBracedBody(func() {
		name := p.expect(KindIdentifier)
		p.expect(KindColon)
		typ := p.parseTypeExpr()
		s.Fields = append(s.Fields, Field{
			Node: Node{Pos: name.Pos},
			Name: name.Lexeme,
			Type: typ,
		})
	})
	return s
}

func (p *Parser) parseVariant() TypeExpr {
	start := p.expect(KindKeywordVariant)
	v := VariantType{Node: Node{Pos: start.Pos}}
	p.parseBracedBody(func() {
		name := p.expect(KindIdentifier)
		var typ TypeExpr
		if p.peek().Kind == KindColon {
			p.advance()
			typ = p.parseTypeExpr()
		}
		v.Alternatives = append(v.Alternatives, Alternative{
			Node: Node{Pos: name.Pos},
			Name: name.Lexeme,
			Type: typ,
		})
	})
	return v
}

func (p *Parser) parseEnum() TypeExpr {
	start := p.expect(KindKeywordEnum)
	e := EnumType{Node: Node{Pos: start.Pos}}
	p.parseBracedBody(func() {
		name := p.expect(KindIdentifier)
		e.Values = append(e.Values, EnumValue{
			Node: Node{Pos: name.Pos},
			Name: name.Lexeme,
		})
	})
	return e
}

func (p *Parser) parseArrayOrOptional(kind ContainerKind) TypeExpr {
	start := p.advance() // 'array' or 'optional'
	p.expect(KindLAngle)
	elem := p.parseTypeExpr()
	p.expect(KindRAngle)
	return ContainerType{Node: Node{Pos: start.Pos}, Kind: kind, Element: elem}
}

func (p *Parser) parseMap() TypeExpr {
	start := p.expect(KindKeywordMap)
	p.expect(KindLAngle)
	key := p.parseTypeExpr()
	p.expect(KindComma)
	value := p.parseTypeExpr()
	p.expect(KindRAngle)
	return ContainerType{Node: Node{Pos: start.Pos}, Kind: ContainerMap, Key: key, Value: value}
}

func (p *Parser) parseRef() TypeExpr {
	start := p.expect(KindKeywordRef)
	p.expect(KindLAngle)
	p.expect(KindKeywordEntity)
	p.expect(KindRAngle)
	return RefType{Node: Node{Pos: start.Pos}}
}
