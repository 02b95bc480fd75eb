// Package parser builds the AST for the declarator subset: qualified
// object/pointer/reference/iterator declarations, class bodies, out-of-class
// constant definitions, macro definitions and expression statements. It is
// not a C++ parser; the subset is exactly what the qualification analyzer
// consumes.
package parser

import (
	"cvlint/internal/ast"
	"cvlint/internal/diag"
	"cvlint/internal/lexer"
	"cvlint/internal/source"
	"cvlint/internal/token"
)

// Options configure a parse.
type Options struct {
	Reporter diag.Reporter
}

// Parser consumes the token stream for one unit.
type Parser struct {
	builder  *ast.Builder
	file     *source.File
	tokens   []token.Token
	pos      int
	reporter diag.Reporter

	// typeNames tracks spellings that open a declaration: builtin type
	// names plus every class name seen so far in this unit.
	typeNames map[string]bool
}

// builtinTypes are the type spellings known without a declaration.
// The bool marks integral-literal compatibility.
var builtinTypes = map[string]bool{
	"int":      true,
	"char":     true,
	"bool":     true,
	"short":    true,
	"long":     true,
	"unsigned": true,
	"signed":   true,
	"size_t":   true,
	"wchar_t":  true,
	"float":    false,
	"double":   false,
	"void":     false,
	"string":   false,
}

// ParseFile lexes and parses one unit into builder, returning the AST file.
func ParseFile(sf *source.File, builder *ast.Builder, opts Options) ast.FileID {
	lx := lexer.New(sf, lexer.Options{Reporter: opts.Reporter})
	p := &Parser{
		builder:   builder,
		file:      sf,
		tokens:    lx.Tokens(),
		reporter:  opts.Reporter,
		typeNames: make(map[string]bool, len(builtinTypes)+4),
	}
	for name := range builtinTypes {
		p.typeNames[name] = true
	}

	fileSpan := source.Span{File: sf.ID, Start: 0, End: uint32(len(sf.Content))} //nolint:gosec // content bounded on load
	fileID := builder.Files.New(fileSpan)

	for !p.at(token.EOF) {
		before := p.pos
		item := p.parseItem()
		if item.IsValid() {
			builder.PushItem(fileID, item)
		}
		if p.pos == before {
			// Ensure progress even on unrecoverable garbage.
			p.advance()
		}
	}
	return fileID
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

// eat consumes the next token when it matches.
func (p *Parser) eat(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes a token of the given kind or reports code and returns
// false without consuming.
func (p *Parser) expect(kind token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if tok, ok := p.eat(kind); ok {
		return tok, true
	}
	p.report(code, p.peek().Span, msg)
	return token.Token{}, false
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.reporter != nil {
		diag.ReportError(p.reporter, code, sp, msg).Emit()
	}
}

// syncDecl skips ahead to the next ';' (consumed) or '}'/EOF boundary.
func (p *Parser) syncDecl() {
	for {
		switch p.peek().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace, token.EOF:
			return
		default:
			p.advance()
		}
	}
}

// isTypeName reports whether tok can open a declaration at this point.
func (p *Parser) isTypeName(tok token.Token) bool {
	switch tok.Kind {
	case token.KwIterator, token.KwConstIterator:
		return true
	case token.Ident:
		return p.typeNames[tok.Text]
	default:
		return false
	}
}

// isIntegralType reports integral-literal compatibility for a type
// spelling. Class types and unknown names count as non-integral.
func (p *Parser) isIntegralType(name string) bool {
	integral, ok := builtinTypes[name]
	return ok && integral
}

func (p *Parser) intern(s string) source.StringID {
	return p.builder.StringsInterner.Intern(s)
}
