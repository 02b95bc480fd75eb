package parser

import (
	"cvlint/internal/ast"
	"cvlint/internal/diag"
	"cvlint/internal/qual"
	"cvlint/internal/source"
	"cvlint/internal/token"
)

func (p *Parser) parseItem() ast.ItemID {
	switch p.peek().Kind {
	case token.HashDefine:
		return p.parseMacroDef()
	case token.KwClass, token.KwStruct:
		return p.parseClass()
	case token.KwStatic, token.KwConst, token.KwIterator, token.KwConstIterator:
		return p.parseDeclOrConstDef()
	case token.Ident:
		if p.isTypeName(p.peek()) {
			return p.parseDeclOrConstDef()
		}
		return p.parseExprStmt()
	case token.Semicolon:
		p.advance()
		return ast.NoItemID
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseExprStmt() ast.ItemID {
	start := p.peek().Span
	expr := p.parseExpr()
	if !expr.IsValid() {
		p.syncDecl()
		return ast.NoItemID
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression"); !ok {
		p.syncDecl()
	}
	span := start.Cover(p.builder.Exprs.Get(expr).Span)
	return p.builder.Items.NewExprStmt(span, expr)
}

// parseDeclOrConstDef handles qualified declarations and out-of-class
// constant definitions, which share the same prefix:
//
//	const int x = 5;
//	const char *p;
//	char * const q;
//	const_iterator it;
//	const double GamePlayer::Ratio = 1.5;
func (p *Parser) parseDeclOrConstDef() ast.ItemID {
	start := p.peek().Span

	// 'static' at unit scope carries no meaning for the analyzer.
	p.eatKw(token.KwStatic)

	leadingConst := p.eatKw(token.KwConst)
	typeTok := p.peek()
	if !p.isTypeName(typeTok) {
		p.report(diag.SynExpectType, typeTok.Span, "expected type name")
		p.syncDecl()
		return ast.NoItemID
	}
	p.advance()
	// 'int const x' is the east-const spelling of the same declarator.
	if p.eatKw(token.KwConst) {
		leadingConst = true
	}

	// Out-of-class constant definition: Type Class :: Name
	if p.at(token.Ident) && p.peekAt(1).Kind == token.ColonColon {
		return p.parseClassConstDef(start, typeTok)
	}

	declKind := ast.DeclObject
	q := qual.Value(leadingConst)
	switch typeTok.Kind {
	case token.KwIterator:
		declKind = ast.DeclIterator
		q = qual.Pointer(leadingConst, false)
	case token.KwConstIterator:
		declKind = ast.DeclIterator
		q = qual.Pointer(leadingConst, true)
	}

	switch p.peek().Kind {
	case token.Star:
		if declKind == ast.DeclIterator {
			p.report(diag.SynBadDeclarator, p.peek().Span, "iterator declarators take no '*'")
			p.syncDecl()
			return ast.NoItemID
		}
		p.advance()
		declKind = ast.DeclPointer
		q = qual.Pointer(p.eatKw(token.KwConst), leadingConst)
	case token.Amp:
		if declKind == ast.DeclIterator {
			p.report(diag.SynBadDeclarator, p.peek().Span, "iterator declarators take no '&'")
			p.syncDecl()
			return ast.NoItemID
		}
		p.advance()
		declKind = ast.DeclReference
		q = qual.Value(leadingConst)
	}

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected declarator name")
	if !ok {
		p.syncDecl()
		return ast.NoItemID
	}

	init := ast.NoExprID
	if _, ok := p.eat(token.Assign); ok {
		init = p.parseExpr()
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after declaration"); !ok {
		p.syncDecl()
	}

	span := start.Cover(nameTok.Span)
	return p.builder.Items.NewDecl(span, ast.ItemDeclData{
		Name:     p.intern(nameTok.Text),
		DeclKind: declKind,
		TypeName: p.intern(typeTok.Text),
		Qual:     q,
		Init:     init,
		NameSpan: nameTok.Span,
	})
}

func (p *Parser) parseClassConstDef(start source.Span, typeTok token.Token) ast.ItemID {
	classTok := p.advance()
	p.advance() // '::'
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected constant name after '::'")
	if !ok {
		p.syncDecl()
		return ast.NoItemID
	}
	hasInit := false
	init := ast.NoExprID
	if _, ok := p.eat(token.Assign); ok {
		hasInit = true
		init = p.parseExpr()
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after definition"); !ok {
		p.syncDecl()
	}
	span := start.Cover(nameTok.Span)
	return p.builder.Items.NewClassConstDef(span, ast.ItemClassConstDefData{
		Class:    p.intern(classTok.Text),
		Name:     p.intern(nameTok.Text),
		TypeName: p.intern(typeTok.Text),
		HasInit:  hasInit,
		Init:     init,
		NameSpan: nameTok.Span,
	})
}

func (p *Parser) parseClass() ast.ItemID {
	start := p.advance().Span // 'class' | 'struct'
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected class name")
	if !ok {
		p.syncDecl()
		return ast.NoItemID
	}
	// The class name is a type name from here on.
	p.typeNames[nameTok.Text] = true

	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace, "expected '{' after class name"); !ok {
		p.syncDecl()
		return ast.NoItemID
	}

	var members []ast.MemberID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		member := p.parseMember()
		if member.IsValid() {
			members = append(members, member)
		}
		if p.pos == before {
			p.advance()
		}
	}
	endTok, closed := p.eat(token.RBrace)
	if !closed {
		p.report(diag.SynUnclosedBrace, start, "class body is never closed")
	}
	if _, ok := p.eat(token.Semicolon); !ok && closed {
		p.report(diag.SynExpectSemicolon, endTok.Span, "expected ';' after class body")
	}

	span := start.Cover(endTok.Span)
	return p.builder.Items.NewClass(span, ast.ItemClassData{
		Name:     p.intern(nameTok.Text),
		Members:  members,
		NameSpan: nameTok.Span,
	})
}

func (p *Parser) parseMacroDef() ast.ItemID {
	start := p.advance().Span // '#define'
	nameTok, ok := p.expect(token.Ident, diag.SynBadMacroDefine, "expected macro name after #define")
	if !ok {
		p.syncDecl()
		return ast.NoItemID
	}
	if _, ok := p.expect(token.LParen, diag.SynBadMacroDefine, "expected '(' after macro name (only function-like macros are modeled)"); !ok {
		p.syncDecl()
		return ast.NoItemID
	}

	var params []source.StringID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		paramTok, ok := p.expect(token.Ident, diag.SynBadMacroDefine, "expected macro parameter name")
		if !ok {
			p.syncDecl()
			return ast.NoItemID
		}
		params = append(params, p.intern(paramTok.Text))
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed macro parameter list"); !ok {
		p.syncDecl()
		return ast.NoItemID
	}

	body := p.parseExpr()
	if !body.IsValid() {
		p.syncDecl()
		return ast.NoItemID
	}

	span := start.Cover(p.builder.Exprs.Get(body).Span)
	return p.builder.Items.NewMacroDef(span, ast.ItemMacroDefData{
		Name:     p.intern(nameTok.Text),
		Params:   params,
		Body:     body,
		NameSpan: nameTok.Span,
	})
}

func (p *Parser) eatKw(kind token.Kind) bool {
	_, ok := p.eat(kind)
	return ok
}
