package parser

import (
	"cvlint/internal/ast"
	"cvlint/internal/diag"
	"cvlint/internal/qual"
	"cvlint/internal/source"
	"cvlint/internal/token"
)

func (p *Parser) parseMember() ast.MemberID {
	switch p.peek().Kind {
	case token.KwPublic, token.KwPrivate:
		// Access labels are accepted but not modeled.
		p.advance()
		if _, ok := p.eat(token.Colon); !ok {
			p.report(diag.SynExpectMember, p.peek().Span, "expected ':' after access label")
		}
		return ast.NoMemberID
	case token.KwStatic:
		return p.parseMemberConst()
	case token.KwEnum:
		return p.parseMemberEnum()
	case token.KwConst, token.Ident, token.KwIterator, token.KwConstIterator:
		return p.parseFuncOrField()
	default:
		p.report(diag.SynExpectMember, p.peek().Span, "expected member declaration")
		p.syncDecl()
		return ast.NoMemberID
	}
}

// parseMemberConst handles `static const Type Name [= init];`.
func (p *Parser) parseMemberConst() ast.MemberID {
	start := p.advance().Span // 'static'
	if _, ok := p.expect(token.KwConst, diag.SynExpectMember, "static data members are modeled only as class constants; expected 'const'"); !ok {
		p.syncDecl()
		return ast.NoMemberID
	}
	typeTok := p.peek()
	if !p.isTypeName(typeTok) {
		p.report(diag.SynExpectType, typeTok.Span, "expected type name")
		p.syncDecl()
		return ast.NoMemberID
	}
	p.advance()
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected constant name")
	if !ok {
		p.syncDecl()
		return ast.NoMemberID
	}
	hasInit := false
	init := ast.NoExprID
	if _, ok := p.eat(token.Assign); ok {
		hasInit = true
		init = p.parseExpr()
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after class constant"); !ok {
		p.syncDecl()
	}
	return p.builder.Members.NewConst(start.Cover(nameTok.Span), ast.MemberConstData{
		Name:     p.intern(nameTok.Text),
		TypeName: p.intern(typeTok.Text),
		Integral: p.isIntegralType(typeTok.Text),
		HasInit:  hasInit,
		Init:     init,
		NameSpan: nameTok.Span,
	})
}

// parseMemberEnum handles `enum { A = 1, B };`.
func (p *Parser) parseMemberEnum() ast.MemberID {
	start := p.advance().Span // 'enum'
	if _, ok := p.expect(token.LBrace, diag.SynExpectMember, "expected '{' after 'enum' (only anonymous enums are modeled)"); !ok {
		p.syncDecl()
		return ast.NoMemberID
	}
	var enumerators []ast.EnumeratorSpec
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected enumerator name")
		if !ok {
			p.syncDecl()
			return ast.NoMemberID
		}
		value := ast.NoExprID
		if _, ok := p.eat(token.Assign); ok {
			value = p.parseExpr()
		}
		enumerators = append(enumerators, ast.EnumeratorSpec{
			Name:     p.intern(nameTok.Text),
			Value:    value,
			NameSpan: nameTok.Span,
		})
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	endTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "enum body is never closed")
	if !ok {
		p.syncDecl()
		return ast.NoMemberID
	}
	if _, ok := p.eat(token.Semicolon); !ok {
		p.report(diag.SynExpectSemicolon, endTok.Span, "expected ';' after enum")
	}
	return p.builder.Members.NewEnum(start.Cover(endTok.Span), ast.MemberEnumData{
		Enumerators: enumerators,
	})
}

// parseFuncOrField handles data members and member-function declarations,
// which share the qualified-type prefix:
//
//	int n;
//	const char *name;
//	int length() const;
//	const Rational operator*(const Rational &rhs) const;
func (p *Parser) parseFuncOrField() ast.MemberID {
	start := p.peek().Span
	leadingConst := p.eatKw(token.KwConst)
	typeTok := p.peek()
	if !p.isTypeName(typeTok) {
		p.report(diag.SynExpectType, typeTok.Span, "expected type name")
		p.syncDecl()
		return ast.NoMemberID
	}
	p.advance()
	if p.eatKw(token.KwConst) {
		leadingConst = true
	}

	declKind := ast.DeclObject
	q := qual.Value(leadingConst)
	switch p.peek().Kind {
	case token.Star:
		p.advance()
		declKind = ast.DeclPointer
		q = qual.Pointer(p.eatKw(token.KwConst), leadingConst)
	case token.Amp:
		p.advance()
		declKind = ast.DeclReference
		q = qual.Value(leadingConst)
	}

	// Member name: plain identifier or operator spelling.
	var nameText string
	nameSpan := p.peek().Span
	switch {
	case p.at(token.KwOperator):
		opStart := p.advance()
		opTok := p.peek()
		if !opTok.IsOverloadableOp() {
			p.report(diag.SynExpectIdentifier, opTok.Span, "expected operator symbol after 'operator'")
			p.syncDecl()
			return ast.NoMemberID
		}
		p.advance()
		nameText = "operator" + opTok.Kind.String()
		nameSpan = opStart.Span.Cover(opTok.Span)
	case p.at(token.Ident):
		tok := p.advance()
		nameText = tok.Text
		nameSpan = tok.Span
	default:
		p.report(diag.SynExpectIdentifier, p.peek().Span, "expected member name")
		p.syncDecl()
		return ast.NoMemberID
	}

	if p.at(token.LParen) {
		return p.parseMemberFunc(start, typeTok, leadingConst, nameText, nameSpan)
	}

	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after data member"); !ok {
		p.syncDecl()
	}
	return p.builder.Members.NewField(start.Cover(nameSpan), ast.MemberFieldData{
		Name:     p.intern(nameText),
		DeclKind: declKind,
		TypeName: p.intern(typeTok.Text),
		Qual:     q,
		NameSpan: nameSpan,
	})
}

func (p *Parser) parseMemberFunc(start source.Span, typeTok token.Token, returnConst bool, nameText string, nameSpan source.Span) ast.MemberID {
	p.advance() // '('
	var params []ast.ParamSpec
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param, ok := p.parseParam()
		if !ok {
			p.syncDecl()
			return ast.NoMemberID
		}
		params = append(params, param)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed parameter list"); !ok {
		p.syncDecl()
		return ast.NoMemberID
	}

	isConstQualified := p.eatKw(token.KwConst)
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after member function declaration"); !ok {
		p.syncDecl()
	}
	return p.builder.Members.NewFunc(start.Cover(nameSpan), ast.MemberFuncData{
		Name:             p.intern(nameText),
		Params:           params,
		IsConstQualified: isConstQualified,
		ReturnTypeName:   p.intern(typeTok.Text),
		ReturnConst:      returnConst,
		NameSpan:         nameSpan,
	})
}

func (p *Parser) parseParam() (ast.ParamSpec, bool) {
	leadingConst := p.eatKw(token.KwConst)
	typeTok := p.peek()
	if !p.isTypeName(typeTok) {
		p.report(diag.SynExpectType, typeTok.Span, "expected parameter type")
		return ast.ParamSpec{}, false
	}
	p.advance()
	if p.eatKw(token.KwConst) {
		leadingConst = true
	}

	q := qual.Value(leadingConst)
	switch p.peek().Kind {
	case token.Star:
		p.advance()
		q = qual.Pointer(p.eatKw(token.KwConst), leadingConst)
	case token.Amp:
		p.advance()
	}

	param := ast.ParamSpec{TypeName: p.intern(typeTok.Text), Qual: q}
	if tok, ok := p.eat(token.Ident); ok {
		param.Name = p.intern(tok.Text)
	}
	return param, true
}
