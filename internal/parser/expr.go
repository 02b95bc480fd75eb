package parser

import (
	"cvlint/internal/ast"
	"cvlint/internal/diag"
	"cvlint/internal/token"
)

// parseExpr parses a full expression; assignment binds loosest and is
// right-associative.
func (p *Parser) parseExpr() ast.ExprID {
	left := p.parseTernary()
	if !left.IsValid() {
		return ast.NoExprID
	}
	if _, ok := p.eat(token.Assign); ok {
		right := p.parseExpr()
		if !right.IsValid() {
			return ast.NoExprID
		}
		span := p.builder.Exprs.Get(left).Span.Cover(p.builder.Exprs.Get(right).Span)
		return p.builder.Exprs.NewAssign(span, left, right)
	}
	return left
}

func (p *Parser) parseTernary() ast.ExprID {
	cond := p.parseCompare()
	if !cond.IsValid() {
		return ast.NoExprID
	}
	if _, ok := p.eat(token.Question); !ok {
		return cond
	}
	then := p.parseExpr()
	if !then.IsValid() {
		return ast.NoExprID
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectExpression, "expected ':' in conditional expression"); !ok {
		return ast.NoExprID
	}
	els := p.parseTernary()
	if !els.IsValid() {
		return ast.NoExprID
	}
	span := p.builder.Exprs.Get(cond).Span.Cover(p.builder.Exprs.Get(els).Span)
	return p.builder.Exprs.NewTernary(span, cond, then, els)
}

func (p *Parser) parseCompare() ast.ExprID {
	left := p.parseAdditive()
	for left.IsValid() {
		var op ast.ExprBinaryOp
		switch p.peek().Kind {
		case token.EqEq:
			op = ast.ExprBinaryEq
		case token.BangEq:
			op = ast.ExprBinaryNe
		case token.Lt:
			op = ast.ExprBinaryLt
		case token.Gt:
			op = ast.ExprBinaryGt
		case token.LtEq:
			op = ast.ExprBinaryLe
		case token.GtEq:
			op = ast.ExprBinaryGe
		default:
			return left
		}
		p.advance()
		right := p.parseAdditive()
		if !right.IsValid() {
			return ast.NoExprID
		}
		span := p.builder.Exprs.Get(left).Span.Cover(p.builder.Exprs.Get(right).Span)
		left = p.builder.Exprs.NewBinary(span, op, left, right)
	}
	return left
}

func (p *Parser) parseAdditive() ast.ExprID {
	left := p.parseMultiplicative()
	for left.IsValid() {
		var op ast.ExprBinaryOp
		switch p.peek().Kind {
		case token.Plus:
			op = ast.ExprBinaryAdd
		case token.Minus:
			op = ast.ExprBinarySub
		default:
			return left
		}
		p.advance()
		right := p.parseMultiplicative()
		if !right.IsValid() {
			return ast.NoExprID
		}
		span := p.builder.Exprs.Get(left).Span.Cover(p.builder.Exprs.Get(right).Span)
		left = p.builder.Exprs.NewBinary(span, op, left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.ExprID {
	left := p.parseUnary()
	for left.IsValid() {
		var op ast.ExprBinaryOp
		switch p.peek().Kind {
		case token.Star:
			op = ast.ExprBinaryMul
		case token.Slash:
			op = ast.ExprBinaryDiv
		case token.Percent:
			op = ast.ExprBinaryRem
		default:
			return left
		}
		p.advance()
		right := p.parseUnary()
		if !right.IsValid() {
			return ast.NoExprID
		}
		span := p.builder.Exprs.Get(left).Span.Cover(p.builder.Exprs.Get(right).Span)
		left = p.builder.Exprs.NewBinary(span, op, left, right)
	}
	return left
}

func (p *Parser) parseUnary() ast.ExprID {
	var op ast.ExprUnaryOp
	switch p.peek().Kind {
	case token.Star:
		op = ast.ExprUnaryDeref
	case token.Amp:
		op = ast.ExprUnaryAddrOf
	case token.Minus:
		op = ast.ExprUnaryNeg
	default:
		return p.parsePostfix()
	}
	opTok := p.advance()
	operand := p.parseUnary()
	if !operand.IsValid() {
		return ast.NoExprID
	}
	span := opTok.Span.Cover(p.builder.Exprs.Get(operand).Span)
	return p.builder.Exprs.NewUnary(span, op, operand)
}

func (p *Parser) parsePostfix() ast.ExprID {
	expr := p.parsePrimary()
	for expr.IsValid() {
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			fieldTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name after '.'")
			if !ok {
				return ast.NoExprID
			}
			span := p.builder.Exprs.Get(expr).Span.Cover(fieldTok.Span)
			expr = p.builder.Exprs.NewMember(span, expr, p.intern(fieldTok.Text))
		case token.LParen:
			p.advance()
			var args []ast.ExprID
			for !p.at(token.RParen) && !p.at(token.EOF) {
				arg := p.parseExpr()
				if !arg.IsValid() {
					return ast.NoExprID
				}
				args = append(args, arg)
				if _, ok := p.eat(token.Comma); !ok {
					break
				}
			}
			endTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed argument list")
			if !ok {
				return ast.NoExprID
			}
			span := p.builder.Exprs.Get(expr).Span.Cover(endTok.Span)
			expr = p.builder.Exprs.NewCall(span, expr, args)
		case token.PlusPlus:
			tok := p.advance()
			span := p.builder.Exprs.Get(expr).Span.Cover(tok.Span)
			expr = p.builder.Exprs.NewUnary(span, ast.ExprUnaryPostInc, expr)
		case token.MinusMinus:
			tok := p.advance()
			span := p.builder.Exprs.Get(expr).Span.Cover(tok.Span)
			expr = p.builder.Exprs.NewUnary(span, ast.ExprUnaryPostDec, expr)
		default:
			return expr
		}
	}
	return expr
}

func (p *Parser) parsePrimary() ast.ExprID {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit, token.FloatLit:
		p.advance()
		return p.builder.Exprs.NewIntLit(tok.Span, p.intern(tok.Text))
	case token.Ident:
		p.advance()
		if p.at(token.ColonColon) {
			p.advance()
			nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name after '::'")
			if !ok {
				return ast.NoExprID
			}
			span := tok.Span.Cover(nameTok.Span)
			return p.builder.Exprs.NewScopeRef(span, p.intern(tok.Text), p.intern(nameTok.Text))
		}
		return p.builder.Exprs.NewIdent(tok.Span, p.intern(tok.Text))
	case token.LParen:
		start := p.advance().Span
		inner := p.parseExpr()
		if !inner.IsValid() {
			return ast.NoExprID
		}
		endTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed '('")
		if !ok {
			return ast.NoExprID
		}
		return p.builder.Exprs.NewGroup(start.Cover(endTok.Span), inner)
	default:
		p.report(diag.SynExpectExpression, tok.Span, "expected expression")
		return ast.NoExprID
	}
}
