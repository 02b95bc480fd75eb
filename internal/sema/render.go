package sema

import (
	"strings"

	"cvlint/internal/ast"
)

// renderExpr prints an expression back to source form. Groups are dropped:
// the caller decides where parentheses belong, which is what the macro
// rewrite needs when it lifts a body out of its defensive parens.
func (c *checker) renderExpr(id ast.ExprID) string {
	var sb strings.Builder
	c.renderInto(&sb, id)
	return sb.String()
}

func (c *checker) renderInto(sb *strings.Builder, id ast.ExprID) {
	expr := c.builder.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := c.builder.Exprs.Ident(id)
		sb.WriteString(c.name(data.Name))
	case ast.ExprIntLit:
		data, _ := c.builder.Exprs.IntLit(id)
		sb.WriteString(c.name(data.Value))
	case ast.ExprUnary:
		data, _ := c.builder.Exprs.Unary(id)
		switch data.Op {
		case ast.ExprUnaryPostInc, ast.ExprUnaryPostDec:
			c.renderInto(sb, data.Operand)
			sb.WriteString(data.Op.String())
		default:
			sb.WriteString(data.Op.String())
			c.renderInto(sb, data.Operand)
		}
	case ast.ExprBinary:
		data, _ := c.builder.Exprs.Binary(id)
		c.renderInto(sb, data.Left)
		sb.WriteString(" " + data.Op.String() + " ")
		c.renderInto(sb, data.Right)
	case ast.ExprTernary:
		data, _ := c.builder.Exprs.Ternary(id)
		c.renderInto(sb, data.Cond)
		sb.WriteString(" ? ")
		c.renderInto(sb, data.Then)
		sb.WriteString(" : ")
		c.renderInto(sb, data.Else)
	case ast.ExprMember:
		data, _ := c.builder.Exprs.Member(id)
		c.renderInto(sb, data.Target)
		sb.WriteString("." + c.name(data.Field))
	case ast.ExprScopeRef:
		data, _ := c.builder.Exprs.ScopeRef(id)
		sb.WriteString(c.name(data.Class) + "::" + c.name(data.Name))
	case ast.ExprCall:
		data, _ := c.builder.Exprs.Call(id)
		c.renderInto(sb, data.Target)
		sb.WriteByte('(')
		for i, arg := range data.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			c.renderInto(sb, arg)
		}
		sb.WriteByte(')')
	case ast.ExprAssign:
		data, _ := c.builder.Exprs.Assign(id)
		c.renderInto(sb, data.Left)
		sb.WriteString(" = ")
		c.renderInto(sb, data.Right)
	case ast.ExprGroup:
		data, _ := c.builder.Exprs.Group(id)
		c.renderInto(sb, data.Inner)
	}
}
