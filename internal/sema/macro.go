package sema

import (
	"fmt"
	"strings"

	"cvlint/internal/ast"
	"cvlint/internal/diag"
	"cvlint/internal/source"
)

// checkMacro flags the two classic function-like macro hazards: a parameter
// expanded more than once along an evaluated path, and a body whose
// expansion can regroup under a surrounding operator. Both come with a
// rewrite to an inline function template, which has neither problem.
func (c *checker) checkMacro(itemSpan source.Span, macro *ast.ItemMacroDefData) {
	name := c.name(macro.Name)
	hazardous := false
	for _, param := range macro.Params {
		count := c.countEvaluations(macro.Body, param)
		if count <= 1 {
			continue
		}
		pname := c.name(param)
		b := c.report(diag.SemaMultipleEvaluationHazard, diag.SevWarning, macro.NameSpan,
			fmt.Sprintf("macro %s evaluates parameter %s %d times per expansion", name, pname, count)).
			WithEntity(name).
			WithNote(macro.NameSpan, "an argument with side effects runs them more than once")
		if !hazardous {
			// One rewrite covers every parameter; attach it once.
			b = b.WithFix("replace the macro with an inline function template",
				diag.FixEdit{Span: itemSpan, NewText: c.macroAsTemplate(macro)})
		}
		b.Emit()
		hazardous = true
	}
	if !hazardous && c.hasPrecedenceHazard(macro) {
		c.report(diag.SemaMacroPrecedenceHazard, diag.SevWarning, macro.NameSpan,
			fmt.Sprintf("expansion of macro %s can regroup under a surrounding operator", name)).
			WithEntity(name).
			WithNote(macro.NameSpan, "parenthesize the body and every parameter use").
			Emit()
	}
}

// countEvaluations counts how often param is evaluated along the costliest
// path through the body. The branches of a conditional are alternatives, so
// only the heavier one counts, while the condition always runs.
func (c *checker) countEvaluations(id ast.ExprID, param source.StringID) int {
	expr := c.builder.Exprs.Get(id)
	if expr == nil {
		return 0
	}
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := c.builder.Exprs.Ident(id)
		if data.Name == param {
			return 1
		}
		return 0
	case ast.ExprUnary:
		data, _ := c.builder.Exprs.Unary(id)
		return c.countEvaluations(data.Operand, param)
	case ast.ExprBinary:
		data, _ := c.builder.Exprs.Binary(id)
		return c.countEvaluations(data.Left, param) + c.countEvaluations(data.Right, param)
	case ast.ExprTernary:
		data, _ := c.builder.Exprs.Ternary(id)
		then := c.countEvaluations(data.Then, param)
		els := c.countEvaluations(data.Else, param)
		if els > then {
			then = els
		}
		return c.countEvaluations(data.Cond, param) + then
	case ast.ExprMember:
		data, _ := c.builder.Exprs.Member(id)
		return c.countEvaluations(data.Target, param)
	case ast.ExprCall:
		data, _ := c.builder.Exprs.Call(id)
		n := c.countEvaluations(data.Target, param)
		for _, arg := range data.Args {
			n += c.countEvaluations(arg, param)
		}
		return n
	case ast.ExprAssign:
		data, _ := c.builder.Exprs.Assign(id)
		return c.countEvaluations(data.Left, param) + c.countEvaluations(data.Right, param)
	case ast.ExprGroup:
		data, _ := c.builder.Exprs.Group(id)
		return c.countEvaluations(data.Inner, param)
	default:
		return 0
	}
}

// hasPrecedenceHazard reports whether the body or any parameter use sits
// bare, without its own parentheses, where a textual expansion could change
// grouping.
func (c *checker) hasPrecedenceHazard(macro *ast.ItemMacroDefData) bool {
	body := c.builder.Exprs.Get(macro.Body)
	if body == nil {
		return false
	}
	if body.Kind != ast.ExprGroup && body.Kind != ast.ExprIntLit && body.Kind != ast.ExprIdent {
		return true
	}
	params := make(map[source.StringID]bool, len(macro.Params))
	for _, p := range macro.Params {
		params[p] = true
	}
	return c.bareParamUse(macro.Body, params, true)
}

// bareParamUse walks the body tracking whether each node sits directly
// inside parentheses. A parameter identifier reached without an enclosing
// group is exposed to the argument's own operators.
func (c *checker) bareParamUse(id ast.ExprID, params map[source.StringID]bool, wrapped bool) bool {
	expr := c.builder.Exprs.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := c.builder.Exprs.Ident(id)
		return params[data.Name] && !wrapped
	case ast.ExprGroup:
		data, _ := c.builder.Exprs.Group(id)
		return c.bareParamUse(data.Inner, params, true)
	case ast.ExprUnary:
		data, _ := c.builder.Exprs.Unary(id)
		return c.bareParamUse(data.Operand, params, false)
	case ast.ExprBinary:
		data, _ := c.builder.Exprs.Binary(id)
		return c.bareParamUse(data.Left, params, false) || c.bareParamUse(data.Right, params, false)
	case ast.ExprTernary:
		data, _ := c.builder.Exprs.Ternary(id)
		return c.bareParamUse(data.Cond, params, false) ||
			c.bareParamUse(data.Then, params, false) ||
			c.bareParamUse(data.Else, params, false)
	case ast.ExprMember:
		data, _ := c.builder.Exprs.Member(id)
		return c.bareParamUse(data.Target, params, false)
	case ast.ExprCall:
		data, _ := c.builder.Exprs.Call(id)
		// Call arguments carry their own delimiters.
		return c.bareParamUse(data.Target, params, false)
	case ast.ExprAssign:
		data, _ := c.builder.Exprs.Assign(id)
		return c.bareParamUse(data.Left, params, false) || c.bareParamUse(data.Right, params, false)
	default:
		return false
	}
}

// macroAsTemplate renders the inline-function-template replacement: each
// argument is evaluated exactly once at the call boundary, and function
// call syntax removes the precedence exposure.
func (c *checker) macroAsTemplate(macro *ast.ItemMacroDefData) string {
	var sb strings.Builder
	sb.WriteString("template <typename T>\ninline T ")
	sb.WriteString(c.name(macro.Name))
	sb.WriteByte('(')
	for i, p := range macro.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("const T &")
		sb.WriteString(c.name(p))
	}
	sb.WriteString(") { return ")
	sb.WriteString(c.renderExpr(macro.Body))
	sb.WriteString("; }")
	return sb.String()
}
