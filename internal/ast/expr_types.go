package ast

import (
	"cvlint/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprIdent represents an identifier expression.
	ExprIdent ExprKind = iota
	// ExprIntLit represents an integer literal.
	ExprIntLit
	// ExprUnary represents a unary expression (deref, address-of, ...).
	ExprUnary
	// ExprBinary represents a binary expression.
	ExprBinary
	// ExprTernary represents a conditional expression.
	ExprTernary
	// ExprMember represents a member access (obj.field).
	ExprMember
	// ExprScopeRef represents a class-scope reference (C::name).
	ExprScopeRef
	// ExprCall represents a call expression.
	ExprCall
	// ExprAssign represents an assignment.
	ExprAssign
	// ExprGroup represents a parenthesized expression.
	ExprGroup
)

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprUnaryOp enumerates unary operator kinds.
type ExprUnaryOp uint8

const (
	// ExprUnaryDeref represents *x.
	ExprUnaryDeref ExprUnaryOp = iota
	// ExprUnaryAddrOf represents &x.
	ExprUnaryAddrOf
	// ExprUnaryNeg represents -x.
	ExprUnaryNeg
	// ExprUnaryPostInc represents x++.
	ExprUnaryPostInc
	// ExprUnaryPostDec represents x--.
	ExprUnaryPostDec
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryDeref:
		return "*"
	case ExprUnaryAddrOf:
		return "&"
	case ExprUnaryNeg:
		return "-"
	case ExprUnaryPostInc:
		return "++"
	case ExprUnaryPostDec:
		return "--"
	}
	return "?"
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	// ExprBinaryAdd represents +.
	ExprBinaryAdd ExprBinaryOp = iota
	// ExprBinarySub represents -.
	ExprBinarySub
	// ExprBinaryMul represents *.
	ExprBinaryMul
	// ExprBinaryDiv represents /.
	ExprBinaryDiv
	// ExprBinaryRem represents %.
	ExprBinaryRem
	// ExprBinaryEq represents ==.
	ExprBinaryEq
	// ExprBinaryNe represents !=.
	ExprBinaryNe
	// ExprBinaryLt represents <.
	ExprBinaryLt
	// ExprBinaryGt represents >.
	ExprBinaryGt
	// ExprBinaryLe represents <=.
	ExprBinaryLe
	// ExprBinaryGe represents >=.
	ExprBinaryGe
)

func (op ExprBinaryOp) String() string {
	switch op {
	case ExprBinaryAdd:
		return "+"
	case ExprBinarySub:
		return "-"
	case ExprBinaryMul:
		return "*"
	case ExprBinaryDiv:
		return "/"
	case ExprBinaryRem:
		return "%"
	case ExprBinaryEq:
		return "=="
	case ExprBinaryNe:
		return "!="
	case ExprBinaryLt:
		return "<"
	case ExprBinaryGt:
		return ">"
	case ExprBinaryLe:
		return "<="
	case ExprBinaryGe:
		return ">="
	}
	return "?"
}

// OperatorName returns the member-function spelling for an overloadable
// binary operator, e.g. "operator*".
func (op ExprBinaryOp) OperatorName() string {
	return "operator" + op.String()
}

type ExprIdentData struct {
	Name source.StringID
}

type ExprIntLitData struct {
	Value source.StringID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprTernaryData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type ExprMemberData struct {
	Target ExprID
	Field  source.StringID
}

type ExprScopeRefData struct {
	Class source.StringID
	Name  source.StringID
}

type ExprCallData struct {
	Target ExprID
	Args   []ExprID
}

type ExprAssignData struct {
	Left  ExprID
	Right ExprID
}

type ExprGroupData struct {
	Inner ExprID
}
