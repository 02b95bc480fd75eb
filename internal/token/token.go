package token

import (
	"cvlint/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwConst, KwClass, KwStruct, KwStatic, KwEnum, KwPublic, KwPrivate,
		KwOperator, KwInline, KwIterator, KwConstIterator:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsTypeName reports whether the token can open a type in a declarator:
// an identifier (builtin or class name) or an iterator keyword.
func (t Token) IsTypeName() bool {
	switch t.Kind {
	case Ident, KwIterator, KwConstIterator:
		return true
	default:
		return false
	}
}

// IsOverloadableOp reports whether the token may follow 'operator' in a
// member-function name.
func (t Token) IsOverloadableOp() bool {
	switch t.Kind {
	case Star, Plus, Minus, Slash, Percent, EqEq, BangEq, Lt, Gt, LtEq, GtEq:
		return true
	default:
		return false
	}
}
