package ast

import (
	"cvlint/internal/qual"
	"cvlint/internal/source"
)

// ItemKind enumerates top-level items in a unit.
type ItemKind uint8

const (
	// ItemDecl is an object/pointer/reference/iterator declaration.
	ItemDecl ItemKind = iota
	// ItemClass is a class or struct definition.
	ItemClass
	// ItemClassConstDef is an out-of-class definition of a class constant.
	ItemClassConstDef
	// ItemMacroDef is a function-like macro definition.
	ItemMacroDef
	// ItemExprStmt is a top-level expression statement.
	ItemExprStmt
)

// Item represents a top-level node in the AST.
type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// DeclKind distinguishes the declarator shapes the analyzer models.
type DeclKind uint8

const (
	// DeclObject is a plain object declaration.
	DeclObject DeclKind = iota
	// DeclPointer is a pointer declaration.
	DeclPointer
	// DeclReference is a reference declaration.
	DeclReference
	// DeclIterator is an iterator declaration; its qualifier pair composes
	// exactly like a raw pointer.
	DeclIterator
)

func (k DeclKind) String() string {
	switch k {
	case DeclObject:
		return "object"
	case DeclPointer:
		return "pointer"
	case DeclReference:
		return "reference"
	case DeclIterator:
		return "iterator"
	}
	return "invalid"
}

// ItemDeclData is the payload of an ItemDecl.
type ItemDeclData struct {
	Name     source.StringID
	DeclKind DeclKind
	TypeName source.StringID
	Qual     qual.Qualifier
	Init     ExprID // NoExprID when absent
	NameSpan source.Span
}

// ItemClassData is the payload of an ItemClass.
type ItemClassData struct {
	Name     source.StringID
	Members  []MemberID
	NameSpan source.Span
}

// ItemClassConstDefData is the payload of an out-of-class constant
// definition, e.g. `const int GamePlayer::NumTurns;`.
type ItemClassConstDefData struct {
	Class    source.StringID
	Name     source.StringID
	TypeName source.StringID
	HasInit  bool
	Init     ExprID
	NameSpan source.Span
}

// ItemMacroDefData is the payload of a function-like macro definition.
// Span of the item covers the whole #define line so fix suggestions can
// replace it.
type ItemMacroDefData struct {
	Name     source.StringID
	Params   []source.StringID
	Body     ExprID
	NameSpan source.Span
}

// ItemExprStmtData is the payload of a top-level expression statement.
type ItemExprStmtData struct {
	Expr ExprID
}
