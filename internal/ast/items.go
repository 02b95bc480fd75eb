package ast

import (
	"cvlint/internal/source"
)

// Items manages allocation of top-level items.
type Items struct {
	Arena     *Arena[Item]
	Decls     *Arena[ItemDeclData]
	Classes   *Arena[ItemClassData]
	ConstDefs *Arena[ItemClassConstDefData]
	Macros    *Arena[ItemMacroDefData]
	ExprStmts *Arena[ItemExprStmtData]
}

// NewItems creates an Items with per-kind payload arenas.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Items{
		Arena:     NewArena[Item](capHint),
		Decls:     NewArena[ItemDeclData](capHint),
		Classes:   NewArena[ItemClassData](capHint),
		ConstDefs: NewArena[ItemClassConstDefData](capHint),
		Macros:    NewArena[ItemMacroDefData](capHint),
		ExprStmts: NewArena[ItemExprStmtData](capHint),
	}
}

func (it *Items) new(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(it.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the item with the given ID.
func (it *Items) Get(id ItemID) *Item {
	return it.Arena.Get(uint32(id))
}

// NewDecl creates an object/pointer/reference/iterator declaration item.
func (it *Items) NewDecl(span source.Span, data ItemDeclData) ItemID {
	payload := it.Decls.Allocate(data)
	return it.new(ItemDecl, span, PayloadID(payload))
}

// Decl returns the declaration payload for the given item ID.
func (it *Items) Decl(id ItemID) (*ItemDeclData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemDecl {
		return nil, false
	}
	return it.Decls.Get(uint32(item.Payload)), true
}

// NewClass creates a class definition item.
func (it *Items) NewClass(span source.Span, data ItemClassData) ItemID {
	payload := it.Classes.Allocate(data)
	return it.new(ItemClass, span, PayloadID(payload))
}

// Class returns the class payload for the given item ID.
func (it *Items) Class(id ItemID) (*ItemClassData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemClass {
		return nil, false
	}
	return it.Classes.Get(uint32(item.Payload)), true
}

// NewClassConstDef creates an out-of-class constant definition item.
func (it *Items) NewClassConstDef(span source.Span, data ItemClassConstDefData) ItemID {
	payload := it.ConstDefs.Allocate(data)
	return it.new(ItemClassConstDef, span, PayloadID(payload))
}

// ClassConstDef returns the out-of-class definition payload.
func (it *Items) ClassConstDef(id ItemID) (*ItemClassConstDefData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemClassConstDef {
		return nil, false
	}
	return it.ConstDefs.Get(uint32(item.Payload)), true
}

// NewMacroDef creates a macro definition item.
func (it *Items) NewMacroDef(span source.Span, data ItemMacroDefData) ItemID {
	payload := it.Macros.Allocate(data)
	return it.new(ItemMacroDef, span, PayloadID(payload))
}

// MacroDef returns the macro payload for the given item ID.
func (it *Items) MacroDef(id ItemID) (*ItemMacroDefData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemMacroDef {
		return nil, false
	}
	return it.Macros.Get(uint32(item.Payload)), true
}

// NewExprStmt creates a top-level expression statement item.
func (it *Items) NewExprStmt(span source.Span, expr ExprID) ItemID {
	payload := it.ExprStmts.Allocate(ItemExprStmtData{Expr: expr})
	return it.new(ItemExprStmt, span, PayloadID(payload))
}

// ExprStmt returns the expression-statement payload.
func (it *Items) ExprStmt(id ItemID) (*ItemExprStmtData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemExprStmt {
		return nil, false
	}
	return it.ExprStmts.Get(uint32(item.Payload)), true
}
