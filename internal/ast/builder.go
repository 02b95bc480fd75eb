package ast

import (
	"cvlint/internal/source"
)

// Hints carry optional capacity suggestions for the AST arenas.
type Hints struct{ Files, Items, Members, Exprs uint }

// Builder aggregates the AST arenas and the shared string interner for one
// analysis run.
type Builder struct {
	Files   *Files
	Items   *Items
	Members *Members
	Exprs   *Exprs

	StringsInterner *source.Interner
}

// NewBuilder creates a Builder. If strings is nil a fresh interner is
// allocated.
func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 7
	}
	if hints.Members == 0 {
		hints.Members = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Items:           NewItems(hints.Items),
		Members:         NewMembers(hints.Members),
		Exprs:           NewExprs(hints.Exprs),
		StringsInterner: strings,
	}
}

// PushItem appends an item to a file's top-level list.
func (b *Builder) PushItem(file FileID, item ItemID) {
	b.Files.Get(file).Items = append(b.Files.Get(file).Items, item)
}

// LookupName resolves an interned name, returning "" for NoStringID.
func (b *Builder) LookupName(id source.StringID) string {
	s, _ := b.StringsInterner.Lookup(id)
	return s
}
