package ast

import (
	"cvlint/internal/source"
)

// File is the root node of one parsed unit.
type File struct {
	Span  source.Span
	Items []ItemID
}

// Files manages allocation of file nodes.
type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(span source.Span) FileID {
	return FileID(f.Arena.Allocate(File{Span: span}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
