package ast

import (
	"cvlint/internal/source"
)

// Members manages allocation of class-body members.
type Members struct {
	Arena  *Arena[Member]
	Fields *Arena[MemberFieldData]
	Funcs  *Arena[MemberFuncData]
	Consts *Arena[MemberConstData]
	Enums  *Arena[MemberEnumData]
}

// NewMembers creates a Members with per-kind payload arenas.
func NewMembers(capHint uint) *Members {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Members{
		Arena:  NewArena[Member](capHint),
		Fields: NewArena[MemberFieldData](capHint),
		Funcs:  NewArena[MemberFuncData](capHint),
		Consts: NewArena[MemberConstData](capHint),
		Enums:  NewArena[MemberEnumData](capHint),
	}
}

func (m *Members) new(kind MemberKind, span source.Span, payload PayloadID) MemberID {
	return MemberID(m.Arena.Allocate(Member{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the member with the given ID.
func (m *Members) Get(id MemberID) *Member {
	return m.Arena.Get(uint32(id))
}

// NewField creates a data-member node.
func (m *Members) NewField(span source.Span, data MemberFieldData) MemberID {
	payload := m.Fields.Allocate(data)
	return m.new(MemberField, span, PayloadID(payload))
}

// Field returns the data-member payload.
func (m *Members) Field(id MemberID) (*MemberFieldData, bool) {
	member := m.Get(id)
	if member == nil || member.Kind != MemberField {
		return nil, false
	}
	return m.Fields.Get(uint32(member.Payload)), true
}

// NewFunc creates a member-function node.
func (m *Members) NewFunc(span source.Span, data MemberFuncData) MemberID {
	payload := m.Funcs.Allocate(data)
	return m.new(MemberFunc, span, PayloadID(payload))
}

// Func returns the member-function payload.
func (m *Members) Func(id MemberID) (*MemberFuncData, bool) {
	member := m.Get(id)
	if member == nil || member.Kind != MemberFunc {
		return nil, false
	}
	return m.Funcs.Get(uint32(member.Payload)), true
}

// NewConst creates a class-constant node.
func (m *Members) NewConst(span source.Span, data MemberConstData) MemberID {
	payload := m.Consts.Allocate(data)
	return m.new(MemberConst, span, PayloadID(payload))
}

// Const returns the class-constant payload.
func (m *Members) Const(id MemberID) (*MemberConstData, bool) {
	member := m.Get(id)
	if member == nil || member.Kind != MemberConst {
		return nil, false
	}
	return m.Consts.Get(uint32(member.Payload)), true
}

// NewEnum creates an anonymous-enum node.
func (m *Members) NewEnum(span source.Span, data MemberEnumData) MemberID {
	payload := m.Enums.Allocate(data)
	return m.new(MemberEnum, span, PayloadID(payload))
}

// Enum returns the anonymous-enum payload.
func (m *Members) Enum(id MemberID) (*MemberEnumData, bool) {
	member := m.Get(id)
	if member == nil || member.Kind != MemberEnum {
		return nil, false
	}
	return m.Enums.Get(uint32(member.Payload)), true
}
