package ast

import (
	"cvlint/internal/qual"
	"cvlint/internal/source"
)

// MemberKind enumerates class-body members.
type MemberKind uint8

const (
	// MemberField is a data member.
	MemberField MemberKind = iota
	// MemberFunc is a member function declaration.
	MemberFunc
	// MemberConst is a static class-scope constant.
	MemberConst
	// MemberEnum is an anonymous enum of class-scope enumerators.
	MemberEnum
)

// Member represents one class-body member.
type Member struct {
	Kind    MemberKind
	Span    source.Span
	Payload PayloadID
}

// MemberFieldData is a data member: name, type, and declarator qualifier.
// Pointer fields carry both qualifier axes like top-level declarations.
type MemberFieldData struct {
	Name     source.StringID
	DeclKind DeclKind
	TypeName source.StringID
	Qual     qual.Qualifier
	NameSpan source.Span
}

// ParamSpec is one member-function parameter.
type ParamSpec struct {
	Name     source.StringID // may be NoStringID for unnamed params
	TypeName source.StringID
	Qual     qual.Qualifier
}

// MemberFuncData is a member-function declaration. IsConstQualified is part
// of the signature identity: the same (name, params) may coexist once with
// and once without it.
type MemberFuncData struct {
	Name             source.StringID
	Params           []ParamSpec
	IsConstQualified bool
	ReturnTypeName   source.StringID
	ReturnConst      bool
	NameSpan         source.Span
}

// MemberConstData is a static class-scope constant declaration.
// Integral records whether the underlying type is integral-literal
// compatible (in-class initializer allowed).
type MemberConstData struct {
	Name     source.StringID
	TypeName source.StringID
	Integral bool
	HasInit  bool
	Init     ExprID
	NameSpan source.Span
}

// EnumeratorSpec is one enumerator of an anonymous class-scope enum.
type EnumeratorSpec struct {
	Name     source.StringID
	Value    ExprID // NoExprID when implicit
	NameSpan source.Span
}

// MemberEnumData is an anonymous enum member.
type MemberEnumData struct {
	Enumerators []EnumeratorSpec
}
