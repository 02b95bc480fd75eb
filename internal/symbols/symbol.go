package symbols

import (
	"cvlint/internal/qual"
	"cvlint/internal/source"
)

// SymbolKind enumerates the entity kinds the Declaration Table tracks.
type SymbolKind uint8

const (
	SymInvalid SymbolKind = iota
	// SymObject is a plain object.
	SymObject
	// SymPointer is a pointer variable.
	SymPointer
	// SymReference is a reference; its binding is fixed at initialization.
	SymReference
	// SymIterator is an iterator variable; qualifier axes compose like a
	// raw pointer.
	SymIterator
	// SymField is a non-static data member.
	SymField
	// SymMemberFunc is a member function; constness is part of its
	// signature identity.
	SymMemberFunc
	// SymClassConstant is a static const class-scope constant.
	SymClassConstant
	// SymEnumerator is a class-scope enumerator.
	SymEnumerator
	// SymClass names a class.
	SymClass
	// SymMacro names a function-like macro.
	SymMacro
)

func (k SymbolKind) String() string {
	switch k {
	case SymObject:
		return "object"
	case SymPointer:
		return "pointer"
	case SymReference:
		return "reference"
	case SymIterator:
		return "iterator"
	case SymField:
		return "field"
	case SymMemberFunc:
		return "member function"
	case SymClassConstant:
		return "class constant"
	case SymEnumerator:
		return "enumerator"
	case SymClass:
		return "class"
	case SymMacro:
		return "macro"
	default:
		return "invalid"
	}
}

// ParamSig is one parameter of a member-function signature. Only the type
// spelling participates in signature identity.
type ParamSig struct {
	TypeName source.StringID
	Qual     qual.Qualifier
}

// FuncSig captures the signature half of a member function. Two functions
// with equal Name and Params but different IsConstQualified are distinct
// overloads, not redeclarations.
type FuncSig struct {
	Params           []ParamSig
	IsConstQualified bool
	ReturnTypeName   source.StringID
	// ReturnQual is the declared qualification of the returned value; a
	// const-qualified return makes the call result a non-modifiable
	// lvalue at every use site.
	ReturnQual qual.Qualifier
}

// SameParams reports whether two signatures take the same parameter types.
func (s *FuncSig) SameParams(other *FuncSig) bool {
	if len(s.Params) != len(other.Params) {
		return false
	}
	for i := range s.Params {
		if s.Params[i].TypeName != other.Params[i].TypeName {
			return false
		}
	}
	return true
}

// ConstInfo tracks the lifecycle of a class-scope constant across its
// in-class declaration and any out-of-class definition.
type ConstInfo struct {
	// Integral marks integral-literal-compatible underlying types, the
	// only ones allowed an in-class initializer.
	Integral       bool
	HasInClassInit bool
	// AddressTaken is set by the evaluator when &C::Name occurs.
	AddressTaken bool
	// DefCount counts out-of-class definitions; placement rules require
	// exactly one when a definition is needed at all.
	DefCount   int
	DefHasInit bool
	DefSpan    source.Span
}

// Symbol is one declared entity.
type Symbol struct {
	Name     source.StringID
	Kind     SymbolKind
	Qual     qual.Qualifier
	Scope    ScopeID
	Span     source.Span
	TypeName source.StringID

	// Func is set for SymMemberFunc.
	Func *FuncSig
	// Const is set for SymClassConstant.
	Const *ConstInfo
	// ClassScope is set for SymClass and points at the member scope.
	ClassScope ScopeID
	// Macro is set for SymMacro.
	Macro *MacroSig
}

// MacroSig is the macro half the hazard detector consumes.
type MacroSig struct {
	Params []source.StringID
}
