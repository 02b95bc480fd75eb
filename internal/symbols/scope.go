package symbols

import (
	"cvlint/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	// ScopeUnit is the top-level scope of one analysis unit.
	ScopeUnit
	// ScopeClass holds the members of one class.
	ScopeClass
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeUnit:
		return "unit"
	case ScopeClass:
		return "class"
	default:
		return "invalid"
	}
}

// Scope models one declaration region. Class scopes nest in the unit scope;
// lookup walks own scope first, so own declarations shadow enclosing ones.
type Scope struct {
	Kind   ScopeKind
	Parent ScopeID
	// Class is the owning class name for ScopeClass, NoStringID otherwise.
	Class     source.StringID
	NameIndex map[source.StringID][]SymbolID
	Symbols   []SymbolID
}
