package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"cvlint/internal/source"
)

// Hints provide optional capacity suggestions for the table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table is the Declaration Table for one analysis unit. It owns every
// declared entity for the lifetime of the run and is rebuilt fresh per unit;
// declarations are append-only.
type Table struct {
	Strings *source.Interner

	scopes  []Scope  // index 0 unused; ScopeID is 1-based
	symbols []Symbol // index 0 unused; SymbolID is 1-based

	unit        ScopeID
	classScopes map[source.StringID]ScopeID
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	t := &Table{
		Strings:     strings,
		scopes:      make([]Scope, 1, scopeCap+1),
		symbols:     make([]Symbol, 1, symCap+1),
		classScopes: make(map[source.StringID]ScopeID),
	}
	t.unit = t.NewScope(ScopeUnit, NoScopeID, source.NoStringID)
	return t
}

// Unit returns the top-level scope of the unit.
func (t *Table) Unit() ScopeID {
	return t.unit
}

// NewScope creates a scope and returns its ID. Class scopes are indexed by
// class name for ClassScope lookups.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, class source.StringID) ScopeID {
	t.scopes = append(t.scopes, Scope{
		Kind:      kind,
		Parent:    parent,
		Class:     class,
		NameIndex: make(map[source.StringID][]SymbolID),
	})
	id := ScopeID(len(t.scopes) - 1) //nolint:gosec // scope counts stay small
	if kind == ScopeClass && class != source.NoStringID {
		t.classScopes[class] = id
	}
	return id
}

// Scope returns the scope for id, or nil.
func (t *Table) Scope(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// Symbol returns the symbol for id, or nil.
func (t *Table) Symbol(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(t.symbols) {
		return nil
	}
	return &t.symbols[id]
}

// SymbolCount reports the number of declared symbols.
func (t *Table) SymbolCount() int {
	return len(t.symbols) - 1
}

// ClassScope returns the member scope of the named class.
func (t *Table) ClassScope(class source.StringID) (ScopeID, bool) {
	id, ok := t.classScopes[class]
	return id, ok
}

// Declare registers sym in its scope. It fails when a conflicting entity
// already exists there: for member functions the conflict triple is
// (name, parameter types, const qualification) — the same name and
// parameters with the other constness is the canonical overload pair and
// is accepted; for every other kind the name alone conflicts.
// On conflict the existing symbol is returned with ok=false.
func (t *Table) Declare(sym Symbol) (SymbolID, SymbolID, bool) {
	scope := t.Scope(sym.Scope)
	if scope == nil {
		return NoSymbolID, NoSymbolID, false
	}
	for _, existingID := range scope.NameIndex[sym.Name] {
		existing := t.Symbol(existingID)
		if existing == nil {
			continue
		}
		if sym.Kind == SymMemberFunc && existing.Kind == SymMemberFunc {
			if sym.Func.SameParams(existing.Func) &&
				sym.Func.IsConstQualified == existing.Func.IsConstQualified {
				return NoSymbolID, existingID, false
			}
			continue
		}
		return NoSymbolID, existingID, false
	}

	t.symbols = append(t.symbols, sym)
	id := SymbolID(len(t.symbols) - 1) //nolint:gosec // symbol counts stay small
	scope.NameIndex[sym.Name] = append(scope.NameIndex[sym.Name], id)
	scope.Symbols = append(scope.Symbols, id)
	return id, NoSymbolID, true
}

// Lookup returns the visible candidates for name starting at scope: the
// first scope up the parent chain that declares the name wins, so own
// declarations shadow enclosing ones.
func (t *Table) Lookup(name source.StringID, scope ScopeID) []SymbolID {
	for scope.IsValid() {
		s := t.Scope(scope)
		if s == nil {
			return nil
		}
		if ids := s.NameIndex[name]; len(ids) > 0 {
			return ids
		}
		scope = s.Parent
	}
	return nil
}
