package symbols_test

import (
	"testing"

	"cvlint/internal/qual"
	"cvlint/internal/symbols"
)

func newTable() *symbols.Table {
	return symbols.NewTable(symbols.Hints{Scopes: 4, Symbols: 16}, nil)
}

func declareObject(t *testing.T, table *symbols.Table, scope symbols.ScopeID, name string) symbols.SymbolID {
	t.Helper()
	id, _, ok := table.Declare(symbols.Symbol{
		Name:  table.Strings.Intern(name),
		Kind:  symbols.SymObject,
		Scope: scope,
	})
	if !ok {
		t.Fatalf("declare %q failed", name)
	}
	return id
}

func memberFunc(table *symbols.Table, scope symbols.ScopeID, name string, constQualified bool, paramTypes ...string) symbols.Symbol {
	params := make([]symbols.ParamSig, 0, len(paramTypes))
	for _, typ := range paramTypes {
		params = append(params, symbols.ParamSig{TypeName: table.Strings.Intern(typ)})
	}
	return symbols.Symbol{
		Name:  table.Strings.Intern(name),
		Kind:  symbols.SymMemberFunc,
		Scope: scope,
		Func: &symbols.FuncSig{
			Params:           params,
			IsConstQualified: constQualified,
		},
	}
}

func TestDeclareRejectsSameName(t *testing.T) {
	table := newTable()
	first := declareObject(t, table, table.Unit(), "x")

	_, prev, ok := table.Declare(symbols.Symbol{
		Name:  table.Strings.Intern("x"),
		Kind:  symbols.SymPointer,
		Scope: table.Unit(),
	})
	if ok {
		t.Fatal("redeclaration of x must conflict")
	}
	if prev != first {
		t.Fatalf("conflict points at %d, want %d", prev, first)
	}
}

func TestOverloadPairCoexists(t *testing.T) {
	table := newTable()
	scope := table.NewScope(symbols.ScopeClass, table.Unit(), table.Strings.Intern("TextBlock"))

	constID, _, ok := table.Declare(memberFunc(table, scope, "get", true, "int"))
	if !ok {
		t.Fatal("const overload rejected")
	}
	mutID, _, ok := table.Declare(memberFunc(table, scope, "get", false, "int"))
	if !ok {
		t.Fatal("non-const overload rejected; constness is part of the signature")
	}
	if constID == mutID {
		t.Fatal("overloads must be distinct symbols")
	}
}

func TestSameConstnessRedeclarationConflicts(t *testing.T) {
	table := newTable()
	scope := table.NewScope(symbols.ScopeClass, table.Unit(), table.Strings.Intern("TextBlock"))

	first, _, _ := table.Declare(memberFunc(table, scope, "get", true, "int"))
	_, prev, ok := table.Declare(memberFunc(table, scope, "get", true, "int"))
	if ok {
		t.Fatal("identical signature must conflict")
	}
	if prev != first {
		t.Fatalf("conflict points at %d, want %d", prev, first)
	}
}

func TestDifferentParamsAreOverloads(t *testing.T) {
	table := newTable()
	scope := table.NewScope(symbols.ScopeClass, table.Unit(), table.Strings.Intern("TextBlock"))

	if _, _, ok := table.Declare(memberFunc(table, scope, "get", false, "int")); !ok {
		t.Fatal("first overload rejected")
	}
	if _, _, ok := table.Declare(memberFunc(table, scope, "get", false, "int", "int")); !ok {
		t.Fatal("different arity must not conflict")
	}
}

func TestLookupShadowsEnclosingScope(t *testing.T) {
	table := newTable()
	name := table.Strings.Intern("n")
	outer := declareObject(t, table, table.Unit(), "n")

	scope := table.NewScope(symbols.ScopeClass, table.Unit(), table.Strings.Intern("C"))
	inner, _, ok := table.Declare(symbols.Symbol{
		Name:  name,
		Kind:  symbols.SymField,
		Scope: scope,
		Qual:  qual.Value(true),
	})
	if !ok {
		t.Fatal("field declaration failed")
	}

	got := table.Lookup(name, scope)
	if len(got) != 1 || got[0] != inner {
		t.Fatalf("class scope lookup = %v, want [%d]", got, inner)
	}
	got = table.Lookup(name, table.Unit())
	if len(got) != 1 || got[0] != outer {
		t.Fatalf("unit scope lookup = %v, want [%d]", got, outer)
	}
}

func TestLookupWalksToParent(t *testing.T) {
	table := newTable()
	outer := declareObject(t, table, table.Unit(), "global")
	scope := table.NewScope(symbols.ScopeClass, table.Unit(), table.Strings.Intern("C"))

	got := table.Lookup(table.Strings.Intern("global"), scope)
	if len(got) != 1 || got[0] != outer {
		t.Fatalf("lookup did not reach the unit scope: %v", got)
	}
	if got := table.Lookup(table.Strings.Intern("missing"), scope); got != nil {
		t.Fatalf("unknown name resolved to %v", got)
	}
}

func TestClassScopeIndex(t *testing.T) {
	table := newTable()
	name := table.Strings.Intern("Rational")
	scope := table.NewScope(symbols.ScopeClass, table.Unit(), name)

	got, ok := table.ClassScope(name)
	if !ok || got != scope {
		t.Fatalf("ClassScope = %d, %v; want %d", got, ok, scope)
	}
	if _, ok := table.ClassScope(table.Strings.Intern("Unknown")); ok {
		t.Fatal("unknown class must not resolve")
	}
}

func TestSymbolAccessorsRejectInvalidIDs(t *testing.T) {
	table := newTable()
	if table.Symbol(symbols.NoSymbolID) != nil {
		t.Fatal("NoSymbolID must yield nil")
	}
	if table.Symbol(symbols.SymbolID(99)) != nil {
		t.Fatal("out-of-range ID must yield nil")
	}
	if table.SymbolCount() != 0 {
		t.Fatalf("fresh table reports %d symbols", table.SymbolCount())
	}

	_ = declareObject(t, table, table.Unit(), "x")
	if table.SymbolCount() != 1 {
		t.Fatalf("expected 1 symbol, got %d", table.SymbolCount())
	}

	if table.Scope(symbols.NoScopeID) != nil {
		t.Fatal("NoScopeID must yield nil")
	}
}
