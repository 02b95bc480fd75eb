package sema_test

import (
	"testing"

	"cvlint/internal/qual"
	"cvlint/internal/sema"
	"cvlint/internal/symbols"
)

// overloadFixture builds a table with one class and the requested get()
// overloads, returning the candidate list.
func overloadFixture(t *testing.T, withConst, withMut bool) (*symbols.Table, []symbols.SymbolID) {
	t.Helper()
	table := symbols.NewTable(symbols.Hints{}, nil)
	class := table.Strings.Intern("TextBlock")
	name := table.Strings.Intern("get")
	scope := table.NewScope(symbols.ScopeClass, table.Unit(), class)

	var cands []symbols.SymbolID
	if withConst {
		id, _, ok := table.Declare(symbols.Symbol{
			Name:  name,
			Kind:  symbols.SymMemberFunc,
			Scope: scope,
			Func:  &symbols.FuncSig{IsConstQualified: true, ReturnQual: qual.Value(true)},
		})
		if !ok {
			t.Fatalf("declare const overload failed")
		}
		cands = append(cands, id)
	}
	if withMut {
		id, _, ok := table.Declare(symbols.Symbol{
			Name:  name,
			Kind:  symbols.SymMemberFunc,
			Scope: scope,
			Func:  &symbols.FuncSig{},
		})
		if !ok {
			t.Fatalf("declare non-const overload failed")
		}
		cands = append(cands, id)
	}
	return table, cands
}

func TestResolveOverloadPairPicksByReceiver(t *testing.T) {
	table, cands := overloadFixture(t, true, true)

	bound, failure := sema.ResolveOverload(table, cands, true, 0)
	if failure != sema.OverloadOK {
		t.Fatalf("const receiver: failure = %v", failure)
	}
	if !table.Symbol(bound).Func.IsConstQualified {
		t.Fatalf("const receiver bound the non-const overload")
	}

	bound, failure = sema.ResolveOverload(table, cands, false, 0)
	if failure != sema.OverloadOK {
		t.Fatalf("mutable receiver: failure = %v", failure)
	}
	if table.Symbol(bound).Func.IsConstQualified {
		t.Fatalf("mutable receiver bound the const overload")
	}
}

func TestResolveOverloadLoneConstServesBoth(t *testing.T) {
	table, cands := overloadFixture(t, true, false)
	for _, receiverConst := range []bool{true, false} {
		bound, failure := sema.ResolveOverload(table, cands, receiverConst, 0)
		if failure != sema.OverloadOK || !bound.IsValid() {
			t.Fatalf("receiverConst=%v: failure = %v", receiverConst, failure)
		}
	}
}

func TestResolveOverloadLoneMutableRejectsConstReceiver(t *testing.T) {
	table, cands := overloadFixture(t, false, true)

	if _, failure := sema.ResolveOverload(table, cands, false, 0); failure != sema.OverloadOK {
		t.Fatalf("mutable receiver: failure = %v", failure)
	}
	if _, failure := sema.ResolveOverload(table, cands, true, 0); failure != sema.OverloadConstViolation {
		t.Fatalf("const receiver: failure = %v, want const violation", failure)
	}
}

func TestResolveOverloadArityMismatchIsNotViable(t *testing.T) {
	table, cands := overloadFixture(t, true, true)
	if _, failure := sema.ResolveOverload(table, cands, false, 2); failure != sema.OverloadNoViable {
		t.Fatalf("failure = %v, want no viable", failure)
	}
}

func TestResolveOverloadEmptyCandidates(t *testing.T) {
	table, _ := overloadFixture(t, false, false)
	if _, failure := sema.ResolveOverload(table, nil, false, 0); failure != sema.OverloadNoViable {
		t.Fatalf("failure = %v, want no viable", failure)
	}
}
