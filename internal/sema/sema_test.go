package sema_test

import (
	"strings"
	"testing"

	"cvlint/internal/ast"
	"cvlint/internal/diag"
	"cvlint/internal/parser"
	"cvlint/internal/sema"
	"cvlint/internal/source"
	"cvlint/internal/symbols"
)

func analyze(t *testing.T, src string) (*diag.Bag, *sema.Result) {
	t.Helper()
	fileSet := source.NewFileSet()
	fileID := fileSet.AddVirtual("unit.cd", []byte(src))
	sf := fileSet.Get(fileID)

	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{}, nil)
	astFile := parser.ParseFile(sf, builder, parser.Options{Reporter: reporter})
	syms := symbols.Resolve(builder, astFile, symbols.Options{Reporter: reporter})
	res := sema.Check(builder, astFile, sema.Options{
		Reporter: reporter,
		Symbols:  syms,
		File:     sf,
	})
	return bag, res
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func firstOf(t *testing.T, bag *diag.Bag, code diag.Code) diag.Diagnostic {
	t.Helper()
	for _, d := range bag.Items() {
		if d.Code == code {
			return d
		}
	}
	t.Fatalf("no diagnostic with code %s; got %d diagnostics: %+v", code, bag.Len(), bag.Items())
	return diag.Diagnostic{}
}

func wantClean(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %d: %+v", bag.Len(), bag.Items())
	}
}

func TestAssignToConstObject(t *testing.T) {
	bag, _ := analyze(t, `
const int x = 1;
x = 2;
`)
	d := firstOf(t, bag, diag.SemaNonModifiableTarget)
	if d.Entity != "x" {
		t.Fatalf("entity = %q, want %q", d.Entity, "x")
	}
}

func TestAssignToMutableObject(t *testing.T) {
	bag, _ := analyze(t, `
int x = 1;
x = 2;
`)
	wantClean(t, bag)
}

func TestAssignThroughPointerToConst(t *testing.T) {
	bag, _ := analyze(t, `
int v = 1;
const int *p = &v;
*p = 2;
`)
	if got := countCode(bag, diag.SemaNonModifiableTarget); got != 1 {
		t.Fatalf("NonModifiableTarget count = %d, want 1", got)
	}
}

func TestRebindPointerToConstAllowed(t *testing.T) {
	bag, _ := analyze(t, `
int v = 1;
int w = 2;
const int *p = &v;
p = &w;
`)
	wantClean(t, bag)
}

func TestConstPointerRebindRejected(t *testing.T) {
	bag, _ := analyze(t, `
int v = 1;
int w = 2;
int * const p = &v;
p = &w;
`)
	d := firstOf(t, bag, diag.SemaNonModifiableTarget)
	if d.Entity != "p" {
		t.Fatalf("entity = %q, want %q", d.Entity, "p")
	}
}

func TestConstPointerWriteThroughAllowed(t *testing.T) {
	bag, _ := analyze(t, `
int v = 1;
int * const p = &v;
*p = 3;
`)
	wantClean(t, bag)
}

func TestConstIteratorWriteThroughRejected(t *testing.T) {
	bag, _ := analyze(t, `
const_iterator it;
*it = 1;
`)
	if got := countCode(bag, diag.SemaNonModifiableTarget); got != 1 {
		t.Fatalf("NonModifiableTarget count = %d, want 1", got)
	}
}

func TestIteratorRebindAndWriteAllowed(t *testing.T) {
	bag, _ := analyze(t, `
iterator it;
iterator other;
it = other;
*it = 1;
`)
	wantClean(t, bag)
}

func TestDerefNonPointerRejected(t *testing.T) {
	bag, _ := analyze(t, `
int x = 1;
*x = 2;
`)
	if got := countCode(bag, diag.SemaNotAPointer); got != 1 {
		t.Fatalf("NotAPointer count = %d, want 1", got)
	}
	// The cascade stops there; no second diagnostic for the write.
	if got := countCode(bag, diag.SemaNonModifiableTarget); got != 0 {
		t.Fatalf("NonModifiableTarget count = %d, want 0", got)
	}
}

func TestUndeclaredName(t *testing.T) {
	bag, _ := analyze(t, `nothing = 1;`)
	d := firstOf(t, bag, diag.SemaUnresolvedName)
	if d.Entity != "nothing" {
		t.Fatalf("entity = %q, want %q", d.Entity, "nothing")
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	bag, _ := analyze(t, `
int x = 1;
int x = 2;
`)
	d := firstOf(t, bag, diag.SemaDuplicateDeclaration)
	if len(d.Notes) == 0 || !strings.Contains(d.Notes[0].Msg, "previously declared") {
		t.Fatalf("duplicate diagnostic is missing the back reference note: %+v", d)
	}
}

func TestOverloadPairIsNotDuplicate(t *testing.T) {
	bag, _ := analyze(t, `
class TextBlock {
	char value;
	char get() const;
	char get();
};
`)
	wantClean(t, bag)
}

func TestSameConstnessRedeclarationRejected(t *testing.T) {
	bag, _ := analyze(t, `
class TextBlock {
	char get() const;
	char get() const;
};
`)
	if got := countCode(bag, diag.SemaDuplicateDeclaration); got != 1 {
		t.Fatalf("DuplicateDeclaration count = %d, want 1", got)
	}
}

func TestOverloadSelectionByReceiverConstness(t *testing.T) {
	bag, res := analyze(t, `
class TextBlock {
	char get() const;
	char get();
};
TextBlock tb;
const TextBlock ctb;
tb.get();
ctb.get();
`)
	wantClean(t, bag)
	// Both call sites bound, to different overloads.
	bound := map[symbols.SymbolID]bool{}
	for _, id := range res.ExprBindings {
		bound[id] = true
	}
	if len(bound) < 2 {
		t.Fatalf("expected the two get() calls to bind distinct overloads, bindings: %+v", res.ExprBindings)
	}
}

func TestConstOnlyOverloadServesBothReceivers(t *testing.T) {
	bag, _ := analyze(t, `
class TextBlock {
	char get() const;
};
TextBlock tb;
const TextBlock ctb;
tb.get();
ctb.get();
`)
	wantClean(t, bag)
}

func TestConstViolationOnConstReceiver(t *testing.T) {
	bag, _ := analyze(t, `
class TextBlock {
	char get();
};
const TextBlock ctb;
ctb.get();
`)
	d := firstOf(t, bag, diag.SemaConstViolation)
	if d.Entity != "get" {
		t.Fatalf("entity = %q, want %q", d.Entity, "get")
	}
	if got := countCode(bag, diag.SemaNoViableOverload); got != 0 {
		t.Fatalf("const violation must not double-report as NoViableOverload")
	}
}

func TestNoViableOverloadOnMissingMember(t *testing.T) {
	bag, _ := analyze(t, `
class TextBlock {
	char get();
};
TextBlock tb;
tb.get(1, 2);
`)
	if got := countCode(bag, diag.SemaNoViableOverload); got != 1 {
		t.Fatalf("NoViableOverload count = %d, want 1", got)
	}
}

func TestCallToUndeclaredFunction(t *testing.T) {
	bag, _ := analyze(t, `frobnicate(1);`)
	d := firstOf(t, bag, diag.SemaNoViableOverload)
	if d.Entity != "frobnicate" {
		t.Fatalf("entity = %q, want %q", d.Entity, "frobnicate")
	}
}

func TestConstReturnBlocksResultAssignment(t *testing.T) {
	bag, _ := analyze(t, `
class Rational {
	int n;
	const Rational operator*(const Rational &rhs) const;
};
Rational a;
Rational b;
Rational c;
(a * b) = c;
`)
	if got := countCode(bag, diag.SemaNonModifiableTarget); got != 1 {
		t.Fatalf("NonModifiableTarget count = %d, want 1: %+v", got, bag.Items())
	}
}

func TestMutableReturnAllowsResultAssignment(t *testing.T) {
	bag, _ := analyze(t, `
class Rational {
	int n;
	Rational operator*(const Rational &rhs) const;
};
Rational a;
Rational b;
Rational c;
(a * b) = c;
`)
	wantClean(t, bag)
}

func TestForwardingPairStripsConstOnMutableReceiver(t *testing.T) {
	bag, _ := analyze(t, `
class TextBlock {
	const char at(int i) const;
	char at(int i);
};
TextBlock tb;
tb.at(0) = 65;
`)
	wantClean(t, bag)
}

func TestForwardingPairKeepsConstOnConstReceiver(t *testing.T) {
	bag, _ := analyze(t, `
class TextBlock {
	const char at(int i) const;
	char at(int i);
};
const TextBlock ctb;
ctb.at(0) = 65;
`)
	if got := countCode(bag, diag.SemaNonModifiableTarget); got != 1 {
		t.Fatalf("NonModifiableTarget count = %d, want 1", got)
	}
}

func TestConstPropagatesInwardThroughMembers(t *testing.T) {
	bag, _ := analyze(t, `
class Point {
	int x;
};
const Point p;
p.x = 3;
`)
	if got := countCode(bag, diag.SemaNonModifiableTarget); got != 1 {
		t.Fatalf("NonModifiableTarget count = %d, want 1", got)
	}
}

func TestMutableObjectMemberWriteAllowed(t *testing.T) {
	bag, _ := analyze(t, `
class Point {
	int x;
};
Point p;
p.x = 3;
`)
	wantClean(t, bag)
}

func TestNoSuchMember(t *testing.T) {
	bag, _ := analyze(t, `
class Point {
	int x;
};
Point p;
p.y = 3;
`)
	d := firstOf(t, bag, diag.SemaNoSuchMember)
	if d.Entity != "y" {
		t.Fatalf("entity = %q, want %q", d.Entity, "y")
	}
}

func TestResultAnnotatesEveryEvaluatedNode(t *testing.T) {
	bag, res := analyze(t, `
const int x = 1;
int v = 2;
const int *p = &v;
p;
*p;
`)
	wantClean(t, bag)
	if len(res.ExprQuals) == 0 || len(res.ExprQuals) != len(res.ExprModifiable) {
		t.Fatalf("annotation maps out of step: %d quals, %d modifiable",
			len(res.ExprQuals), len(res.ExprModifiable))
	}
	sawConstValue := false
	for id, q := range res.ExprQuals {
		if q.ValueConst && !res.ExprModifiable[id] {
			sawConstValue = true
		}
	}
	if !sawConstValue {
		t.Fatalf("expected at least one const, non-modifiable annotation")
	}
}
