package diag_test

import (
	"testing"

	"cvlint/internal/diag"
	"cvlint/internal/source"
)

func at(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestBagCapDropsOverflow(t *testing.T) {
	bag := diag.NewBag(2)
	for i := 0; i < 3; i++ {
		added := bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.SemaConstViolation,
			Primary:  at(uint32(i), uint32(i)+1),
		})
		if want := i < 2; added != want {
			t.Fatalf("Add #%d returned %v", i, added)
		}
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", bag.Len())
	}
}

func TestHasErrorsAndWarnings(t *testing.T) {
	bag := diag.NewBag(8)
	if bag.HasErrors() || bag.HasWarnings() {
		t.Fatal("fresh bag reports findings")
	}

	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.SemaMultipleEvaluationHazard})
	if bag.HasErrors() {
		t.Fatal("a warning is not an error")
	}
	if !bag.HasWarnings() {
		t.Fatal("warning not seen")
	}

	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.SemaConstViolation})
	if !bag.HasErrors() {
		t.Fatal("error not seen")
	}
}

func TestSortOrdersBySpanThenSeverity(t *testing.T) {
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.SemaNoViableOverload, Primary: at(20, 25)})
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.SemaMultipleEvaluationHazard, Primary: at(5, 9)})
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.SemaConstViolation, Primary: at(5, 9)})

	bag.Sort()
	items := bag.Items()
	if items[0].Code != diag.SemaConstViolation {
		t.Fatalf("errors must precede warnings on the same span, got %v", items[0].Code)
	}
	if items[1].Code != diag.SemaMultipleEvaluationHazard {
		t.Fatalf("unexpected second item: %v", items[1].Code)
	}
	if items[2].Code != diag.SemaNoViableOverload {
		t.Fatalf("later span must sort last, got %v", items[2].Code)
	}
}

func TestDedupCollapsesExactRepeats(t *testing.T) {
	bag := diag.NewBag(8)
	d := diag.Diagnostic{Severity: diag.SevError, Code: diag.SemaConstViolation, Primary: at(3, 7), Message: "cannot assign to const object cx"}
	bag.Add(d)
	bag.Add(d)
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.SemaConstViolation, Primary: at(9, 12), Message: "cannot assign to const object cy"})

	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 after dedup, got %d: %v", bag.Len(), bag.Items())
	}
}

func TestDedupKeepsDistinctMessagesAtOneSpan(t *testing.T) {
	bag := diag.NewBag(8)
	d := diag.Diagnostic{Severity: diag.SevError, Code: diag.SemaIllegalConstantPlacement, Primary: at(3, 7)}
	d.Message = "in-class initializer is not allowed for non-integral constant C::K"
	bag.Add(d)
	d.Message = "class constant C::K requires an out-of-class definition"
	bag.Add(d)

	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("distinct verdicts at one span must both survive, got %d", bag.Len())
	}
}

func TestBagCapBeyondUint16Range(t *testing.T) {
	// Directory runs scale the cap by file count; it must not wrap.
	bag := diag.NewBag(70000)
	if bag.Cap() != 70000 {
		t.Fatalf("cap narrowed: %d", bag.Cap())
	}
}

func TestMergeGrowsCap(t *testing.T) {
	a := diag.NewBag(1)
	a.Add(diag.Diagnostic{Code: diag.SemaConstViolation, Primary: at(0, 1)})
	b := diag.NewBag(2)
	b.Add(diag.Diagnostic{Code: diag.SemaNoViableOverload, Primary: at(2, 3)})
	b.Add(diag.Diagnostic{Code: diag.SemaUnresolvedName, Primary: at(4, 5)})

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("expected 3 after merge, got %d", a.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	cases := []struct {
		code diag.Code
		want string
	}{
		{diag.LexUnknownChar, "LEX1001"},
		{diag.SynExpectSemicolon, "SYN2002"},
		{diag.SemaNonModifiableTarget, "SEM3002"},
		{diag.UnknownCode, "E0000"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Errorf("ID(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestReportBuilderIsNilSafe(t *testing.T) {
	var b *diag.ReportBuilder
	b.WithEntity("x").WithNote(at(0, 1), "note").WithFix("title").Emit()
	// No panic is the assertion.
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := diag.NewBag(8)
	b := diag.ReportError(diag.BagReporter{Bag: bag}, diag.SemaConstViolation, at(0, 3), "boom").
		WithEntity("TextBlock::get")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected a single emission, got %d", bag.Len())
	}
	if got := bag.Items()[0].Entity; got != "TextBlock::get" {
		t.Fatalf("entity lost: %q", got)
	}
}
