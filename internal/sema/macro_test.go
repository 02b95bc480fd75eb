package sema_test

import (
	"strings"
	"testing"

	"cvlint/internal/diag"
)

func TestMacroDoubleEvaluationFlagged(t *testing.T) {
	bag, _ := analyze(t, `#define CALL_WITH_MAX(a, b) f((a) > (b) ? (a) : (b));
`)
	d := firstOf(t, bag, diag.SemaMultipleEvaluationHazard)
	if d.Severity != diag.SevWarning {
		t.Fatalf("severity = %v, want warning", d.Severity)
	}
	if d.Entity != "CALL_WITH_MAX" {
		t.Fatalf("entity = %q", d.Entity)
	}
	if len(d.Fixes) == 0 {
		t.Fatalf("expected a rewrite suggestion")
	}
	fix := d.Fixes[0]
	if len(fix.Edits) == 0 || !strings.Contains(fix.Edits[0].NewText, "template <typename T>") {
		t.Fatalf("fix does not propose a function template: %+v", fix)
	}
	if !strings.Contains(fix.Edits[0].NewText, "inline T CALL_WITH_MAX(const T &a, const T &b)") {
		t.Fatalf("fix signature = %+v", fix.Edits[0].NewText)
	}
}

func TestMacroEveryHazardousParameterFlagged(t *testing.T) {
	bag, _ := analyze(t, `#define SUM(a, b) ((a) + (a) + (b) + (b));
`)
	if got := countCode(bag, diag.SemaMultipleEvaluationHazard); got != 2 {
		t.Fatalf("MultipleEvaluationHazard count = %d, want 2: %+v", got, bag.Items())
	}
	var withFix, mentionsB int
	for _, d := range bag.Items() {
		if d.Code != diag.SemaMultipleEvaluationHazard {
			continue
		}
		if len(d.Fixes) > 0 {
			withFix++
		}
		if strings.Contains(d.Message, "parameter b") {
			mentionsB++
		}
	}
	if mentionsB != 1 {
		t.Fatalf("second parameter not reported: %+v", bag.Items())
	}
	// One rewrite covers the whole macro.
	if withFix != 1 {
		t.Fatalf("rewrite suggestion attached %d times, want 1", withFix)
	}
}

func TestMacroSingleEvaluationClean(t *testing.T) {
	bag, _ := analyze(t, `#define HALF(x) ((x) / 2);
`)
	if got := countCode(bag, diag.SemaMultipleEvaluationHazard); got != 0 {
		t.Fatalf("MultipleEvaluationHazard count = %d, want 0: %+v", got, bag.Items())
	}
	if got := countCode(bag, diag.SemaMacroPrecedenceHazard); got != 0 {
		t.Fatalf("MacroPrecedenceHazard count = %d, want 0", got)
	}
}

func TestTernaryBranchesCountAsAlternatives(t *testing.T) {
	// Each branch mentions a different parameter once; neither is
	// evaluated twice on any path.
	bag, _ := analyze(t, `#define PICK(a, b) ((a) > 0 ? (a) : (b));
`)
	// a: once in the condition plus once in the then-branch.
	d := firstOf(t, bag, diag.SemaMultipleEvaluationHazard)
	if !strings.Contains(d.Message, "2 times") {
		t.Fatalf("message = %q", d.Message)
	}
}

func TestMacroBareBodyPrecedenceHazard(t *testing.T) {
	bag, _ := analyze(t, `#define PLUS_ONE(x) x + 1;
`)
	if got := countCode(bag, diag.SemaMacroPrecedenceHazard); got != 1 {
		t.Fatalf("MacroPrecedenceHazard count = %d, want 1: %+v", got, bag.Items())
	}
}

func TestMacroUnparenthesizedParamPrecedenceHazard(t *testing.T) {
	bag, _ := analyze(t, `#define DOUBLE_BAD(x) (x * 2);
`)
	if got := countCode(bag, diag.SemaMacroPrecedenceHazard); got != 1 {
		t.Fatalf("MacroPrecedenceHazard count = %d, want 1: %+v", got, bag.Items())
	}
}

func TestMacroCallSiteArityChecked(t *testing.T) {
	bag, _ := analyze(t, `#define HALF(x) ((x) / 2);
HALF(1, 2);
`)
	if got := countCode(bag, diag.SemaNoViableOverload); got != 1 {
		t.Fatalf("NoViableOverload count = %d, want 1", got)
	}
}

func TestMacroCallSiteWithSideEffectArgumentStillParses(t *testing.T) {
	bag, _ := analyze(t, `#define TWICE(x) ((x) + (x));
int i = 0;
TWICE(i++);
`)
	// The hazard attaches to the definition; the call site itself is fine.
	if got := countCode(bag, diag.SemaMultipleEvaluationHazard); got != 1 {
		t.Fatalf("MultipleEvaluationHazard count = %d, want 1: %+v", got, bag.Items())
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
}
