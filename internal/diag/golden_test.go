package diag_test

import (
	"strings"
	"testing"

	"cvlint/internal/diag"
	"cvlint/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("unit.cd", []byte("const int x = 5;\nx = 10;\n"))

	diags := []diag.Diagnostic{
		{
			Severity: diag.SevError,
			Code:     diag.SemaNonModifiableTarget,
			Message:  "cannot assign to const object x",
			Primary:  source.Span{File: id, Start: 17, End: 18},
		},
		{
			Severity: diag.SevWarning,
			Code:     diag.SemaMultipleEvaluationHazard,
			Message:  "macro argument evaluated twice",
			Primary:  source.Span{File: id, Start: 0, End: 5},
		},
	}

	got := diag.FormatShortDiagnostics(diags, fs, false)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), got)
	}
	// Output is position-sorted regardless of input order.
	if !strings.HasPrefix(lines[0], "WARNING SEM3006 unit.cd:1:1 ") {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "ERROR SEM3002 unit.cd:2:1 ") {
		t.Fatalf("unexpected second line: %q", lines[1])
	}
}

func TestFormatShortDiagnosticsIncludesNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("unit.cd", []byte("int x;\nchar *x;\n"))

	diags := []diag.Diagnostic{
		{
			Severity: diag.SevError,
			Code:     diag.SemaDuplicateDeclaration,
			Message:  "redeclaration of x",
			Primary:  source.Span{File: id, Start: 13, End: 14},
			Notes: []diag.Note{
				{Span: source.Span{File: id, Start: 4, End: 5}, Msg: "previously declared here"},
			},
		},
	}

	withNotes := diag.FormatShortDiagnostics(diags, fs, true)
	if !strings.Contains(withNotes, "\n  note 1:5 previously declared here") {
		t.Fatalf("note line missing:\n%s", withNotes)
	}
	withoutNotes := diag.FormatShortDiagnostics(diags, fs, false)
	if strings.Contains(withoutNotes, "note") {
		t.Fatalf("notes must be opt-in:\n%s", withoutNotes)
	}
}

func TestFormatShortDiagnosticsEmptyInputs(t *testing.T) {
	fs := source.NewFileSet()
	if got := diag.FormatShortDiagnostics(nil, fs, false); got != "" {
		t.Fatalf("empty diagnostics must render empty, got %q", got)
	}
	if got := diag.FormatShortDiagnostics([]diag.Diagnostic{{}}, nil, false); got != "" {
		t.Fatalf("nil file set must render empty, got %q", got)
	}
}
