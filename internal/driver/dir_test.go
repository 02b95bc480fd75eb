package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cvlint/internal/diag"
	"cvlint/internal/driver"
)

func TestAnalyzeDirResultsInPathOrder(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "b.cd", "const int cx = 5;\ncx = 10;\n")
	writeUnit(t, dir, "a.cd", "const int x = 1;\n")
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeUnit(t, sub, "c.cd", "int y;\ny = 3;\n")
	writeUnit(t, dir, "ignored.txt", "not a unit")

	fileSet, results, err := driver.AnalyzeDir(context.Background(), dir, driver.Options{Stage: driver.StageAll}, 2)
	if err != nil {
		t.Fatalf("AnalyzeDir failed: %v", err)
	}
	if fileSet == nil {
		t.Fatal("file set missing")
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 units, got %d", len(results))
	}

	wantOrder := []string{
		filepath.Join(dir, "a.cd"),
		filepath.Join(dir, "b.cd"),
		filepath.Join(sub, "c.cd"),
	}
	for i, r := range results {
		if r.Path != wantOrder[i] {
			t.Fatalf("result %d at %q, want %q", i, r.Path, wantOrder[i])
		}
		if r.LoadErr != nil {
			t.Fatalf("unexpected load error for %s: %v", r.Path, r.LoadErr)
		}
	}

	if results[0].Result.Bag.Len() != 0 {
		t.Fatalf("a.cd must be clean: %v", results[0].Result.Bag.Items())
	}
	if results[1].Result.Bag.Len() != 1 {
		t.Fatalf("b.cd must report once: %v", results[1].Result.Bag.Items())
	}
}

func TestAnalyzeDirIsolatesUnits(t *testing.T) {
	// The same name declared in two units is not a duplicate; each unit
	// gets its own declaration table.
	dir := t.TempDir()
	writeUnit(t, dir, "a.cd", "int x;\n")
	writeUnit(t, dir, "b.cd", "int x;\n")

	_, results, err := driver.AnalyzeDir(context.Background(), dir, driver.Options{Stage: driver.StageAll}, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if r.Result.Bag.Len() != 0 {
			t.Fatalf("%s reported %v", r.Path, r.Result.Bag.Items())
		}
	}
}

func TestAnalyzeDirEmpty(t *testing.T) {
	fileSet, results, err := driver.AnalyzeDir(context.Background(), t.TempDir(), driver.Options{Stage: driver.StageAll}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if fileSet == nil || len(results) != 0 {
		t.Fatalf("expected an empty run, got %d results", len(results))
	}
}

func TestMergeBagsSortsAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "a.cd", "const int a = 1;\na = 2;\n")
	writeUnit(t, dir, "b.cd", "const int b = 1;\nb = 2;\n")

	_, results, err := driver.AnalyzeDir(context.Background(), dir, driver.Options{Stage: driver.StageAll}, 1)
	if err != nil {
		t.Fatal(err)
	}

	merged := driver.MergeBags(results, 0)
	if merged.Len() != 2 {
		t.Fatalf("expected 2 merged diagnostics, got %v", merged.Items())
	}
	first, second := merged.Items()[0], merged.Items()[1]
	if first.Primary.File > second.Primary.File {
		t.Fatalf("merged bag not sorted by file: %+v then %+v", first.Primary, second.Primary)
	}
	for _, d := range merged.Items() {
		if d.Code != diag.SemaNonModifiableTarget {
			t.Fatalf("unexpected code: %v", d.Code)
		}
	}
}
