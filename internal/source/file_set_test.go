package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"cvlint/internal/source"
)

func TestAddVirtualAssignsSequentialIDs(t *testing.T) {
	fs := source.NewFileSet()

	a := fs.AddVirtual("a.cd", []byte("int x;\n"))
	b := fs.AddVirtual("b.cd", []byte("int y;\n"))

	if a == b {
		t.Fatalf("expected distinct file IDs, got %d twice", a)
	}
	if fs.Len() != 2 {
		t.Fatalf("expected 2 files, got %d", fs.Len())
	}
	if got := fs.Get(a).Path; got != "a.cd" {
		t.Fatalf("unexpected path for first file: %q", got)
	}
}

func TestReAddingPathKeepsLatestInIndex(t *testing.T) {
	fs := source.NewFileSet()

	first := fs.AddVirtual("unit.cd", []byte("int x;\n"))
	second := fs.AddVirtual("unit.cd", []byte("int y;\n"))

	latest, ok := fs.GetLatest("unit.cd")
	if !ok {
		t.Fatal("expected unit.cd in the index")
	}
	if latest != second {
		t.Fatalf("expected latest ID %d, got %d", second, latest)
	}
	// The old version stays addressable by ID.
	if string(fs.Get(first).Content) != "int x;\n" {
		t.Fatalf("first version content changed: %q", fs.Get(first).Content)
	}
}

func TestResolveSpansAcrossLines(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("unit.cd", []byte("int x;\nint y;\n"))

	// "y" sits at offset 11, line 2 col 5.
	start, end := fs.Resolve(source.Span{File: id, Start: 11, End: 12})
	if start.Line != 2 || start.Col != 5 {
		t.Fatalf("unexpected start position: %+v", start)
	}
	if end.Line != 2 || end.Col != 6 {
		t.Fatalf("unexpected end position: %+v", end)
	}
}

func TestResolveSingleLineFile(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("unit.cd", []byte("int x;"))

	start, _ := fs.Resolve(source.Span{File: id, Start: 4, End: 5})
	if start.Line != 1 || start.Col != 5 {
		t.Fatalf("unexpected position: %+v", start)
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unit.cd")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("int x;\r\nint y;\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	f := fs.Get(id)
	if string(f.Content) != "int x;\nint y;\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	if f.Flags&source.FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if f.Flags&source.FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
}

func TestGetLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("unit.cd", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Errorf("GetLine(%d) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestDisplayPathRelativeToBase(t *testing.T) {
	f := &source.File{Path: "/work/project/src/unit.cd"}

	if got := f.DisplayPath("/work/project"); got != "src/unit.cd" {
		t.Fatalf("expected relative path, got %q", got)
	}
	if got := f.DisplayPath("/elsewhere/deep/nested"); got != f.Path {
		t.Fatalf("expected stored path for unrelated base, got %q", got)
	}
	if got := f.DisplayPath(""); got != f.Path {
		t.Fatalf("expected stored path for empty base, got %q", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := source.Span{File: 0, Start: 4, End: 8}
	b := source.Span{File: 0, Start: 2, End: 6}

	c := a.Cover(b)
	if c.Start != 2 || c.End != 8 {
		t.Fatalf("unexpected cover: %+v", c)
	}

	other := source.Span{File: 1, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("cross-file cover must be a no-op, got %+v", got)
	}
}
