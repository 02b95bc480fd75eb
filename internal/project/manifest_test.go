package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"cvlint/internal/project"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFullManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[package]
name = "effective"

[check]
format = "json"
jobs = 4
max_diagnostics = 50
warnings = "error"
disk_cache = true
with_notes = true
suggest = true
`)
	cfg, err := project.Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Package.Name != "effective" {
		t.Fatalf("unexpected package name: %q", cfg.Package.Name)
	}
	check := cfg.Check
	if check.Format != "json" || check.Jobs != 4 || check.MaxDiagnostics != 50 {
		t.Fatalf("unexpected check config: %+v", check)
	}
	if check.Warnings != "error" || !check.DiskCache || !check.WithNotes || !check.Suggest {
		t.Fatalf("unexpected check config: %+v", check)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty package name", "[package]\nname = \"  \"\n"},
		{"unknown format", "[check]\nformat = \"fancy\"\n"},
		{"unknown warnings", "[check]\nwarnings = \"loud\"\n"},
		{"negative jobs", "[check]\njobs = -1\n"},
		{"negative max", "[check]\nmax_diagnostics = -5\n"},
		{"broken toml", "[check\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tc.body)
			if _, err := project.Parse(path); err == nil {
				t.Fatalf("expected an error for %q", tc.body)
			}
		})
	}
}

func TestParseEmptyManifestUsesZeroValues(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "")
	cfg, err := project.Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Check.Format != "" || cfg.Check.Jobs != 0 || cfg.Check.Warnings != "" {
		t.Fatalf("zero values expected: %+v", cfg.Check)
	}
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"effective\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, found, err := project.Find(nested)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if !found || path != filepath.Join(root, project.ManifestName) {
		t.Fatalf("Find = %q, %v", path, found)
	}
}

func TestLoadReportsRoot(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[check]\nformat = \"short\"\n")

	manifest, found, err := project.Load(root)
	if err != nil || !found {
		t.Fatalf("Load = %v, %v", found, err)
	}
	if manifest.Root != root {
		t.Fatalf("Root = %q, want %q", manifest.Root, root)
	}
	if manifest.Config.Check.Format != "short" {
		t.Fatalf("unexpected config: %+v", manifest.Config.Check)
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	manifest, found, err := project.Load(t.TempDir())
	if err != nil {
		t.Fatalf("missing manifest must not error: %v", err)
	}
	if found || manifest != nil {
		t.Fatalf("unexpected manifest: %+v", manifest)
	}
}
