// Package project locates and parses the cvlint.toml manifest, which seeds
// check defaults that command-line flags override.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the upward search looks for.
const ManifestName = "cvlint.toml"

// Manifest is a located and parsed cvlint.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest layout.
type Config struct {
	Package PackageConfig `toml:"package"`
	Check   CheckConfig   `toml:"check"`
}

// PackageConfig names the checked project.
type PackageConfig struct {
	Name string `toml:"name"`
}

// CheckConfig carries check defaults. Zero values mean "not set"; the CLI
// keeps its own defaults for those.
type CheckConfig struct {
	Format         string `toml:"format"`
	Jobs           int    `toml:"jobs"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	// Warnings is one of "default", "ignore", "error".
	Warnings  string `toml:"warnings"`
	DiskCache bool   `toml:"disk_cache"`
	WithNotes bool   `toml:"with_notes"`
	Suggest   bool   `toml:"suggest"`
}

// Find walks from startDir to the filesystem root looking for the manifest.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the manifest governing startDir. The second return
// is false when no manifest exists, which is not an error.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Parse(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// Parse reads and validates one manifest file.
func Parse(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: parse TOML: %w", path, err)
	}
	if meta.IsDefined("package", "name") && strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: [package].name must not be empty", path)
	}
	if meta.IsDefined("check", "format") {
		switch cfg.Check.Format {
		case "pretty", "json", "short":
		default:
			return Config{}, fmt.Errorf("%s: [check].format must be pretty, json or short", path)
		}
	}
	if meta.IsDefined("check", "warnings") {
		switch cfg.Check.Warnings {
		case "default", "ignore", "error":
		default:
			return Config{}, fmt.Errorf("%s: [check].warnings must be default, ignore or error", path)
		}
	}
	if cfg.Check.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [check].max_diagnostics must not be negative", path)
	}
	return cfg, nil
}
