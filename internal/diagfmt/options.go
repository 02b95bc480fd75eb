// Package diagfmt renders diagnostic bags for humans (pretty) and tools
// (json, short). Formatters never mutate the bag; callers sort it first.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto renders paths relative to the file set's base directory
	// when possible.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses the stored path.
	PathModeAbsolute
	// PathModeBasename uses the final path element only.
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
	ShowFixes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	Max              int // truncates the output, not the bag
	IncludeNotes     bool
	IncludeFixes     bool
	// IncludeAnnotations adds the per-expression qualification table when
	// the caller supplies one.
	IncludeAnnotations bool
}
