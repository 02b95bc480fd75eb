package diag

import (
	"cvlint/internal/source"
)

// Note is a secondary span with extra context ("declared here").
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is a single text replacement inside a fix suggestion.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is an advisory rewrite. The analyzer only proposes; it never edits
// input.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is one finding produced by a phase.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	// Entity names the offending declaration or member, when one exists.
	Entity  string
	Primary source.Span
	Notes   []Note
	Fixes   []Fix
}
