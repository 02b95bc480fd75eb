package diag

import (
	"fmt"
	"sort"
	"strings"

	"cvlint/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics one per line in a stable order,
// suitable for golden files and for the CLI short format:
//
//	<SEVERITY> <CODE> <path>:<line>:<col> <message>
//
// Notes render as indented continuation lines when includeNotes is set.
func FormatShortDiagnostics(diags []Diagnostic, fileSet *source.FileSet, includeNotes bool) string {
	if fileSet == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	notes := make(map[shortDiagnostic][]string)
	for _, d := range diags {
		start, _ := fileSet.Resolve(d.Primary)
		entry := shortDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Path:     fileSet.Get(d.Primary.File).DisplayPath(fileSet.BaseDir()),
			Line:     start.Line,
			Column:   start.Col,
			Message:  d.Message,
		}
		rendered = append(rendered, entry)
		if includeNotes {
			for _, n := range d.Notes {
				ns, _ := fileSet.Resolve(n.Span)
				notes[entry] = append(notes[entry],
					fmt.Sprintf("  note %d:%d %s", ns.Line, ns.Col, n.Msg))
			}
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		for _, line := range notes[d] {
			b.WriteByte('\n')
			b.WriteString(line)
		}
	}
	return b.String()
}
