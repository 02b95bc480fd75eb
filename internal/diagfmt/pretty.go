package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cvlint/internal/diag"
	"cvlint/internal/source"
)

// Pretty renders each diagnostic as a header line
//
//	<path>:<line>:<col>: <SEVERITY> <CODE>: <message>
//
// followed by the offending source line with a caret underline covering the
// primary span. Notes and fix suggestions follow, indented, when enabled.
// The bag is expected to be sorted.
func Pretty(w io.Writer, bag *diag.Bag, fileSet *source.FileSet, opts PrettyOpts) {
	if bag == nil || fileSet == nil {
		return
	}
	p := prettyPrinter{w: w, fileSet: fileSet, opts: opts}
	for _, d := range bag.Items() {
		p.printDiagnostic(d)
	}
}

type prettyPrinter struct {
	w       io.Writer
	fileSet *source.FileSet
	opts    PrettyOpts
}

func (p *prettyPrinter) printDiagnostic(d diag.Diagnostic) {
	start, end := p.fileSet.Resolve(d.Primary)
	path := p.displayPath(d.Primary.File)

	fmt.Fprintf(p.w, "%s:%d:%d: %s %s: %s\n",
		path, start.Line, start.Col,
		p.severityLabel(d.Severity), d.Code.ID(), d.Message)

	p.printUnderline(d.Primary, start, end, d.Severity)

	if p.opts.ShowNotes {
		for _, note := range d.Notes {
			ns, _ := p.fileSet.Resolve(note.Span)
			fmt.Fprintf(p.w, "  %s: %s:%d:%d: %s\n",
				p.colored(color.FgCyan, "note"),
				p.displayPath(note.Span.File), ns.Line, ns.Col, note.Msg)
		}
	}
	if p.opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(p.w, "  %s: %s\n", p.colored(color.FgGreen, "fix"), fix.Title)
			for _, edit := range fix.Edits {
				for _, line := range strings.Split(edit.NewText, "\n") {
					fmt.Fprintf(p.w, "    %s\n", line)
				}
			}
		}
	}
}

// printUnderline prints the source line of the span's start with ^~~~ under
// the covered columns. Widths are measured per rune so wide characters stay
// aligned.
func (p *prettyPrinter) printUnderline(span source.Span, start, end source.LineCol, sev diag.Severity) {
	line := p.fileSet.Get(span.File).GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(p.w, "  %s\n", line)

	runes := []rune(line)
	startCol := int(start.Col)
	endCol := int(end.Col)
	if end.Line != start.Line || endCol <= startCol {
		endCol = startCol + 1
	}

	var pad strings.Builder
	for i := 0; i < startCol-1 && i < len(runes); i++ {
		if runes[i] == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(runes[i])))
	}

	width := 0
	for i := startCol - 1; i < endCol-1 && i < len(runes); i++ {
		width += runewidth.RuneWidth(runes[i])
	}
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(p.w, "  %s%s\n", pad.String(), p.severityColored(sev, marker))
}

func (p *prettyPrinter) displayPath(id source.FileID) string {
	f := p.fileSet.Get(id)
	switch p.opts.PathMode {
	case PathModeAbsolute:
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		return f.DisplayPath(p.fileSet.BaseDir())
	}
}

func (p *prettyPrinter) severityLabel(sev diag.Severity) string {
	return p.severityColored(sev, sev.String())
}

func (p *prettyPrinter) severityColored(sev diag.Severity, s string) string {
	if !p.opts.Color {
		return s
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(s)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(s)
	default:
		return color.New(color.FgCyan).Sprint(s)
	}
}

func (p *prettyPrinter) colored(attr color.Attribute, s string) string {
	if !p.opts.Color {
		return s
	}
	return color.New(attr).Sprint(s)
}
