package lexer

import (
	"cvlint/internal/diag"
	"cvlint/internal/source"
)

// Options configure a Lexer.
type Options struct {
	// Reporter may be nil; scanning continues either way.
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
