package lexer

import (
	"solfmt/internal/diag"
	"solfmt/internal/source"
)

type Options struct {
	Reporter diag.Reporter // may be nil; lexing continues either way
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
