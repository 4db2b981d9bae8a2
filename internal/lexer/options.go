package lexer

import (
	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: предупреждения теряются, лексинг продолжается
}

func (lx *Lexer) warn(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevWarning, sp, msg, nil, nil)
	}
}
