package parser

import (
	"fmt"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
	"pixelwalle/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind == token.EOF {
		return tok
	}
	p.pos++
	if p.pos > p.far {
		p.far = p.pos
	}
	p.lastSpan = tok.Span
	return tok
}

// getDiagnosticSpan — возвращает лучший span для диагностики.
// На конце строки или файла указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.IsTerminator() && p.lastSpan.End > 0 {
		return p.lastSpan.AtEnd()
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (peek,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return p.peek(), false
}

// expectEnd requires the statement to stop here. EOF is left in place.
func (p *Parser) expectEnd() bool {
	switch p.peek().Kind {
	case token.NewLine:
		p.advance()
		return true
	case token.EOF:
		return true
	}
	p.err(diag.SynExpectNewLine, fmt.Sprintf("Expected end of line, found %s.", describe(p.peek())))
	return false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.errAt(code, p.getDiagnosticSpan(), msg)
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) bool {
	if p.sink == nil {
		return p.report(code, diag.SevError, sp, msg)
	}
	p.sink.Report(code, diag.SevError, sp, msg, nil, nil)
	return true
}

// report пишет напрямую в Options.Reporter и считает ошибки.
func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
		if p.opts.MaxErrors != 0 && p.opts.CurrentErrors > p.opts.MaxErrors {
			return false // достигли максимального количества ошибок
		}
	}
	if p.opts.Reporter == nil {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	return true
}

// commit переносит диагностику удачной (или лучшей) попытки в Reporter.
func (p *Parser) commit(buf *diag.BufferReporter) {
	for _, d := range buf.Items() {
		p.report(d.Code, d.Severity, d.Primary, d.Message)
	}
	buf.Reset()
}

// describe renders a token for messages.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.NewLine:
		return "end of line"
	case token.EOF:
		return "end of input"
	case token.StringLit:
		return fmt.Sprintf("%q", tok.Text)
	default:
		return "'" + tok.Text + "'"
	}
}
