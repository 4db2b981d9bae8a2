package lexer

import (
	"pixelwalle/internal/token"
)

// scanIdent reads an identifier or keyword. It fails without consuming
// anything when the rune under the cursor cannot start an identifier.
func (lx *Lexer) scanIdent() (token.Token, bool) {
	start := lx.cursor.Mark()
	if r, _ := lx.peekRune(); !isIdentStartRune(r) {
		return token.Token{}, false
	}
	lx.bumpRune()

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	kind := token.Ident
	if kw, ok := token.LookupKeyword(text); ok {
		kind = kw
	}
	return token.Token{Kind: kind, Span: sp, Text: text}, true
}
