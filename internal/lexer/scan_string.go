package lexer

import (
	"pixelwalle/internal/token"
)

// scanString reads "..." on a single line. The span keeps both quotes,
// Text keeps only the contents. Without a closing quote on the same line
// nothing is consumed and the caller reports the quote as invalid.
func (lx *Lexer) scanString() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			sp := lx.cursor.SpanFrom(start)
			return token.Token{
				Kind: token.StringLit,
				Span: sp,
				Text: string(lx.file.Content[sp.Start+1 : sp.End-1]),
			}, true
		case '\n':
			lx.cursor.Reset(start)
			return token.Token{}, false
		}
	}
	lx.cursor.Reset(start)
	return token.Token{}, false
}
