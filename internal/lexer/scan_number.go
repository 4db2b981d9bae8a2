package lexer

import (
	"pixelwalle/internal/token"
)

// scanNumber reads a maximal run of decimal digits. Range checking is
// left to the parser, which owns literal conversion.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
