package lexer

import (
	"pixelwalle/internal/token"
)

// scanOperatorOrPunct matches two-byte operators before single bytes.
// It consumes nothing when the byte starts no operator.
func (lx *Lexer) scanOperatorOrPunct() (token.Token, bool) {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) (token.Token, bool) {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}, true
	}

	switch {
	case lx.try2('*', '*'):
		return emit(token.StarStar)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('<', '-'):
		return emit(token.LArrow)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('&', '&'):
		return emit(token.AndAnd)
	case lx.try2('|', '|'):
		return emit(token.OrOr)
	}

	switch lx.cursor.Peek() {
	case '+':
		lx.cursor.Bump()
		return emit(token.Plus)
	case '-':
		lx.cursor.Bump()
		return emit(token.Minus)
	case '*':
		lx.cursor.Bump()
		return emit(token.Star)
	case '/':
		lx.cursor.Bump()
		return emit(token.Slash)
	case '%':
		lx.cursor.Bump()
		return emit(token.Percent)
	case '(':
		lx.cursor.Bump()
		return emit(token.LParen)
	case ')':
		lx.cursor.Bump()
		return emit(token.RParen)
	case '[':
		lx.cursor.Bump()
		return emit(token.LBracket)
	case ']':
		lx.cursor.Bump()
		return emit(token.RBracket)
	case '<':
		lx.cursor.Bump()
		return emit(token.Lt)
	case '>':
		lx.cursor.Bump()
		return emit(token.Gt)
	case ',':
		lx.cursor.Bump()
		return emit(token.Comma)
	case '!':
		lx.cursor.Bump()
		return emit(token.Bang)
	}
	return token.Token{}, false
}
