package token

import (
	"pixelwalle/internal/source"
)

// Token is a single lexeme with its byte span and character coordinates.
type Token struct {
	Kind  Kind
	Span  source.Span
	Coord source.Coord
	Text  string
}

// IsLiteral reports whether the token is an integer, boolean or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, BoolLit, StringLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= OrOr
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind == KwGoto }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsTerminator reports whether the token ends a statement line.
func (t Token) IsTerminator() bool { return t.Kind == NewLine || t.Kind == EOF }
