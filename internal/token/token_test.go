package token_test

import (
	"testing"

	"pixelwalle/internal/source"
	"pixelwalle/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.IntLit, token.BoolLit, token.StringLit} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwGoto, token.Plus, token.NewLine} {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Plus, token.Minus, token.Star, token.StarStar, token.Slash, token.Percent,
		token.LParen, token.RParen, token.LBracket, token.RBracket,
		token.Lt, token.LtEq, token.LArrow, token.Gt, token.GtEq, token.EqEq,
		token.Comma, token.Bang, token.BangEq, token.AndAnd, token.OrOr,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
		if tok(k).Kind.Lexeme() == k.String() {
			t.Fatalf("%v has no lexeme", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwGoto, token.IntLit, token.EOF} {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestTerminator(t *testing.T) {
	if !tok(token.NewLine).IsTerminator() || !tok(token.EOF).IsTerminator() {
		t.Fatal("NewLine and EOF terminate statements")
	}
	if tok(token.RParen).IsTerminator() {
		t.Fatal("RParen is not a terminator")
	}
}

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"goto":  token.KwGoto,
		"Goto":  token.KwGoto,
		"GoTo":  token.KwGoto,
		"true":  token.BoolLit,
		"false": token.BoolLit,
	}
	for lexeme, want := range cases {
		got, ok := token.LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v, want %v", lexeme, got, ok, want)
		}
	}
	// регистр важен
	for _, s := range []string{"GOTO", "gOto", "True", "FALSE", "Spawn"} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true", s)
		}
	}
}
