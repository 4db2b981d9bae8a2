package lexer_test

import (
	"strings"
	"testing"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/lexer"
	"pixelwalle/internal/source"
	"pixelwalle/internal/token"
)

// makeTestLexer creates a lexer over input and a buffer for its warnings.
func makeTestLexer(input string) (*lexer.Lexer, *diag.BufferReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.pw", []byte(input))
	reporter := &diag.BufferReporter{}
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter}), reporter
}

// collectAllTokens reads tokens up to and including EOF.
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, _ := makeTestLexer(input)
	toks := collectAllTokens(lx)
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
	return toks
}

func TestOperatorsGreedy(t *testing.T) {
	tests := []struct {
		in   string
		want []token.Kind
	}{
		{"**", []token.Kind{token.StarStar}},
		{"***", []token.Kind{token.StarStar, token.Star}},
		{"<-", []token.Kind{token.LArrow}},
		{"<=", []token.Kind{token.LtEq}},
		{"< -", []token.Kind{token.Lt, token.Minus}},
		{">= >", []token.Kind{token.GtEq, token.Gt}},
		{"== != !", []token.Kind{token.EqEq, token.BangEq, token.Bang}},
		{"&& ||", []token.Kind{token.AndAnd, token.OrOr}},
		{"+-*/%", []token.Kind{token.Plus, token.Minus, token.Star, token.Slash, token.Percent}},
		{"()[],", []token.Kind{token.LParen, token.RParen, token.LBracket, token.RBracket, token.Comma}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			expectKinds(t, tt.in, tt.want...)
		})
	}
}

func TestStatements(t *testing.T) {
	toks := expectKinds(t, "n <- 5\nGoTo[loop](n >= 1)\n",
		token.Ident, token.LArrow, token.IntLit, token.NewLine,
		token.KwGoto, token.LBracket, token.Ident, token.RBracket,
		token.LParen, token.Ident, token.GtEq, token.IntLit, token.RParen, token.NewLine)

	if toks[2].Text != "5" || toks[6].Text != "loop" {
		t.Errorf("texts: %q %q", toks[2].Text, toks[6].Text)
	}
	if toks[3].Text != "\n" {
		t.Errorf("newline text = %q", toks[3].Text)
	}
	if c := toks[4].Coord; c.Row != 2 || c.Col != 1 || c.Length != 4 {
		t.Errorf("GoTo coord = %+v", c)
	}
}

func TestKeywordsAndBooleans(t *testing.T) {
	toks := expectKinds(t, "goto Goto GoTo GOTO true false True",
		token.KwGoto, token.KwGoto, token.KwGoto, token.Ident, token.BoolLit, token.BoolLit, token.Ident)
	if toks[4].Text != "true" || toks[5].Text != "false" {
		t.Errorf("bool texts %q %q", toks[4].Text, toks[5].Text)
	}
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		in   string
		want []token.Kind
		text string
	}{
		{"loop-end", []token.Kind{token.Ident}, "loop-end"},
		{"a_b1", []token.Kind{token.Ident}, "a_b1"},
		{"año", []token.Kind{token.Ident}, "año"},
		// '-' and digits cannot start an identifier
		{"-x", []token.Kind{token.Minus, token.Ident}, "-"},
		{"9lives", []token.Kind{token.IntLit, token.Ident}, "9"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			toks := expectKinds(t, tt.in, tt.want...)
			if toks[0].Text != tt.text {
				t.Fatalf("first text = %q, want %q", toks[0].Text, tt.text)
			}
		})
	}

	// '_' cannot start an identifier either
	lx, rep := makeTestLexer("_x")
	toks := collectAllTokens(lx)
	if len(toks) != 2 || toks[0].Text != "x" || rep.Len() != 1 {
		t.Fatalf("_x: toks=%v warnings=%d", kinds(toks), rep.Len())
	}
}

func TestStringLiteral(t *testing.T) {
	toks := expectKinds(t, `Color("Red")`, token.Ident, token.LParen, token.StringLit, token.RParen)
	s := toks[2]
	if s.Text != "Red" {
		t.Errorf("Text = %q", s.Text)
	}
	// length counts both quotes
	if s.Coord.Length != uint32(len("Red")+2) || s.Coord.Col != 7 {
		t.Errorf("Coord = %+v", s.Coord)
	}

	toks = expectKinds(t, `""`, token.StringLit)
	if toks[0].Text != "" || toks[0].Coord.Length != 2 {
		t.Errorf("empty string: %+v", toks[0])
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, rep := makeTestLexer("\"abc\nx")
	toks := collectAllTokens(lx)
	want := []token.Kind{token.Ident, token.NewLine, token.Ident, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if rep.Len() != 1 || rep.Items()[0].Message != `Invalid character '"'.` {
		t.Fatalf("warnings = %+v", rep.Items())
	}
}

func TestNewLines(t *testing.T) {
	toks := expectKinds(t, "a\r\nb\n\nc", token.Ident, token.NewLine, token.Ident, token.NewLine, token.NewLine, token.Ident)
	if toks[1].Text != "\n" || toks[1].Span.Len() != 2 {
		t.Errorf("CRLF token = %+v", toks[1])
	}
	if c := toks[5].Coord; c.Row != 4 || c.Col != 1 {
		t.Errorf("c coord = %+v", c)
	}
}

func TestInvalidCharacters(t *testing.T) {
	tests := []struct {
		in       string
		warnings []string
		want     []token.Kind
	}{
		{"\tx", []string{"Invalid character '\t'."}, []token.Kind{token.Ident}},
		{"a = b", []string{"Invalid character '='."}, []token.Kind{token.Ident, token.Ident}},
		{"x\ry", []string{"Invalid character '\r'."}, []token.Kind{token.Ident, token.Ident}},
		{"& | # ;", []string{
			"Invalid character '&'.", "Invalid character '|'.",
			"Invalid character '#'.", "Invalid character ';'.",
		}, nil},
		{"€", []string{"Invalid character '€'."}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.in)
			toks := collectAllTokens(lx)
			got := kinds(toks[:len(toks)-1])
			if len(got) != len(tt.want) {
				t.Fatalf("kinds = %v, want %v", got, tt.want)
			}
			if rep.Len() != len(tt.warnings) {
				t.Fatalf("got %d warnings, want %d", rep.Len(), len(tt.warnings))
			}
			for i, d := range rep.Items() {
				if d.Severity != diag.SevWarning || d.Code != diag.LexInvalidChar {
					t.Errorf("warning %d: %v %v", i, d.Severity, d.Code)
				}
				if d.Message != tt.warnings[i] {
					t.Errorf("warning %d = %q, want %q", i, d.Message, tt.warnings[i])
				}
			}
		})
	}
}

func TestEOF(t *testing.T) {
	lx, _ := makeTestLexer("x   ")
	toks := collectAllTokens(lx)
	eof := toks[len(toks)-1]
	if eof.Text != lexer.EOFText || !eof.Span.Empty() || eof.Span.Start != 4 {
		t.Fatalf("EOF = %+v", eof)
	}
	if eof.Coord.Col != 5 || eof.Coord.Row != 1 {
		t.Fatalf("EOF coord = %+v", eof.Coord)
	}
	if again := lx.Next(); again.Kind != token.EOF {
		t.Fatalf("Next after EOF = %v", again.Kind)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second Next = %q", n.Text)
	}
}

// relex joins token spellings with single spaces.
func relex(toks []token.Token) string {
	var b strings.Builder
	for _, t := range toks {
		switch t.Kind {
		case token.EOF:
			continue
		case token.StringLit:
			b.WriteString(`"` + t.Text + `"`)
		default:
			b.WriteString(t.Text)
		}
		b.WriteByte(' ')
	}
	return b.String()
}

func FuzzScan(f *testing.F) {
	seeds := []string{
		"",
		"x <- 1 + 2 ** 3\n",
		"Spawn(0, 0)\nColor(\"Red\")\nloop\nGoTo[loop](GetActualX() < 10)\n",
		"\"unterminated\n",
		"a\tb\r\nc == !d && e || f",
		"€ @ # $ ^ ~",
		"1234567890123456789012345",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		fs := source.NewFileSet()
		id := fs.AddVirtual("fuzz.pw", []byte(input))
		rep := &diag.BufferReporter{}
		toks := lexer.Scan(fs.Get(id), lexer.Options{Reporter: rep})

		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("stream does not end with EOF: %v", kinds(toks))
		}
		for _, tok := range toks[:len(toks)-1] {
			if tok.Kind == token.EOF || tok.Kind == token.Invalid {
				t.Fatalf("unexpected %v inside the stream", tok.Kind)
			}
		}
		for _, d := range rep.Items() {
			if d.Severity != diag.SevWarning || d.Primary.Empty() {
				t.Fatalf("bad lexer diagnostic %+v", d)
			}
		}

		// re-lexing the spelled-out stream yields the same kinds
		id2 := fs.AddVirtual("relex.pw", []byte(relex(toks)))
		again := lexer.Scan(fs.Get(id2), lexer.Options{})
		a, b := kinds(toks), kinds(again)
		if len(a) != len(b) {
			t.Fatalf("relex changed length: %v vs %v", a, b)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("relex changed token %d: %v vs %v", i, a[i], b[i])
			}
		}
	})
}
