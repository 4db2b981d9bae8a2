package lexer

import (
	"pixelwalle/internal/source"
	"pixelwalle/internal/token"
)

// EOFText is the text of the end-of-input token.
const EOFText = "$"

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Scan lexes the whole file. The result always ends with exactly one EOF token.
func Scan(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/3+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	for {
		lx.skipSpaces()
		if lx.cursor.EOF() {
			return lx.finish(token.Token{
				Kind: token.EOF,
				Span: lx.emptySpan(),
				Text: EOFText,
			})
		}

		ch := lx.cursor.Peek()
		var (
			tok token.Token
			ok  bool
		)
		switch {
		case ch == '\n' || ch == '\r':
			tok, ok = lx.scanNewLine()
		case ch == '"':
			tok, ok = lx.scanString()
		case isDec(ch):
			tok, ok = lx.scanNumber(), true
		case isIdentStartByte(ch) || ch >= utf8RuneSelf:
			tok, ok = lx.scanIdent()
		default:
			tok, ok = lx.scanOperatorOrPunct()
		}
		if ok {
			return lx.finish(tok)
		}
		lx.invalidChar()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) finish(tok token.Token) token.Token {
	tok.Coord = lx.file.Coord(tok.Span)
	return tok
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// skipSpaces skips ' ' only; tabs are invalid characters.
func (lx *Lexer) skipSpaces() {
	for lx.cursor.Eat(' ') {
	}
}

func (lx *Lexer) scanNewLine() (token.Token, bool) {
	start := lx.cursor.Mark()
	if lx.cursor.Eat('\n') || lx.try2('\r', '\n') {
		return token.Token{Kind: token.NewLine, Span: lx.cursor.SpanFrom(start), Text: "\n"}, true
	}
	return token.Token{}, false
}
