package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"pixelwalle/internal/diag"
)

const utf8RuneSelf = utf8.RuneSelf

// peekRune decodes the rune under the cursor.
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

// bumpRune advances past the rune under the cursor.
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

// invalidChar reports the rune under the cursor and skips it.
func (lx *Lexer) invalidChar() {
	start := lx.cursor.Mark()
	r, _ := lx.peekRune()
	lx.bumpRune()
	lx.warn(diag.LexInvalidChar, lx.cursor.SpanFrom(start), fmt.Sprintf("Invalid character '%c'.", r))
}

// Identifiers start with a letter and continue with letters, digits, '-' or '_'.
func isIdentStartByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b) || b == '-' || b == '_'
}

func isIdentStartRune(r rune) bool {
	return unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// try2 consumes a and b when they are the next two bytes.
func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}
