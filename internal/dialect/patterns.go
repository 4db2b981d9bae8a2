package dialect

import (
	"fmt"
	"strings"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
)

// word is an identifier-like run outside string literals; offsets are byte
// positions within the line.
type word struct {
	text       string
	start, end int
}

type line struct {
	file  *source.File
	base  uint32
	text  string
	code  []bool // false inside string literals
	first int    // first non-blank byte, -1 for a blank line
	last  int    // last non-blank byte
	body  int    // last non-blank byte before a trailing ';'
}

func newLine(file *source.File, row uint32) line {
	ln := line{file: file, base: lineStart(file, row), text: file.GetLine(row), first: -1, last: -1}
	ln.code = make([]bool, len(ln.text))
	inString := false
	for i := 0; i < len(ln.text); i++ {
		c := ln.text[i]
		if c == '"' {
			inString = !inString
			continue
		}
		ln.code[i] = !inString
		if c != ' ' && c != '\t' {
			if ln.first < 0 {
				ln.first = i
			}
			ln.last = i
		}
	}
	ln.body = ln.last
	if ln.last >= 0 && ln.code[ln.last] && ln.text[ln.last] == ';' {
		ln.body = ln.last - 1
		for ln.body >= 0 && (ln.text[ln.body] == ' ' || ln.text[ln.body] == '\t') {
			ln.body--
		}
	}
	return ln
}

func lineStart(file *source.File, row uint32) uint32 {
	if row <= 1 || int(row-2) >= len(file.LineIdx) {
		return 0
	}
	return file.LineIdx[row-2] + 1
}

func (ln line) span(i, j int) source.Span {
	return source.Span{File: ln.file.ID, Start: ln.base + uint32(i), End: ln.base + uint32(j)} //nolint:gosec // i, j index one line
}

func (ln line) hasPrefixAt(i int, s string) bool {
	return i >= 0 && i < len(ln.code) && ln.code[i] && strings.HasPrefix(ln.text[i:], s)
}

func (ln line) skipBlank(i int) int {
	for i < len(ln.text) && (ln.text[i] == ' ' || ln.text[i] == '\t') {
		i++
	}
	return i
}

func (ln line) words() []word {
	var out []word
	for i := 0; i < len(ln.text); {
		if !ln.code[i] || !isWordStart(ln.text[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(ln.text) && isWordPart(ln.text[j]) {
			j++
		}
		out = append(out, word{text: ln.text[i:j], start: i, end: j})
		i = j
	}
	return out
}

func isWordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordPart(c byte) bool {
	return isWordStart(c) || (c >= '0' && c <= '9')
}

var compoundOps = []string{"+=", "-=", "*=", "/=", "%="}

// ObserveLine records evidence for one rejected line (1-based row).
func ObserveLine(e *Evidence, file *source.File, row uint32) {
	if e == nil || file == nil {
		return
	}
	ln := newLine(file, row)
	if ln.first < 0 {
		return
	}

	// comments
	switch {
	case ln.hasPrefixAt(ln.first, "#"):
		e.Add(Hint{Dialect: Python, Shape: ShapeComment, Score: 3, Reason: "a `#` comment", Span: ln.span(ln.first, ln.last+1)})
		return
	case ln.hasPrefixAt(ln.first, "//"):
		e.Add(Hint{Dialect: CFamily, Shape: ShapeComment, Score: 3, Reason: "a `//` comment", Span: ln.span(ln.first, ln.last+1)})
		return
	}

	words := ln.words()
	for i, w := range words {
		RecordIdent(e, w.text, ln.span(w.start, w.end), i == 0 && w.start == ln.first)
	}

	if len(words) > 0 && words[0].start == ln.first {
		observeAssignment(e, ln, words[0])
	}

	if ln.hasPrefixAt(ln.last, ";") {
		e.Add(Hint{
			Dialect: CFamily, Shape: ShapeSemicolon, Score: 3, Reason: "a trailing `;`",
			Span:  ln.span(ln.last, ln.last+1),
			Edits: []diag.FixEdit{{Span: ln.span(ln.last, ln.last+1), NewText: ""}},
		})
	}

	for i := ln.first; i <= ln.last; i++ {
		if ln.code[i] && (ln.text[i] == '{' || ln.text[i] == '}') {
			e.Add(Hint{
				Dialect: CFamily, Shape: ShapeBraces, Score: 3, Reason: "a `" + string(ln.text[i]) + "` block",
				Span: ln.span(i, i+1), Example: "GoTo[label](condition)",
			})
			break
		}
	}

	if ln.hasPrefixAt(ln.last, ":") && len(words) > 0 && words[0].start == ln.first {
		switch words[0].text {
		case "if", "elif", "else", "while", "for", "def":
			e.Add(Hint{
				Dialect: Python, Shape: ShapeControlFlow, Score: 4, Reason: "a `" + words[0].text + ":` block",
				Span: ln.span(ln.first, ln.last+1), Example: "GoTo[label](condition)",
			})
		}
	}
}

// observeAssignment looks at what follows the leading word: `=`, `:=`,
// compound assignment or a ++/-- suffix.
func observeAssignment(e *Evidence, ln line, name word) {
	p := ln.skipBlank(name.end)
	switch {
	case ln.hasPrefixAt(p, ":="):
		e.Add(Hint{
			Dialect: Go, Shape: ShapeAssign, Score: 5, Reason: "`:=`",
			Span:  ln.span(p, p+2),
			Edits: []diag.FixEdit{{Span: ln.span(p, p+2), NewText: "<-"}},
		})
	case ln.hasPrefixAt(p, "=") && !ln.hasPrefixAt(p, "=="):
		sp := ln.span(p, p+1)
		e.Add(Hint{
			Dialect: Python, Shape: ShapeAssign, Score: 3, Reason: "`=` assignment",
			Span: sp, Edits: []diag.FixEdit{{Span: sp, NewText: "<-"}},
		})
		e.Add(Hint{Dialect: CFamily, Shape: ShapeAssign, Score: 2, Reason: "`=` assignment", Span: sp})
	case ln.hasPrefixAt(p, "++") || ln.hasPrefixAt(p, "--"):
		if ln.skipBlank(p+2) <= ln.body {
			return
		}
		op := "+"
		if ln.text[p] == '-' {
			op = "-"
		}
		sp := ln.span(name.start, ln.body+1)
		e.Add(Hint{
			Dialect: CFamily, Shape: ShapeIncrement, Score: 3, Reason: "`" + ln.text[p:p+2] + "`",
			Span: sp, Edits: []diag.FixEdit{{Span: sp, NewText: fmt.Sprintf("%s <- %s %s 1", name.text, name.text, op)}},
		})
		e.Add(Hint{Dialect: Go, Shape: ShapeIncrement, Score: 2, Reason: "`" + ln.text[p:p+2] + "`", Span: sp})
	default:
		for _, cop := range compoundOps {
			if !ln.hasPrefixAt(p, cop) {
				continue
			}
			rest := strings.TrimSpace(ln.text[p+2 : ln.body+1])
			if rest == "" {
				return
			}
			if !isSimpleOperand(rest) {
				rest = "(" + rest + ")"
			}
			sp := ln.span(name.start, ln.body+1)
			e.Add(Hint{
				Dialect: CFamily, Shape: ShapeAssign, Score: 3, Reason: "`" + cop + "`",
				Span: sp, Edits: []diag.FixEdit{{Span: sp, NewText: fmt.Sprintf("%s <- %s %c %s", name.text, name.text, cop[0], rest)}},
			})
			e.Add(Hint{Dialect: Python, Shape: ShapeAssign, Score: 2, Reason: "`" + cop + "`", Span: sp})
			return
		}
	}
}

func isSimpleOperand(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isWordPart(s[i]) {
			return false
		}
	}
	return true
}
