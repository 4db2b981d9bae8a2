package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	path, gutter    *color.Color
	note, fix, dim  *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		// глобальный color.NoColor тут не указ: решает opts.Color
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		path:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		note:   mk(color.FgCyan),
		fix:    mk(color.FgGreen),
		dim:    mk(color.Faint),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<row>:<col>: <SEV> <CODE>: <Message>
// затем строки контекста с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	items := bag.Items()
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &items[i], fs, opts, p)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "\n%s\n", p.dim.Sprintf("... %d more diagnostics not shown", n))
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sevColor := p.severity(d.Severity)
	header := sevColor.Sprintf("%s %s", d.Severity, d.Code.ID())
	if knownSpan(fs, d.Primary) {
		fmt.Fprintf(w, "%s: %s: %s\n", p.path.Sprint(location(fs, d.Primary, opts.PathMode)), header, d.Message)
		writeSnippet(w, fs, d.Primary, int(max(opts.Context, 0)), p, sevColor)
	} else {
		fmt.Fprintf(w, "%s: %s\n", header, d.Message)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			if isDetached(n.Span) || !knownSpan(fs, n.Span) {
				fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
				continue
			}
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(fs, n.Span, opts.PathMode), n.Msg)
		}
	}

	if opts.ShowFixes {
		for i, f := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", p.fix.Sprintf("fix #%d:", i+1), f.Title)
			for _, e := range f.Edits {
				if !knownSpan(fs, e.Span) {
					continue
				}
				fmt.Fprintf(w, "    edit %s apply=%q\n", location(fs, e.Span, opts.PathMode), e.NewText)
				if !opts.ShowPreview {
					continue
				}
				preview, err := buildFixEditPreview(fs, e)
				if err != nil {
					continue
				}
				fmt.Fprintln(w, "    preview:")
				for _, line := range preview.before {
					fmt.Fprintf(w, "      %s\n", p.err.Sprint("- "+line))
				}
				for _, line := range preview.after {
					fmt.Fprintf(w, "      %s\n", p.fix.Sprint("+ "+line))
				}
			}
		}
	}
}

// location renders "path:row:col" with character columns.
func location(fs *source.FileSet, span source.Span, mode PathMode) string {
	f := fs.Get(span.File)
	c := f.Coord(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs, f, mode), c.Row, c.Col)
}

func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, context int, p palette, caretColor *color.Color) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	total := len(f.LineIdx) + 1

	first := max(1, int(start.Line)-context)
	last := min(total, int(start.Line)+context)
	gutter := len(strconv.Itoa(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(uint32(ln))
		if ln == total && ln > int(start.Line) && text == "" {
			break
		}
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", gutter, ln), text)
		if ln != int(start.Line) {
			continue
		}

		from := min(int(start.Col)-1, len(text))
		to := len(text)
		if end.Line == start.Line {
			to = min(int(end.Col)-1, len(text))
		}
		to = max(to, from)
		width := max(runewidth.StringWidth(text[from:to]), 1)
		fmt.Fprintf(w, " %s %s%s\n",
			p.gutter.Sprintf("%*s |", gutter, ""),
			caretPad(text[:from]),
			caretColor.Sprint("^"+strings.Repeat("~", width-1)))
	}
}

// caretPad повторяет табы исходной строки, остальное заменяет пробелами нужной ширины.
func caretPad(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
