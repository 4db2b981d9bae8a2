package dialect

import (
	"slices"
	"sort"
	"strings"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
)

// Finding is the hint chosen for one rejected line.
type Finding struct {
	Dialect Kind
	Shape   Shape
	Span    source.Span
	Message string
	// Example is the line rewritten in PixelWallE, or a template when the
	// rewrite is not mechanical.
	Example string
	Fix     *diag.Fix
}

// minConfidence is the share of the total score the file-level dialect needs
// before every finding speaks with its voice.
const minConfidence = 0.5

// Detect inspects the given 1-based rows of file and returns at most one
// finding per row that shows foreign syntax, in row order.
func Detect(file *source.File, rows []uint32) []Finding {
	if file == nil || len(rows) == 0 {
		return nil
	}
	rows = slices.Clone(rows)
	slices.Sort(rows)
	rows = slices.Compact(rows)

	e := NewEvidence()
	type group struct {
		row        uint32
		start, end int
	}
	groups := make([]group, 0, len(rows))
	for _, row := range rows {
		start := len(e.hints)
		ObserveLine(e, file, row)
		if len(e.hints) > start {
			groups = append(groups, group{row: row, start: start, end: len(e.hints)})
		}
	}

	cls := Classifier{}.Classify(e)
	findings := make([]Finding, 0, len(groups))
	for _, g := range groups {
		hints := e.hints[g.start:g.end]
		best := hints[0]
		for _, h := range hints[1:] {
			if h.Score > best.Score {
				best = h
			}
		}

		voice := best.Dialect
		if cls.Kind != Unknown && cls.Confidence >= minConfidence {
			voice = cls.Kind
		}

		f := Finding{
			Dialect: voice,
			Shape:   best.Shape,
			Span:    best.Span,
			Message: RenderHint(voice, RenderInput{Shape: best.Shape, Detected: best.Reason}),
			Example: best.Example,
		}
		if edits := mergeEdits(hints); len(edits) > 0 {
			f.Fix = &diag.Fix{Title: "rewrite in PixelWallE syntax", Edits: edits}
			f.Example = applyEdits(file.GetLine(g.row), lineStart(file, g.row), edits)
		}
		findings = append(findings, f)
	}
	return findings
}

// mergeEdits gathers the edits of all hints on a line, ordered by position,
// dropping any that overlap an earlier one.
func mergeEdits(hints []Hint) []diag.FixEdit {
	var all []diag.FixEdit
	for _, h := range hints {
		all = append(all, h.Edits...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Span.Start < all[j].Span.Start })

	out := all[:0]
	var end uint32
	for _, ed := range all {
		if len(out) > 0 && ed.Span.Start < end {
			continue
		}
		out = append(out, ed)
		end = ed.Span.End
	}
	return out
}

func applyEdits(text string, base uint32, edits []diag.FixEdit) string {
	var b strings.Builder
	pos := 0
	for _, ed := range edits {
		start, end := int(ed.Span.Start-base), int(ed.Span.End-base)
		if start < pos || end > len(text) {
			continue
		}
		b.WriteString(text[pos:start])
		b.WriteString(ed.NewText)
		pos = end
	}
	b.WriteString(text[pos:])
	return strings.TrimSpace(b.String())
}
