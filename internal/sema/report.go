package sema

import (
	"fmt"
	"slices"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
)

func (c *checker) errorf(code diag.Code, span source.Span, format string, args ...any) *diag.ReportBuilder {
	return diag.ReportError(c.rep, code, span, fmt.Sprintf(format, args...))
}

// withSuggestion attaches a "did you mean" note and the matching
// replacement when a close candidate exists.
func (c *checker) withSuggestion(b *diag.ReportBuilder, span source.Span, name string, candidates []string) {
	if !c.suggest {
		return
	}
	s, ok := diag.Suggest(name, candidates)
	if !ok || s == name {
		return
	}
	b.WithNote(span, diag.SuggestNote(name, candidates)).
		WithFix("replace with '"+s+"'", diag.FixEdit{Span: span, NewText: s})
}

func (c *checker) labelNames() []string {
	names := make([]string, 0, len(c.ctx.Labels))
	for id := range c.ctx.Labels {
		names = append(names, c.b.Name(id))
	}
	slices.Sort(names)
	return names
}
