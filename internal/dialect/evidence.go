package dialect

import (
	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
)

// Hint is a small piece of evidence suggesting a particular dialect.
// It is not itself a diagnostic; Detect groups hints per line first.
type Hint struct {
	Dialect Kind
	Shape   Shape
	Score   int
	Reason  string
	Span    source.Span
	// Edits rewrite the offending fragment, if the rewrite is mechanical.
	Edits []diag.FixEdit
	// Example is shown when there are no edits to derive one from.
	Example string
}

// Evidence aggregates hints collected from rejected lines.
type Evidence struct {
	hints []Hint
}

// NewEvidence creates a new Evidence container.
func NewEvidence() *Evidence {
	return &Evidence{
		hints: make([]Hint, 0, 16),
	}
}

// Add appends a hint to the evidence collection.
func (e *Evidence) Add(h Hint) {
	if e == nil {
		return
	}
	e.hints = append(e.hints, h)
}

// Hints returns the collected hints.
func (e *Evidence) Hints() []Hint {
	if e == nil {
		return nil
	}
	return e.hints
}
