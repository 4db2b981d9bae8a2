package interp

import (
	"fmt"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
)

// RuntimeError stops a run on a fault the checker could not see, such as a
// computed coordinate outside the canvas.
type RuntimeError struct {
	Code    diag.Code
	Message string
	Span    source.Span
	// Step is the number of statements executed before the fault.
	Step int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Message)
}

// Report forwards the error to rep as an error diagnostic.
func (e *RuntimeError) Report(rep diag.Reporter) {
	diag.ReportError(rep, e.Code, e.Span, e.Message).Emit()
}

// InternalError is a broken invariant: something the checker must have
// excluded reached the interpreter. Execute panics with it.
type InternalError struct {
	Msg  string
	Span source.Span
}

func (e *InternalError) Error() string {
	return "internal interpreter error: " + e.Msg
}

func internalf(span source.Span, format string, args ...any) *InternalError {
	return &InternalError{Msg: fmt.Sprintf(format, args...), Span: span}
}
