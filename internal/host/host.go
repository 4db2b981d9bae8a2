// Package host is the boundary between the script engine and the canvas.
//
// The checker talks to a Capability through the Validate* entry points,
// which only inspect arguments and a shadow copy of the agent. The
// interpreter calls CallAction and CallFunction, which mutate the real
// canvas. Canvas is the production implementation; Recorder is a test
// double that records calls.
package host

import (
	"errors"
	"fmt"

	"pixelwalle/internal/builtin"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
	"pixelwalle/internal/value"
)

// Capability is everything the engine needs from the surrounding application.
type Capability interface {
	// CallAction performs a side-effecting builtin.
	CallAction(op builtin.Op, args []value.Value, span source.Span) error
	// CallFunction evaluates a query builtin.
	CallFunction(op builtin.Op, args []value.Value, span source.Span) (value.Value, error)

	// StartValidation resets the shadow agent before a checker pass.
	StartValidation()
	// MergePoint tells the validator that control may reach the next
	// statement from elsewhere, so the shadow position is no longer certain.
	MergePoint()
	// ValidateAction dry-runs an action. It reports problems to rep and
	// returns false when any were found.
	ValidateAction(op builtin.Op, args []Arg, span source.Span, rep diag.Reporter) bool
	// ValidateFunction dry-runs a function and returns the kind of its result.
	ValidateFunction(op builtin.Op, args []Arg, span source.Span, rep diag.Reporter) (bool, value.Kind)

	// BrushFromName resolves a palette colour name.
	BrushFromName(name string) (Color, bool)
	// Reset restores the initial canvas and a hidden agent.
	Reset()
}

// Arg is an argument as the checker sees it.
type Arg struct {
	// Value carries the kind of the argument; KindVoid means the argument
	// expression already failed to check and must not be reported again.
	Value value.Value
	// Known is set when Value is the exact value the argument will have at runtime.
	Known bool
	Span  source.Span
}

// ErrUnknownOp is returned for Unknown or out-of-category ops.
var ErrUnknownOp = errors.New("unknown builtin")

// Error is a user-facing runtime fault raised by the canvas.
type Error struct {
	Code diag.Code
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func newError(code diag.Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Сообщения общие для проверки и исполнения.
const (
	msgNotSpawned     = "Wall-E has not spawned"
	msgAlreadySpawned = "Wall-E has already spawned"
	msgOutOfBounds    = "Outside bounds <%d, %d> position"
	msgDirection      = "Invalid <%d, %d> direction"
	msgColor          = "Unsupported '%s' color"
	msgBrushSize      = "Invalid brush size %d"
	msgChannel        = "Color channel %d out of range 0..255"
	msgNotSquare      = "Canvas width does not match canvas height"
	msgMissingArgs    = "Missing arguments at '%s'."
	msgTooManyArgs    = "Too many arguments at '%s'."
	msgArgType        = "'%s' expects %s for '%s', found %s."
)

func validDirection(d int64) bool {
	return d >= -1 && d <= 1
}
