package host

import (
	"pixelwalle/internal/builtin"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
	"pixelwalle/internal/value"
)

// Call is one recorded host invocation.
type Call struct {
	Op   builtin.Op
	Args []value.Value
	Span source.Span
}

// Recorder implements Capability and records every side-effecting call.
// With a nil Inner, actions succeed, functions return Results[op] (or 0)
// and validation accepts everything.
type Recorder struct {
	Inner   Capability
	Results map[builtin.Op]value.Value

	Calls       []Call
	Validations int
	Resets      int
}

var _ Capability = (*Recorder)(nil)

// NewRecorder wraps inner; inner may be nil.
func NewRecorder(inner Capability) *Recorder {
	return &Recorder{Inner: inner, Results: make(map[builtin.Op]value.Value)}
}

func (r *Recorder) record(op builtin.Op, args []value.Value, span source.Span) {
	r.Calls = append(r.Calls, Call{Op: op, Args: append([]value.Value(nil), args...), Span: span})
}

func (r *Recorder) CallAction(op builtin.Op, args []value.Value, span source.Span) error {
	r.record(op, args, span)
	if r.Inner != nil {
		return r.Inner.CallAction(op, args, span)
	}
	return nil
}

func (r *Recorder) CallFunction(op builtin.Op, args []value.Value, span source.Span) (value.Value, error) {
	r.record(op, args, span)
	if r.Inner != nil {
		return r.Inner.CallFunction(op, args, span)
	}
	if v, ok := r.Results[op]; ok {
		return v, nil
	}
	return value.MakeInt(0), nil
}

func (r *Recorder) StartValidation() {
	if r.Inner != nil {
		r.Inner.StartValidation()
	}
}

func (r *Recorder) MergePoint() {
	if r.Inner != nil {
		r.Inner.MergePoint()
	}
}

func (r *Recorder) ValidateAction(op builtin.Op, args []Arg, span source.Span, rep diag.Reporter) bool {
	r.Validations++
	if r.Inner != nil {
		return r.Inner.ValidateAction(op, args, span, rep)
	}
	return true
}

func (r *Recorder) ValidateFunction(op builtin.Op, args []Arg, span source.Span, rep diag.Reporter) (bool, value.Kind) {
	r.Validations++
	if r.Inner != nil {
		return r.Inner.ValidateFunction(op, args, span, rep)
	}
	return true, value.KindInt
}

func (r *Recorder) BrushFromName(name string) (Color, bool) {
	if r.Inner != nil {
		return r.Inner.BrushFromName(name)
	}
	return LookupColor(name)
}

func (r *Recorder) Reset() {
	r.Resets++
	if r.Inner != nil {
		r.Inner.Reset()
	}
}

// Ops lists the recorded ops in call order.
func (r *Recorder) Ops() []builtin.Op {
	out := make([]builtin.Op, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Op
	}
	return out
}
