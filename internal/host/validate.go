package host

import (
	"fmt"

	"pixelwalle/internal/builtin"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
	"pixelwalle/internal/value"
)

// StartValidation implements Capability.
func (c *Canvas) StartValidation() {
	c.shadow = initialAgent()
}

// MergePoint implements Capability.
func (c *Canvas) MergePoint() {
	c.shadow.posKnown = false
}

// validation is one dry run of a builtin against the shadow agent.
type validation struct {
	c    *Canvas
	op   builtin.Op
	args []Arg
	span source.Span
	rep  diag.Reporter
	ok   bool
}

func (c *Canvas) newValidation(op builtin.Op, args []Arg, span source.Span, rep diag.Reporter) *validation {
	return &validation{c: c, op: op, args: args, span: span, rep: rep, ok: true}
}

func (v *validation) errorf(code diag.Code, span source.Span, format string, args ...any) {
	v.ok = false
	diag.ReportError(v.rep, code, span, fmt.Sprintf(format, args...)).Emit()
}

// signature checks arity and argument kinds. Arguments that already
// failed to check (Void) are skipped silently but still stop the
// semantic checks that follow.
func (v *validation) signature() bool {
	info := v.op.Info()
	switch n := len(v.args); {
	case n < info.Arity():
		v.errorf(diag.SemaArity, v.span, msgMissingArgs, info.Name)
		return false
	case n > info.Arity():
		v.errorf(diag.SemaArity, v.span, msgTooManyArgs, info.Name)
		return false
	}

	good := true
	for i, p := range info.Params {
		a := v.args[i]
		if a.Value.Kind == value.KindVoid {
			good = false
			continue
		}
		if !accepts(p.Kind, a.Value.Kind) {
			v.errorf(diag.SemaArgType, a.Span, msgArgType, info.Name, p.Kind, p.Name, a.Value.Kind)
			good = false
		}
	}
	return good
}

func accepts(p builtin.ParamKind, k value.Kind) bool {
	switch p {
	case builtin.ParamInt:
		return k == value.KindInt
	case builtin.ParamString:
		return k == value.KindString
	case builtin.ParamAny:
		return k == value.KindInt || k == value.KindBool || k == value.KindString
	default:
		return false
	}
}

// int returns argument i and whether its value is known statically.
func (v *validation) int(i int) (int64, bool) {
	a := v.args[i]
	return a.Value.Int, a.Known && a.Value.Kind == value.KindInt
}

func (v *validation) str(i int) (string, bool) {
	a := v.args[i]
	return a.Value.Str, a.Known && a.Value.Kind == value.KindString
}

func (v *validation) requireSpawn() bool {
	if !v.c.shadow.Spawned {
		v.errorf(diag.SemaNotSpawned, v.span, msgNotSpawned)
		return false
	}
	return true
}

func (v *validation) requireInside(x, y int64) bool {
	if !v.c.inside(x, y) {
		v.errorf(diag.SemaOutOfBounds, v.span, msgOutOfBounds, x, y)
		return false
	}
	return true
}

func (v *validation) requireDirection(dx, dy int64) bool {
	if !validDirection(dx) || !validDirection(dy) {
		v.errorf(diag.SemaInvalidDirection, v.span, msgDirection, dx, dy)
		return false
	}
	return true
}

// color checks a known colour name argument.
func (v *validation) color(i int) bool {
	name, known := v.str(i)
	if !known {
		return true
	}
	if _, ok := LookupColor(name); ok {
		return true
	}
	v.ok = false
	b := diag.ReportError(v.rep, diag.SemaUnsupportedColor, v.args[i].Span, fmt.Sprintf(msgColor, name))
	if note := diag.SuggestNote(name, PaletteNames()); note != "" {
		b.WithNote(v.args[i].Span, note)
	}
	b.Emit()
	return false
}

// target checks a destination computed from the shadow position and
// moves the shadow there. Unknown inputs make the position unknown.
func (v *validation) target(x, y int64, known bool) {
	s := &v.c.shadow
	if !known || !s.posKnown {
		s.posKnown = false
		return
	}
	if !v.requireInside(x, y) {
		s.posKnown = false
		return
	}
	s.X, s.Y = x, y
}

// direction reads the (dx, dy) pair at i, i+1. ok is false when the
// direction is known and invalid.
func (v *validation) direction(i int) (dx, dy int64, known, ok bool) {
	dx, kx := v.int(i)
	dy, ky := v.int(i + 1)
	if !kx || !ky {
		return dx, dy, false, true
	}
	return dx, dy, true, v.requireDirection(dx, dy)
}

// ValidateAction implements Capability.
func (c *Canvas) ValidateAction(op builtin.Op, args []Arg, span source.Span, rep diag.Reporter) bool {
	if !op.IsValid() || !op.IsAction() {
		return false
	}
	v := c.newValidation(op, args, span, rep)
	if !v.signature() {
		// состояние после неверного вызова неизвестно
		c.shadow.posKnown = false
		return false
	}
	s := &c.shadow

	switch op {
	case builtin.Spawn:
		if s.Spawned {
			v.errorf(diag.SemaAlreadySpawned, span, msgAlreadySpawned)
			break
		}
		s.Spawned = true
		x, kx := v.int(0)
		y, ky := v.int(1)
		if !kx || !ky {
			s.posKnown = false
			break
		}
		s.posKnown = true
		v.target(x, y, true)

	case builtin.Draw, builtin.Fill:
		v.requireSpawn()

	case builtin.Plot, builtin.Move:
		if !v.requireSpawn() {
			break
		}
		x, kx := v.int(0)
		y, ky := v.int(1)
		if kx && ky {
			// абсолютные координаты восстанавливают позицию
			s.posKnown = true
		}
		v.target(x, y, kx && ky)

	case builtin.Size:
		if n, known := v.int(0); known && n < 1 {
			v.errorf(diag.SemaInvalidBrushSize, args[0].Span, msgBrushSize, n)
		} else if known {
			s.Size = n - (n+1)%2
		}

	case builtin.Color:
		v.color(0)

	case builtin.ColorRGB:
		for i := range args {
			if ch, known := v.int(i); known && (ch < 0 || ch > 255) {
				v.errorf(diag.SemaChannelOutOfRange, args[i].Span, msgChannel, ch)
			}
		}

	case builtin.DrawLine, builtin.DrawCircle, builtin.DrawRectangle:
		if !v.requireSpawn() {
			break
		}
		dx, dy, known, ok := v.direction(0)
		if !ok {
			s.posKnown = false
			break
		}
		mul := int64(1)
		if op != builtin.DrawCircle {
			d, kd := v.int(2)
			mul, known = d, known && kd
		}
		v.target(s.X+dx*mul, s.Y+dy*mul, known)

	case builtin.PlotLine:
		if !v.requireSpawn() {
			break
		}
		x0, k0 := v.int(0)
		y0, k1 := v.int(1)
		if k0 && k1 && !v.requireInside(x0, y0) {
			s.posKnown = false
			break
		}
		x1, k2 := v.int(2)
		y1, k3 := v.int(3)
		s.posKnown = k2 && k3
		v.target(x1, y1, k2 && k3)

	case builtin.PlotCircle, builtin.PlotRectangle:
		if !v.requireSpawn() {
			break
		}
		x, kx := v.int(0)
		y, ky := v.int(1)
		s.posKnown = kx && ky
		v.target(x, y, kx && ky)

	case builtin.Print, builtin.Erase:

	default:
		return false
	}
	return v.ok
}

// ValidateFunction implements Capability. Every function yields an Integer.
func (c *Canvas) ValidateFunction(op builtin.Op, args []Arg, span source.Span, rep diag.Reporter) (bool, value.Kind) {
	if !op.IsValid() || !op.IsFunction() {
		return false, value.KindVoid
	}
	v := c.newValidation(op, args, span, rep)
	if !v.signature() {
		return false, value.KindInt
	}

	switch op {
	case builtin.GetActualX, builtin.GetActualY, builtin.IsBrushSize:
		v.requireSpawn()

	case builtin.GetCanvasSize:
		if c.opts.Width != c.opts.Height {
			v.errorf(diag.SemaCanvasNotSquare, span, msgNotSquare)
		}

	case builtin.GetCanvasWidth, builtin.GetCanvasHeight, builtin.GetBrushSize:

	case builtin.GetColorCount:
		if !v.color(0) {
			break
		}
		x1, k1 := v.int(1)
		y1, k2 := v.int(2)
		if k1 && k2 && !v.requireInside(x1, y1) {
			break
		}
		x2, k3 := v.int(3)
		y2, k4 := v.int(4)
		if k3 && k4 {
			v.requireInside(x2, y2)
		}

	case builtin.IsBrushColor:
		v.color(0)

	case builtin.IsCanvasColor:
		if v.color(0) {
			v.requireSpawn()
		}

	default:
		return false, value.KindVoid
	}
	return v.ok, value.KindInt
}
