package host

import (
	"fmt"

	"pixelwalle/internal/builtin"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
	"pixelwalle/internal/value"
)

// argReader pulls typed arguments; a wrong kind means the checker let
// something through and is reported as a plain error, not an *Error.
type argReader struct {
	op   builtin.Op
	args []value.Value
	err  error
}

func (r *argReader) int(i int) int64 {
	if r.err != nil {
		return 0
	}
	if i >= len(r.args) || r.args[i].Kind != value.KindInt {
		r.err = fmt.Errorf("%s: argument %d is not an Integer", r.op, i)
		return 0
	}
	return r.args[i].Int
}

func (r *argReader) str(i int) string {
	if r.err != nil {
		return ""
	}
	if i >= len(r.args) || r.args[i].Kind != value.KindString {
		r.err = fmt.Errorf("%s: argument %d is not a String", r.op, i)
		return ""
	}
	return r.args[i].Str
}

func newArgReader(op builtin.Op, args []value.Value) *argReader {
	r := &argReader{op: op, args: args}
	if want := op.Info().Arity(); len(args) != want {
		r.err = fmt.Errorf("%s: want %d arguments, got %d", op, want, len(args))
	}
	return r
}

func (c *Canvas) requireSpawn() error {
	if !c.agent.Spawned {
		return newError(diag.RunNotSpawned, msgNotSpawned)
	}
	return nil
}

func (c *Canvas) requireInside(x, y int64) error {
	if !c.inside(x, y) {
		return newError(diag.RunOutOfBounds, msgOutOfBounds, x, y)
	}
	return nil
}

func requireDirection(dx, dy int64) error {
	if !validDirection(dx) || !validDirection(dy) {
		return newError(diag.RunInvalidArgument, msgDirection, dx, dy)
	}
	return nil
}

func (c *Canvas) color(name string) (Color, error) {
	col, ok := LookupColor(name)
	if !ok {
		return Color{}, newError(diag.RunInvalidArgument, msgColor, name)
	}
	return col, nil
}

func (c *Canvas) moveTo(x, y int64) {
	c.agent.X, c.agent.Y = x, y
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// CallAction implements Capability.
func (c *Canvas) CallAction(op builtin.Op, args []value.Value, _ source.Span) error {
	if !op.IsValid() || !op.IsAction() {
		return fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}
	r := newArgReader(op, args)
	if r.err != nil {
		return r.err
	}
	a := &c.agent

	switch op {
	case builtin.Spawn:
		x, y := r.int(0), r.int(1)
		if r.err != nil {
			return r.err
		}
		if a.Spawned {
			return newError(diag.RunInvalidArgument, msgAlreadySpawned)
		}
		if err := c.requireInside(x, y); err != nil {
			return err
		}
		a.Spawned = true
		c.moveTo(x, y)

	case builtin.Draw:
		if err := c.requireSpawn(); err != nil {
			return err
		}
		c.stamp(a.X, a.Y)

	case builtin.Plot, builtin.Move:
		x, y := r.int(0), r.int(1)
		if r.err != nil {
			return r.err
		}
		if err := firstErr(c.requireSpawn(), c.requireInside(x, y)); err != nil {
			return err
		}
		c.moveTo(x, y)
		if op == builtin.Plot {
			c.stamp(x, y)
		}

	case builtin.Size:
		n := r.int(0)
		if r.err != nil {
			return r.err
		}
		if n < 1 {
			return newError(diag.RunInvalidArgument, msgBrushSize, n)
		}
		a.Size = n - (n+1)%2

	case builtin.Color:
		name := r.str(0)
		if r.err != nil {
			return r.err
		}
		col, err := c.color(name)
		if err != nil {
			return err
		}
		a.Brush = col

	case builtin.ColorRGB:
		rgb := [3]int64{r.int(0), r.int(1), r.int(2)}
		if r.err != nil {
			return r.err
		}
		for _, ch := range rgb {
			if ch < 0 || ch > 255 {
				return newError(diag.RunInvalidArgument, msgChannel, ch)
			}
		}
		a.Brush = Color{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2]), A: 255}

	case builtin.DrawLine:
		dx, dy, dist := r.int(0), r.int(1), r.int(2)
		if r.err != nil {
			return r.err
		}
		if err := firstErr(c.requireSpawn(), requireDirection(dx, dy)); err != nil {
			return err
		}
		x1, y1 := a.X+dx*dist, a.Y+dy*dist
		if err := c.requireInside(x1, y1); err != nil {
			return err
		}
		c.line(a.X, a.Y, x1, y1)
		c.moveTo(x1, y1)

	case builtin.PlotLine:
		x0, y0, x1, y1 := r.int(0), r.int(1), r.int(2), r.int(3)
		if r.err != nil {
			return r.err
		}
		if err := firstErr(c.requireSpawn(), c.requireInside(x0, y0), c.requireInside(x1, y1)); err != nil {
			return err
		}
		c.line(x0, y0, x1, y1)
		c.moveTo(x1, y1)

	case builtin.DrawCircle:
		dx, dy, radius := r.int(0), r.int(1), r.int(2)
		if r.err != nil {
			return r.err
		}
		if err := firstErr(c.requireSpawn(), requireDirection(dx, dy)); err != nil {
			return err
		}
		cx, cy := a.X+dx, a.Y+dy
		if err := c.requireInside(cx, cy); err != nil {
			return err
		}
		c.circle(cx, cy, radius)
		c.moveTo(cx, cy)

	case builtin.PlotCircle:
		cx, cy, radius := r.int(0), r.int(1), r.int(2)
		if r.err != nil {
			return r.err
		}
		if err := firstErr(c.requireSpawn(), c.requireInside(cx, cy)); err != nil {
			return err
		}
		c.circle(cx, cy, radius)
		c.moveTo(cx, cy)

	case builtin.DrawRectangle:
		dx, dy, dist, w, h := r.int(0), r.int(1), r.int(2), r.int(3), r.int(4)
		if r.err != nil {
			return r.err
		}
		if err := firstErr(c.requireSpawn(), requireDirection(dx, dy)); err != nil {
			return err
		}
		cx, cy := a.X+dx*dist, a.Y+dy*dist
		if err := c.requireInside(cx, cy); err != nil {
			return err
		}
		c.rectangle(cx, cy, w, h)
		c.moveTo(cx, cy)

	case builtin.PlotRectangle:
		cx, cy, w, h := r.int(0), r.int(1), r.int(2), r.int(3)
		if r.err != nil {
			return r.err
		}
		if err := firstErr(c.requireSpawn(), c.requireInside(cx, cy)); err != nil {
			return err
		}
		c.rectangle(cx, cy, w, h)
		c.moveTo(cx, cy)

	case builtin.Fill:
		if err := c.requireSpawn(); err != nil {
			return err
		}
		c.flood(a.X, a.Y)

	case builtin.Print:
		if _, err := fmt.Fprintln(c.opts.Output, args[0].String()); err != nil {
			return fmt.Errorf("print: %w", err)
		}

	case builtin.Erase:
		c.fill(c.opts.Background)

	default:
		return fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}
	return nil
}

func boolInt(b bool) value.Value {
	if b {
		return value.MakeInt(1)
	}
	return value.MakeInt(0)
}

// CallFunction implements Capability. Every function returns an Integer;
// predicates return 1 or 0.
func (c *Canvas) CallFunction(op builtin.Op, args []value.Value, _ source.Span) (value.Value, error) {
	if !op.IsValid() || !op.IsFunction() {
		return value.Void, fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}
	r := newArgReader(op, args)
	if r.err != nil {
		return value.Void, r.err
	}
	a := &c.agent

	switch op {
	case builtin.GetActualX, builtin.GetActualY:
		if err := c.requireSpawn(); err != nil {
			return value.Void, err
		}
		if op == builtin.GetActualX {
			return value.MakeInt(a.X), nil
		}
		return value.MakeInt(a.Y), nil

	case builtin.GetCanvasSize:
		if c.opts.Width != c.opts.Height {
			return value.Void, newError(diag.RunInvalidArgument, msgNotSquare)
		}
		return value.MakeInt(int64(c.opts.Width)), nil

	case builtin.GetCanvasWidth:
		return value.MakeInt(int64(c.opts.Width)), nil

	case builtin.GetCanvasHeight:
		return value.MakeInt(int64(c.opts.Height)), nil

	case builtin.GetBrushSize:
		return value.MakeInt(a.Size), nil

	case builtin.GetColorCount:
		name, x1, y1, x2, y2 := r.str(0), r.int(1), r.int(2), r.int(3), r.int(4)
		if r.err != nil {
			return value.Void, r.err
		}
		col, err := c.color(name)
		if err != nil {
			return value.Void, err
		}
		if err := firstErr(c.requireInside(x1, y1), c.requireInside(x2, y2)); err != nil {
			return value.Void, err
		}
		n := int64(0)
		for y := min(y1, y2); y <= max(y1, y2); y++ {
			for x := min(x1, x2); x <= max(x1, x2); x++ {
				if c.pixels[c.index(x, y)] == col {
					n++
				}
			}
		}
		return value.MakeInt(n), nil

	case builtin.IsBrushColor:
		name := r.str(0)
		if r.err != nil {
			return value.Void, r.err
		}
		col, err := c.color(name)
		if err != nil {
			return value.Void, err
		}
		return boolInt(a.Brush == col), nil

	case builtin.IsBrushSize:
		n := r.int(0)
		if r.err != nil {
			return value.Void, r.err
		}
		if err := c.requireSpawn(); err != nil {
			return value.Void, err
		}
		return boolInt(a.Size == n), nil

	case builtin.IsCanvasColor:
		name, dx, dy := r.str(0), r.int(1), r.int(2)
		if r.err != nil {
			return value.Void, r.err
		}
		col, err := c.color(name)
		if err != nil {
			return value.Void, err
		}
		if err := c.requireSpawn(); err != nil {
			return value.Void, err
		}
		px, ok := c.Pixel(a.X+dx, a.Y+dy)
		return boolInt(ok && px == col), nil

	default:
		return value.Void, fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}
}
