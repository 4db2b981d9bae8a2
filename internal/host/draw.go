package host

import (
	"math"
)

// stamp paints the brush square centred at (x, y). Parts outside the
// canvas are clipped; a transparent brush paints nothing.
func (c *Canvas) stamp(x, y int64) {
	brush := c.agent.Brush
	if brush.IsTransparent() {
		return
	}
	off := c.reach()
	w, h := int64(c.opts.Width), int64(c.opts.Height)
	x0, x1 := max(x-off, 0), min(x+off, w-1)
	y0, y1 := max(y-off, 0), min(y+off, h-1)
	for yy := y0; yy <= y1; yy++ {
		for xx := x0; xx <= x1; xx++ {
			c.pixels[c.index(xx, yy)] = brush
		}
	}
}

// reach is half the brush side, capped so that huge brushes stay cheap:
// any reach beyond the canvas size covers the same pixels.
func (c *Canvas) reach() int64 {
	return min((c.agent.Size-1)/2, int64(c.opts.Width+c.opts.Height))
}

// line stamps every point of the segment using DDA with round-half-to-even.
func (c *Canvas) line(x0, y0, x1, y1 int64) {
	dx, dy := x1-x0, y1-y0
	step := max(abs(dx), abs(dy))
	if step == 0 {
		c.stamp(x0, y0)
		return
	}
	sx := float64(dx) / float64(step)
	sy := float64(dy) / float64(step)
	for i := int64(0); i <= step; i++ {
		x := int64(math.RoundToEven(float64(x0) + float64(i)*sx))
		y := int64(math.RoundToEven(float64(y0) + float64(i)*sy))
		c.stamp(x, y)
	}
}

// circle draws a midpoint circle of radius r-1 around (cx, cy), eight
// octants per step.
func (c *Canvas) circle(cx, cy, r int64) {
	r--
	if r < 0 || r > 2*int64(c.opts.Width+c.opts.Height) {
		return // ни одна точка такой окружности не попадёт на холст
	}
	x, y := int64(0), -r
	for x < -y {
		yMid := float64(y) + 0.5
		if float64(x*x)+yMid*yMid > float64(r*r) {
			y++
		}
		c.stamp(cx+x, cy+y)
		c.stamp(cx-x, cy+y)
		c.stamp(cx+x, cy-y)
		c.stamp(cx-x, cy-y)
		c.stamp(cx+y, cy+x)
		c.stamp(cx-y, cy+x)
		c.stamp(cx+y, cy-x)
		c.stamp(cx-y, cy-x)
		x++
	}
}

// rectangle draws the outline of the rectangle spanning (cx±(w-1), cy±(h-1)).
func (c *Canvas) rectangle(cx, cy, w, h int64) {
	w, h = abs(w), abs(h)
	if w < 1 || h < 1 {
		return
	}
	// Обход ограничен холстом с запасом на половину кисти.
	off := c.reach() + 1
	lim := int64(c.opts.Width+c.opts.Height) + off
	w, h = min(w, lim), min(h, lim)
	left, right := cx-(w-1), cx+(w-1)
	top, bottom := cy-(h-1), cy+(h-1)

	for y := max(top, -off); y <= min(bottom, int64(c.opts.Height)+off); y++ {
		c.stamp(left, y)
		c.stamp(right, y)
	}
	for x := max(left, -off); x <= min(right, int64(c.opts.Width)+off); x++ {
		c.stamp(x, top)
		c.stamp(x, bottom)
	}
}

type point struct{ x, y int64 }

// flood repaints the 4-connected region of (x, y) with the brush colour.
func (c *Canvas) flood(x, y int64) {
	brush := c.agent.Brush
	target, ok := c.Pixel(x, y)
	if !ok || brush.IsTransparent() || brush == target {
		return
	}
	stack := []point{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if col, ok := c.Pixel(p.x, p.y); !ok || col != target {
			continue
		}
		c.pixels[c.index(p.x, p.y)] = brush
		stack = append(stack,
			point{p.x + 1, p.y}, point{p.x - 1, p.y},
			point{p.x, p.y + 1}, point{p.x, p.y - 1},
		)
	}
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
