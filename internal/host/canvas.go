package host

import (
	"io"

	"fortio.org/safecast"
)

const (
	DefaultWidth  = 32
	DefaultHeight = 32
)

// Options configures a Canvas.
type Options struct {
	Width      int
	Height     int
	Background Color
	Output     io.Writer // Print пишет сюда; nil отбрасывает вывод
}

// Agent is Wall-E: position, visibility and brush.
type Agent struct {
	Spawned bool
	X, Y    int64
	Brush   Color
	Size    int64
	// posKnown is only meaningful for the shadow agent used by validation.
	posKnown bool
}

func initialAgent() Agent {
	return Agent{Brush: Black, Size: 1, posKnown: true}
}

// Canvas is a raster of Width*Height pixels with one agent on it.
type Canvas struct {
	opts   Options
	pixels []Color // построчно: y*Width + x
	agent  Agent
	shadow Agent
}

var _ Capability = (*Canvas)(nil)

// NewCanvas builds a canvas filled with the background colour.
// Non-positive dimensions fall back to the defaults; a transparent
// background becomes white.
func NewCanvas(opts Options) *Canvas {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Background.IsTransparent() {
		opts.Background = White
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	c := &Canvas{
		opts:   opts,
		pixels: make([]Color, opts.Width*opts.Height),
	}
	c.Reset()
	return c
}

// Reset repaints the background and hides the agent.
func (c *Canvas) Reset() {
	c.fill(c.opts.Background)
	c.agent = initialAgent()
	c.shadow = initialAgent()
}

func (c *Canvas) fill(col Color) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
}

func (c *Canvas) Width() int        { return c.opts.Width }
func (c *Canvas) Height() int       { return c.opts.Height }
func (c *Canvas) Background() Color { return c.opts.Background }
func (c *Canvas) Agent() Agent      { return c.agent }

// Pixel returns the colour at (x, y); ok is false outside the canvas.
func (c *Canvas) Pixel(x, y int64) (Color, bool) {
	if !c.inside(x, y) {
		return Color{}, false
	}
	return c.pixels[c.index(x, y)], true
}

// CountColor counts pixels of colour col.
func (c *Canvas) CountColor(col Color) int {
	n := 0
	for _, p := range c.pixels {
		if p == col {
			n++
		}
	}
	return n
}

func (c *Canvas) inside(x, y int64) bool {
	return x >= 0 && y >= 0 && x < int64(c.opts.Width) && y < int64(c.opts.Height)
}

// index assumes inside(x, y).
func (c *Canvas) index(x, y int64) int {
	i, err := safecast.Conv[int](y*int64(c.opts.Width) + x)
	if err != nil {
		panic(err)
	}
	return i
}

// BrushFromName implements Capability.
func (c *Canvas) BrushFromName(name string) (Color, bool) {
	return LookupColor(name)
}
