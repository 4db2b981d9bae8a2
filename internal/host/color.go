package host

import (
	"fmt"

	"golang.org/x/text/cases"
)

// Color is an 8-bit RGBA colour. A zero alpha is Transparent.
type Color struct {
	R, G, B, A uint8
}

var (
	White       = Color{255, 255, 255, 255}
	Black       = Color{0, 0, 0, 255}
	Red         = Color{255, 0, 0, 255}
	Blue        = Color{0, 0, 255, 255}
	Yellow      = Color{255, 255, 0, 255}
	Purple      = Color{128, 0, 128, 255}
	Green       = Color{0, 128, 0, 255}
	Orange      = Color{255, 165, 0, 255}
	Transparent = Color{}
)

type paletteEntry struct {
	name  string
	color Color
}

var palette = [...]paletteEntry{
	{"White", White},
	{"Black", Black},
	{"Red", Red},
	{"Blue", Blue},
	{"Yellow", Yellow},
	{"Purple", Purple},
	{"Green", Green},
	{"Orange", Orange},
	{"Transparent", Transparent},
}

var (
	byFolded  = buildPaletteIndex()
	nameByRGB = func() map[Color]string {
		m := make(map[Color]string, len(palette))
		for _, e := range palette {
			m[e.color] = e.name
		}
		return m
	}()
)

func buildPaletteIndex() map[string]Color {
	m := make(map[string]Color, len(palette))
	for _, e := range palette {
		m[fold(e.name)] = e.color
	}
	return m
}

// fold builds a fresh Caser per call: a Caser keeps state and must not be
// shared between goroutines.
func fold(s string) string {
	return cases.Fold().String(s)
}

// LookupColor resolves a palette name. Case is ignored: "red", "Red" and
// "RED" are the same colour.
func LookupColor(name string) (Color, bool) {
	c, ok := byFolded[fold(name)]
	return c, ok
}

// PaletteNames lists the palette in its canonical spelling.
func PaletteNames() []string {
	out := make([]string, len(palette))
	for i, e := range palette {
		out[i] = e.name
	}
	return out
}

// IsTransparent reports whether painting with c leaves pixels unchanged.
func (c Color) IsTransparent() bool { return c.A == 0 }

// Hex renders "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Name returns the palette name or the hex form for other colours.
func (c Color) Name() string {
	if n, ok := nameByRGB[c]; ok {
		return n
	}
	return c.Hex()
}

func (c Color) String() string { return c.Name() }

// pack and unpack are the snapshot encoding: 0xRRGGBBAA.
func (c Color) pack() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

func unpack(v uint32) Color {
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}
