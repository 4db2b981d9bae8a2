package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pixelwalle/internal/host"
)

// Raster is the read side of a canvas.
type Raster interface {
	Width() int
	Height() int
	Pixel(x, y int64) (host.Color, bool)
}

// CanvasOpts configures RenderCanvas.
type CanvasOpts struct {
	// Color paints cells with their real colour; otherwise each pixel is a letter.
	Color  bool
	Border bool
	// Agent, when spawned, is drawn as '@'.
	Agent *host.Agent
}

var glyphs = map[host.Color]byte{
	host.White:  '.',
	host.Black:  'K',
	host.Red:    'R',
	host.Blue:   'B',
	host.Yellow: 'Y',
	host.Purple: 'P',
	host.Green:  'G',
	host.Orange: 'O',
}

// Glyph is the letter used for c in plain rendering.
func Glyph(c host.Color) byte {
	if g, ok := glyphs[c]; ok {
		return g
	}
	return '?'
}

// RenderCanvas draws r row by row, two terminal cells per pixel in colour
// mode and one letter per pixel otherwise.
func RenderCanvas(r Raster, opts CanvasOpts) string {
	var b strings.Builder
	for y := range r.Height() {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := range r.Width() {
			c, _ := r.Pixel(int64(x), int64(y))
			isAgent := opts.Agent != nil && opts.Agent.Spawned &&
				opts.Agent.X == int64(x) && opts.Agent.Y == int64(y)
			if opts.Color {
				cell := "  "
				if isAgent {
					cell = "<>"
				}
				b.WriteString(lipgloss.NewStyle().
					Background(lipgloss.Color(c.Hex())).
					Foreground(lipgloss.Color(contrast(c).Hex())).
					Render(cell))
				continue
			}
			if isAgent {
				b.WriteByte('@')
				continue
			}
			b.WriteByte(Glyph(c))
		}
	}
	grid := b.String()
	if !opts.Border {
		return grid
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Render(grid)
}

// Legend lists the colours present on r with their pixel counts, in palette order.
func Legend(r Raster) string {
	counts := make(map[host.Color]int)
	for y := range r.Height() {
		for x := range r.Width() {
			c, _ := r.Pixel(int64(x), int64(y))
			counts[c]++
		}
	}
	var parts []string
	for _, name := range host.PaletteNames() {
		c, _ := host.LookupColor(name)
		if n := counts[c]; n > 0 {
			parts = append(parts, fmt.Sprintf("%c %s %d", Glyph(c), name, n))
			delete(counts, c)
		}
	}
	// цвета вне палитры
	if n := sumCounts(counts); n > 0 {
		parts = append(parts, fmt.Sprintf("? other %d", n))
	}
	return strings.Join(parts, "  ")
}

func sumCounts(m map[host.Color]int) int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

func contrast(c host.Color) host.Color {
	// яркость по Rec. 601
	if int(c.R)*299+int(c.G)*587+int(c.B)*114 > 128_000 {
		return host.Black
	}
	return host.White
}
