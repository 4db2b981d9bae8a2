package ui

import (
	"strings"
	"testing"

	"pixelwalle/internal/driver"
	"pixelwalle/internal/host"
)

type fakeRaster struct {
	w, h   int
	pixels map[[2]int64]host.Color
}

func (f fakeRaster) Width() int  { return f.w }
func (f fakeRaster) Height() int { return f.h }
func (f fakeRaster) Pixel(x, y int64) (host.Color, bool) {
	if c, ok := f.pixels[[2]int64{x, y}]; ok {
		return c, true
	}
	return host.White, true
}

func TestRenderCanvasPlain(t *testing.T) {
	r := fakeRaster{w: 3, h: 2, pixels: map[[2]int64]host.Color{
		{0, 0}: host.Blue,
		{2, 1}: host.Red,
		{1, 1}: {R: 1, G: 2, B: 3, A: 255},
	}}

	tests := []struct {
		name string
		opts CanvasOpts
		want string
	}{
		{name: "letters", want: "B..\n.?R"},
		{
			name: "agent",
			opts: CanvasOpts{Agent: &host.Agent{Spawned: true, X: 1, Y: 0}},
			want: "B@.\n.?R",
		},
		{
			name: "agent not spawned",
			opts: CanvasOpts{Agent: &host.Agent{X: 1, Y: 0}},
			want: "B..\n.?R",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderCanvas(r, tt.opts); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderCanvasBorder(t *testing.T) {
	r := fakeRaster{w: 2, h: 2}
	out := RenderCanvas(r, CanvasOpts{Border: true})
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("want 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "╭") || !strings.Contains(lines[1], "..") {
		t.Fatalf("unexpected frame:\n%s", out)
	}
}

func TestRenderCanvasColorRows(t *testing.T) {
	c := host.NewCanvas(host.Options{Width: 4, Height: 3})
	out := RenderCanvas(c, CanvasOpts{Color: true})
	if n := strings.Count(out, "\n"); n != 2 {
		t.Fatalf("want 3 rows, got %d newlines", n)
	}
}

func TestLegend(t *testing.T) {
	r := fakeRaster{w: 2, h: 2, pixels: map[[2]int64]host.Color{
		{0, 0}: host.Black,
		{1, 0}: {R: 9, A: 255},
	}}
	if got, want := Legend(r), ". White 2  K Black 1  ? other 1"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestProgressModelEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("checking", []string{"a.pw", "b.pw"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.pw", Phase: "parse", Status: driver.StatusWorking})
	if got := m.percent(); got != 0.15 {
		t.Fatalf("percent = %v", got)
	}
	if view := m.View(); !strings.Contains(view, "parsing") || !strings.Contains(view, "(0/2)") {
		t.Fatalf("view:\n%s", view)
	}

	m.applyEvent(driver.Event{File: "a.pw", Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.pw", Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "unknown.pw", Status: driver.StatusDone})
	if finished, failed := m.counts(); finished != 2 || failed != 1 {
		t.Fatalf("counts = %d, %d", finished, failed)
	}

	m.Update(doneMsg{})
	view := m.View()
	if !strings.HasPrefix(stripANSI(view), "done: checking (2/2, 1 with errors)") {
		t.Fatalf("view:\n%s", view)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.pw", 20, "short.pw"},
		{"very/long/path/script.pw", 10, "very..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
