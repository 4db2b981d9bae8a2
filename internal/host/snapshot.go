package host

import (
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// snapshotSchema is bumped whenever the Snapshot layout changes.
const snapshotSchema uint16 = 1

// Snapshot is a serialisable copy of the canvas and the agent.
type Snapshot struct {
	Schema     uint16
	Width      int
	Height     int
	Background uint32
	// Pixels are row-major, packed as 0xRRGGBBAA.
	Pixels []uint32

	Spawned   bool
	X, Y      int64
	Brush     uint32
	BrushSize int64
}

var errBadSnapshot = errors.New("malformed canvas snapshot")

// Snapshot captures the current canvas.
func (c *Canvas) Snapshot() Snapshot {
	px := make([]uint32, len(c.pixels))
	for i, col := range c.pixels {
		px[i] = col.pack()
	}
	return Snapshot{
		Schema:     snapshotSchema,
		Width:      c.opts.Width,
		Height:     c.opts.Height,
		Background: c.opts.Background.pack(),
		Pixels:     px,
		Spawned:    c.agent.Spawned,
		X:          c.agent.X,
		Y:          c.agent.Y,
		Brush:      c.agent.Brush.pack(),
		BrushSize:  c.agent.Size,
	}
}

// Restore loads s into a fresh canvas. Output goes to w.
func Restore(s Snapshot, w io.Writer) (*Canvas, error) {
	if s.Schema != snapshotSchema {
		return nil, fmt.Errorf("%w: schema %d, want %d", errBadSnapshot, s.Schema, snapshotSchema)
	}
	n, err := safecast.Conv[int](int64(s.Width) * int64(s.Height))
	if err != nil || s.Width <= 0 || s.Height <= 0 || len(s.Pixels) != n {
		return nil, fmt.Errorf("%w: %dx%d with %d pixels", errBadSnapshot, s.Width, s.Height, len(s.Pixels))
	}
	c := NewCanvas(Options{
		Width:      s.Width,
		Height:     s.Height,
		Background: unpack(s.Background),
		Output:     w,
	})
	for i, v := range s.Pixels {
		c.pixels[i] = unpack(v)
	}
	c.agent = Agent{
		Spawned:  s.Spawned,
		X:        s.X,
		Y:        s.Y,
		Brush:    unpack(s.Brush),
		Size:     s.BrushSize,
		posKnown: true,
	}
	return c, nil
}

// EncodeSnapshot writes s as msgpack.
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	if err := msgpack.NewEncoder(w).Encode(&s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a msgpack snapshot written by EncodeSnapshot.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
