package trace

import (
	"fmt"
	"io"
	"sync"
)

// DefaultRingSize is used when the configured ring size is not positive.
const DefaultRingSize = 4096

// RingTracer remembers the last events of a run. Nothing is written until
// Dump, which the driver calls when the interpreter hits an internal error.
type RingTracer struct {
	mu     sync.RWMutex
	events []Event
	next   int // slot for the next event once the ring is full
	level  Level
}

func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingTracer{events: make([]Event, 0, size), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.events) < cap(t.events) {
		t.events = append(t.events, stored)
		return
	}
	t.events[t.next] = stored
	t.next = (t.next + 1) % len(t.events)
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.next:]...)
	return append(out, t.events[:t.next]...)
}

// Dump writes the stored events in format, oldest first.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }

// DumpRing writes what the ring of t saw before a script run failed
// internally: a header line, then the events as text. Tracers without a
// ring write nothing.
func DumpRing(t Tracer, w io.Writer) error {
	var ring *RingTracer
	switch tr := t.(type) {
	case *RingTracer:
		ring = tr
	case *MultiTracer:
		ring, _ = tr.Ring()
	}
	if ring == nil {
		return nil
	}
	events := ring.Snapshot()
	if _, err := fmt.Fprintf(w, "-- last %d trace events before the internal error --\n", len(events)); err != nil {
		return err
	}
	return ring.Dump(w, FormatText)
}
