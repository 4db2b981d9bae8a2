package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	globalSeq   uint64
	globalSpans uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return atomic.AddUint64(&globalSeq, 1)
}

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 {
	return atomic.AddUint64(&globalSpans, 1)
}

// getGoroutineID reads the id from the "goroutine N [" header of runtime.Stack.
// Batch checks run scripts on several goroutines; the id keeps their spans apart.
func getGoroutineID() uint64 {
	var buf [64]byte
	line := buf[:runtime.Stack(buf[:], false)]
	line, ok := bytes.CutPrefix(line, []byte("goroutine "))
	if !ok {
		return 0
	}
	num, _, ok := bytes.Cut(line, []byte(" "))
	if !ok {
		return 0
	}
	gid, err := strconv.ParseUint(string(num), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// active reports whether t records events of scope.
func active(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Span is one timed region of a run: a command, a phase or a script in a batch.
// A Span from a disabled tracer is inert; every method is safe on it.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	gid      uint64
	scope    Scope
	name     string
	started  time.Time
	extra    map[string]string
}

// Begin starts a span under parent (0 for a root span) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !active(t, scope) {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer:   t,
		id:       NextSpanID(),
		parentID: parent,
		gid:      getGoroutineID(),
		scope:    scope,
		name:     name,
		started:  time.Now(),
	}
	s.emit(KindSpanBegin, s.started, "", nil)
	return s
}

// End emits the end event with detail and the collected extras and returns
// the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return 0
	}
	now := time.Now()
	s.emit(KindSpanEnd, now, detail, s.extra)
	return now.Sub(s.started)
}

func (s *Span) emit(kind Kind, at time.Time, detail string, extra map[string]string) {
	s.tracer.Emit(&Event{
		Time:     at,
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		GID:      s.gid,
		Name:     s.name,
		Detail:   detail,
		Extra:    extra,
	})
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// WithCount is WithExtra for counters (tokens, statements, errors).
func (s *Span) WithCount(key string, n int) *Span {
	return s.WithExtra(key, strconv.Itoa(n))
}

// ID returns the span ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits a single instant event under parent, such as a goto jump.
func Point(t Tracer, scope Scope, name string, parent uint64, detail string) {
	if !active(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      getGoroutineID(),
		Name:     name,
		Detail:   detail,
	})
}
