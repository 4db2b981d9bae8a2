package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat emits a driver-scope event every interval until stopped. In a
// trace, heartbeats after an "execute" begin with no matching end point at
// a script stuck in a goto loop.
type Heartbeat struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartHeartbeat returns nil when tracing is off or interval is not positive;
// Stop on a nil Heartbeat is a no-op.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{}), done: make(chan struct{})}
	go h.run(tracer, interval)
	return h
}

func (h *Heartbeat) run(tracer Tracer, interval time.Duration) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	beats := 0
	for {
		select {
		case now := <-ticker.C:
			beats++
			tracer.Emit(&Event{
				Time:   now,
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    getGoroutineID(),
				Name:   "heartbeat",
				Detail: fmt.Sprintf("#%d, %s since start", beats, now.Sub(start).Round(time.Millisecond)),
			})
		case <-h.stop:
			return
		}
	}
}

// Stop ends the heartbeat and waits for its goroutine. It is safe to call twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
