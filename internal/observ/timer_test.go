package observ

import (
	"strings"
	"testing"
	"time"
)

// fakeClock advances by step on every read.
func fakeClock(step time.Duration) func() time.Time {
	cur := time.Unix(0, 0)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)

	var events []PhaseEvent
	tm.Observe(func(ev PhaseEvent) { events = append(events, ev) })

	lex := tm.Begin("lex")
	tm.End(lex, "12 tokens")
	tm.Measure("parse", func() string { return "" })

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(r.Phases))
	}
	if r.Phases[0].DurationMS != 2 || r.Phases[0].Note != "12 tokens" {
		t.Fatalf("lex phase = %+v", r.Phases[0])
	}
	if r.TotalMS != 4 {
		t.Fatalf("total = %v, want 4", r.TotalMS)
	}

	want := []PhaseEvent{
		{Name: "lex", Status: PhaseStart},
		{Name: "lex", Status: PhaseEnd, Elapsed: 2 * time.Millisecond},
		{Name: "parse", Status: PhaseStart},
		{Name: "parse", Status: PhaseEnd, Elapsed: 2 * time.Millisecond},
	}
	if len(events) != len(want) {
		t.Fatalf("events = %+v", events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}
}

func TestTimerIgnoresBadIndex(t *testing.T) {
	tm := NewTimer()
	tm.End(3, "x")
	tm.End(-1, "x")
	if got := tm.Report(); len(got.Phases) != 0 {
		t.Fatalf("unexpected phases: %+v", got)
	}

	var nilTimer *Timer
	nilTimer.End(nilTimer.Begin("lex"), "")
	if got := nilTimer.Summary(); !strings.Contains(got, "total") {
		t.Fatalf("summary = %q", got)
	}
}

func TestReportAdd(t *testing.T) {
	var sum Report
	sum.Add(Report{TotalMS: 3, Phases: []PhaseReport{{Name: "lex", DurationMS: 1}, {Name: "check", DurationMS: 2, Note: "ok"}}})
	sum.Add(Report{TotalMS: 5, Phases: []PhaseReport{{Name: "check", DurationMS: 4}, {Name: "execute", DurationMS: 1}}})

	if sum.TotalMS != 8 {
		t.Fatalf("total = %v", sum.TotalMS)
	}
	check, ok := sum.Phase("check")
	if !ok || check.DurationMS != 6 || check.Note != "" {
		t.Fatalf("check = %+v, %v", check, ok)
	}
	if len(sum.Phases) != 3 || sum.Phases[2].Name != "execute" {
		t.Fatalf("phases = %+v", sum.Phases)
	}
}

func TestSummaryLayout(t *testing.T) {
	r := Report{TotalMS: 1.5, Phases: []PhaseReport{{Name: "parse", DurationMS: 1.5, Note: "3 statements"}}}
	want := "timings:\n  parse            1.50 ms  // 3 statements\n  total            1.50 ms\n"
	if got := r.String(); got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}
