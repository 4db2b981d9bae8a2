// Package observ measures pipeline phases (lex, parse, check, execute) for
// the --timings flag and the batch progress UI.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration of one pipeline phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus uint8

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// Observer receives phase events as they happen.
type Observer func(PhaseEvent)

// Timer tracks the phases of one script. A nil *Timer ignores every call.
type Timer struct {
	phases   []Phase
	observer Observer
	now      func() time.Time
}

func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 4), now: time.Now}
}

// Observe installs fn as the phase observer; nil removes it.
func (t *Timer) Observe(fn Observer) {
	if t == nil {
		return
	}
	t.observer = fn
}

// Begin starts a phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.phases = append(t.phases, Phase{Name: name, Start: t.now()})
	if t.observer != nil {
		t.observer(PhaseEvent{Name: name, Status: PhaseStart})
	}
	return len(t.phases) - 1
}

// End finishes the phase idx. Unknown indexes are ignored.
func (t *Timer) End(idx int, note string) {
	if t == nil || idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = t.now().Sub(p.Start)
	p.Note = note
	if t.observer != nil {
		t.observer(PhaseEvent{Name: p.Name, Status: PhaseEnd, Elapsed: p.Dur})
	}
}

// Measure runs fn as the phase name; fn returns the phase note.
func (t *Timer) Measure(name string, fn func() string) {
	idx := t.Begin(name)
	note := fn()
	t.End(idx, note)
}

// Summary renders the phases as an aligned table.
func (t *Timer) Summary() string {
	return t.Report().String()
}

// PhaseReport is the serialisable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates the phases of one timer, or of many via Add.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the finished phases.
func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Add sums other into r phase by phase (matched by name, first-seen order).
// Notes are dropped: they describe a single script.
func (r *Report) Add(other Report) {
	for _, p := range other.Phases {
		found := false
		for i := range r.Phases {
			if r.Phases[i].Name == p.Name {
				r.Phases[i].DurationMS += p.DurationMS
				r.Phases[i].Note = ""
				found = true
				break
			}
		}
		if !found {
			r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: p.DurationMS})
		}
	}
	r.TotalMS += other.TotalMS
}

// Phase looks a phase up by name.
func (r Report) Phase(name string) (PhaseReport, bool) {
	for _, p := range r.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return PhaseReport{}, false
}

func (r Report) String() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "  %-12s %8.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-12s %8.2f ms\n", "total", r.TotalMS)
	return b.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
