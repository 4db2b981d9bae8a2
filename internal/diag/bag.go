package diag

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"fortio.org/safecast"

	"pixelwalle/internal/source"
)

// Bag collects diagnostics up to a fixed limit.
type Bag struct {
	items   []Diagnostic
	max     uint16
	dropped int
	// droppedErrors keeps HasErrors honest once the limit is reached.
	droppedErrors int
}

// NewBag creates a bag holding at most max diagnostics.
// Values outside 1..65535 are clamped.
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil {
		limit = math.MaxUint16
		if max <= 0 {
			limit = 1
		}
	}
	if limit == 0 {
		limit = 1
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(int(limit), 64)),
		max:   limit,
	}
}

// Add appends d unless the limit is reached.
// It returns false when d was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		b.dropped++
		if d.Severity == SevError {
			b.droppedErrors++
		}
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// Dropped counts diagnostics rejected because of the limit.
func (b *Bag) Dropped() int {
	return b.dropped
}

// HasErrors reports whether any diagnostic is an error, counting
// errors dropped because of the limit.
func (b *Bag) HasErrors() bool {
	return b.droppedErrors > 0 || b.Count(SevError) > 0
}

// DroppedErrors counts error diagnostics rejected because of the limit.
func (b *Bag) DroppedErrors() int {
	return b.droppedErrors
}

// HasWarnings reports whether any diagnostic is a warning or worse.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics with exactly severity sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the internal slice. Callers must not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends all diagnostics of other, growing the limit if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	total := len(b.items) + len(other.items)
	if total > int(b.max) {
		if limit, err := safecast.Conv[uint16](total); err == nil {
			b.max = limit
		} else {
			b.max = math.MaxUint16
		}
	}
	for _, d := range other.items {
		b.Add(d)
	}
	b.dropped += other.dropped
	b.droppedErrors += other.droppedErrors
}

// Sort orders by file, start, end, severity (desc) and code
// so output is deterministic. Within one file byte order equals (row, col) order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops diagnostics repeating an earlier Code+Primary+Message.
func (b *Bag) Dedup() {
	seen := make(map[string]struct{}, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		key := fmt.Sprintf("%d:%s:%s", d.Code, d.Primary.String(), d.Message)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, d)
	}
	b.items = kept
}

// Problems flattens the bag into display records ordered by (row, col).
func (b *Bag) Problems(fs *source.FileSet) []Problem {
	out := make([]Problem, 0, len(b.items))
	for _, d := range b.items {
		out = append(out, Problem{
			Severity: d.Severity,
			Code:     d.Code,
			Coord:    fs.Coord(d.Primary),
			Message:  d.Message,
		})
	}
	slices.SortStableFunc(out, func(a, c Problem) int {
		switch {
		case a.Coord.Less(c.Coord):
			return -1
		case c.Coord.Less(a.Coord):
			return 1
		}
		return 0
	})
	return out
}
