package fix

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes the new contents without writing files.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID          string
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
	EditCount   int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
	// Content is the new file content as written (or as it would be in a dry run).
	Content []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

// Candidate is a fix together with the diagnostic that offered it.
type Candidate struct {
	ID    string
	Diag  diag.Diagnostic
	Fix   diag.Fix
	order int
}

// Candidates lists every fix offered by diagnostics in application order.
// IDs have the form CODE@row:col, with a "#n" suffix for the second and later
// fix of one diagnostic.
func Candidates(fs *source.FileSet, diagnostics []diag.Diagnostic) ([]Candidate, []SkippedFix) {
	cands := make([]Candidate, 0)
	skips := make([]SkippedFix, 0)
	seen := make(map[string]bool)

	order := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			id := fixID(fs, d, idx)
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: id, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if seen[id] {
				skips = append(skips, SkippedFix{ID: id, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[id] = true
			cands = append(cands, Candidate{ID: id, Diag: d, Fix: f, order: order})
			order++
		}
	}
	sortCandidates(cands)
	return cands, skips
}

func fixID(fs *source.FileSet, d diag.Diagnostic, idx int) string {
	id := d.Code.ID()
	if fs != nil && int(d.Primary.File) < fs.Len() {
		c := fs.Get(d.Primary.File).Coord(d.Primary)
		id = fmt.Sprintf("%s@%d:%d", id, c.Row, c.Col)
	} else {
		id = fmt.Sprintf("%s@%d", id, d.Primary.Start)
	}
	if idx > 0 {
		id = fmt.Sprintf("%s#%d", id, idx+1)
	}
	return id
}

// Apply collects fixes from diagnostics, selects a subset according to opts, and applies them.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
	}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates, buildSkips := Candidates(fs, diagnostics)
	result.Skipped = append(result.Skipped, buildSkips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skippedDuringApply, changes, err := applyCandidates(fs, selected, opts.DryRun)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, skippedDuringApply...)
	result.FileChanges = append(result.FileChanges, changes...)

	if err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// sortCandidates orders by file, span start, span end, then insertion order.
func sortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].Diag, candidates[j].Diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return candidates[i].order < candidates[j].order
	})
}

func selectCandidates(candidates []Candidate, opts ApplyOptions) ([]Candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.ID == opts.TargetID {
				return []Candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		return candidates, nil
	case ApplyModeOnce:
		return candidates[:1], nil
	default:
		return nil, nil
	}
}

type editBucket struct {
	buf     []byte
	applied []diag.FixEdit // в координатах исходного файла, по возрастанию
	count   int
}

func applyCandidates(fs *source.FileSet, selected []Candidate, dryRun bool) ([]AppliedFix, []SkippedFix, []FileChange, error) {
	files := make(map[source.FileID]*editBucket)
	applied := make([]AppliedFix, 0, len(selected))
	skipped := make([]SkippedFix, 0)
	baseDir := fs.BaseDir()

	for _, cand := range selected {
		staged := make(map[source.FileID]*editBucket)
		totalEdits := 0
		var skipReason string

		for fileID, edits := range groupEditsByFile(cand.Fix.Edits) {
			file := fs.Get(fileID)
			if !dryRun && file.Flags&source.FileVirtual != 0 {
				skipReason = "target file is virtual"
				break
			}
			prev := files[fileID]
			if prev == nil {
				prev = &editBucket{buf: file.Content}
			}
			if conflictsWithExisting(prev.applied, edits) {
				skipReason = fmt.Sprintf("conflicts with previously applied edits in %s", file.FormatPath("auto", baseDir))
				break
			}

			working := append([]byte(nil), prev.buf...)
			done := append([]diag.FixEdit(nil), prev.applied...)
			// с конца, чтобы смещения ещё не применённых правок не менялись
			sort.SliceStable(edits, func(i, j int) bool {
				if edits[i].Span.Start == edits[j].Span.Start {
					return edits[i].Span.End > edits[j].Span.End
				}
				return edits[i].Span.Start > edits[j].Span.Start
			})
			for _, edit := range edits {
				start := int(edit.Span.Start) + cumulativeDelta(done, int(edit.Span.Start))
				end := int(edit.Span.End) + cumulativeDelta(done, int(edit.Span.End))
				if start < 0 || end < start || end > len(working) {
					skipReason = "edit span out of range"
					break
				}
				suffix := append([]byte(nil), working[end:]...)
				working = append(append(working[:start], edit.NewText...), suffix...)
				done = insertEditSorted(done, edit)
			}
			if skipReason != "" {
				break
			}
			staged[fileID] = &editBucket{buf: working, applied: done, count: prev.count + len(edits)}
			totalEdits += len(edits)
		}

		if skipReason != "" {
			skipped = append(skipped, SkippedFix{ID: cand.ID, Title: cand.Fix.Title, Reason: skipReason})
			continue
		}
		for fileID, bucket := range staged {
			files[fileID] = bucket
		}
		applied = append(applied, AppliedFix{
			ID:          cand.ID,
			Title:       cand.Fix.Title,
			Code:        cand.Diag.Code,
			Message:     cand.Diag.Message,
			PrimaryPath: fs.Get(cand.Diag.Primary.File).FormatPath("auto", baseDir),
			EditCount:   totalEdits,
		})
	}

	if len(applied) == 0 {
		return applied, skipped, nil, nil
	}

	fileChanges := make([]FileChange, 0, len(files))
	for fileID, bucket := range files {
		file := fs.Get(fileID)
		content := restoreEncoding(file, bucket.buf)
		if !dryRun {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(file.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, content, mode); err != nil {
				return applied, skipped, fileChanges, fmt.Errorf("write %s: %w", file.Path, err)
			}
		}
		fileChanges = append(fileChanges, FileChange{
			Path:      file.FormatPath("relative", baseDir),
			EditCount: bucket.count,
			Content:   content,
		})
	}
	sort.SliceStable(fileChanges, func(i, j int) bool {
		return fileChanges[i].Path < fileChanges[j].Path
	})
	return applied, skipped, fileChanges, nil
}

// restoreEncoding puts back the BOM and CRLF line endings removed on load.
func restoreEncoding(file *source.File, buf []byte) []byte {
	out := buf
	if file.Flags&source.FileNormalizedCRLF != 0 {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	if file.Flags&source.FileHadBOM != 0 {
		out = append([]byte{0xEF, 0xBB, 0xBF}, out...)
	}
	return out
}

func conflictsWithExisting(existing []diag.FixEdit, edits []diag.FixEdit) bool {
	for _, prev := range existing {
		for _, cand := range edits {
			if spansConflict(prev, cand) {
				return true
			}
		}
	}
	return false
}

// spansConflict reports whether two edits overlap as half-open intervals.
// Two insertions never conflict; an insertion conflicts with a replacement
// that strictly contains its position.
func spansConflict(a, b diag.FixEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

func groupEditsByFile(edits []diag.FixEdit) map[source.FileID][]diag.FixEdit {
	buckets := make(map[source.FileID][]diag.FixEdit)
	for _, edit := range edits {
		buckets[edit.Span.File] = append(buckets[edit.Span.File], edit)
	}
	return buckets
}

func cumulativeDelta(edits []diag.FixEdit, pos int) int {
	delta := 0
	for _, e := range edits {
		eStart := int(e.Span.Start)
		if eStart > pos {
			break
		}
		eEnd := int(e.Span.End)
		if eEnd <= pos {
			delta += len(e.NewText) - (eEnd - eStart)
		}
	}
	return delta
}

func insertEditSorted(edits []diag.FixEdit, edit diag.FixEdit) []diag.FixEdit {
	insertIdx := sort.Search(len(edits), func(i int) bool {
		if edits[i].Span.Start == edit.Span.Start {
			return edits[i].Span.End >= edit.Span.End
		}
		return edits[i].Span.Start > edit.Span.Start
	})
	edits = append(edits, diag.FixEdit{})
	copy(edits[insertIdx+1:], edits[insertIdx:])
	edits[insertIdx] = edit
	return edits
}
