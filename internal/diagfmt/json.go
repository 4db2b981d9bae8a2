package diagfmt

import (
	"encoding/json"
	"io"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	Row       uint32 `json:"row,omitempty"`
	Col       uint32 `json:"col,omitempty"`
	Length    uint32 `json:"length,omitempty"`
}

type NoteJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Title    string        `json:"title,omitempty"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
	Fixes    []FixJSON     `json:"fixes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	f := fs.Get(span.File)
	loc := LocationJSON{
		File:      formatPath(fs, f, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		c := f.Coord(span)
		loc.Row, loc.Col, loc.Length = c.Row, c.Col, c.Length
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	limit := len(items)
	if opts.Max > 0 && opts.Max < limit {
		limit = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, limit)
	for i := range limit {
		d := &items[i]
		out := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
		}
		if knownSpan(fs, d.Primary) {
			loc := makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions)
			out.Location = &loc
		}

		if opts.IncludeNotes {
			for _, note := range d.Notes {
				n := NoteJSON{Message: note.Msg}
				if !isDetached(note.Span) && knownSpan(fs, note.Span) {
					loc := makeLocation(note.Span, fs, opts.PathMode, opts.IncludePositions)
					n.Location = &loc
				}
				out.Notes = append(out.Notes, n)
			}
		}

		if opts.IncludeFixes {
			for _, fix := range d.Fixes {
				fj := FixJSON{Title: fix.Title}
				for _, edit := range fix.Edits {
					if !knownSpan(fs, edit.Span) {
						continue
					}
					ej := FixEditJSON{
						Location: makeLocation(edit.Span, fs, opts.PathMode, opts.IncludePositions),
						NewText:  edit.NewText,
					}
					if opts.IncludePreviews {
						if preview, err := buildFixEditPreview(fs, edit); err == nil {
							ej.BeforeLines = preview.before
							ej.AfterLines = preview.after
						}
					}
					fj.Edits = append(fj.Edits, ej)
				}
				out.Fixes = append(out.Fixes, fj)
			}
		}

		diagnostics = append(diagnostics, out)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Dropped:     bag.Dropped() + len(items) - limit,
	}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
