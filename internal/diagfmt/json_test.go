package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
)

func jsonFixture() (*source.FileSet, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/tmp/art/test.pw", []byte("count <- 1\nPrint(cuont)\n"))
	span := source.Span{File: fileID, Start: 17, End: 22}

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaUndeclaredVar, span, "'cuont' not declared.").
		WithNote(span, "did you mean 'count'?").
		WithNote(source.Span{}, "detached").
		WithFix("replace with 'count'", diag.FixEdit{Span: span, NewText: "count"}))
	bag.Add(diag.New(diag.SevWarning, diag.LexInvalidChar, source.Span{File: fileID, Start: 5, End: 6}, "Invalid character '<'."))
	return fs, bag
}

func decodeOutput(t *testing.T, buf *bytes.Buffer) DiagnosticsOutput {
	t.Helper()
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	return output
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs, bag := jsonFixture()

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	output := decodeOutput(t, &buf)
	if output.Count != 2 || len(output.Diagnostics) != 2 {
		t.Fatalf("count = %d, diagnostics = %d", output.Count, len(output.Diagnostics))
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SEM3001" || d.Title != diag.SemaUndeclaredVar.Title() {
		t.Errorf("header = %s %s %q", d.Severity, d.Code, d.Title)
	}
	if d.Location == nil {
		t.Fatal("missing location")
	}
	if loc := *d.Location; loc.File != "test.pw" || loc.Row != 2 || loc.Col != 7 || loc.Length != 5 || loc.StartByte != 17 {
		t.Errorf("location = %+v", loc)
	}
	if len(d.Notes) != 2 || d.Notes[0].Location == nil || d.Notes[1].Location != nil {
		t.Fatalf("notes = %+v", d.Notes)
	}
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if edit.NewText != "count" {
		t.Errorf("new text = %q", edit.NewText)
	}
	if len(edit.BeforeLines) != 1 || edit.BeforeLines[0] != "Print(cuont)" || edit.AfterLines[0] != "Print(count)" {
		t.Errorf("preview = %v -> %v", edit.BeforeLines, edit.AfterLines)
	}

	if w := output.Diagnostics[1]; w.Severity != "WARNING" || w.Code != "LEX1001" {
		t.Errorf("second = %+v", w)
	}
}

func TestJSONWithoutExtras(t *testing.T) {
	fs, bag := jsonFixture()

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeAbsolute}); err != nil {
		t.Fatal(err)
	}
	output := decodeOutput(t, &buf)
	d := output.Diagnostics[0]
	if d.Notes != nil || d.Fixes != nil {
		t.Errorf("notes/fixes leaked: %+v", d)
	}
	if loc := d.Location; loc.Row != 0 || loc.Col != 0 || loc.File != "/tmp/art/test.pw" {
		t.Errorf("location = %+v", *loc)
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs, bag := jsonFixture()

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 1}); err != nil {
		t.Fatal(err)
	}
	output := decodeOutput(t, &buf)
	if output.Count != 1 || output.Dropped != 1 {
		t.Fatalf("count = %d dropped = %d", output.Count, output.Dropped)
	}
}
