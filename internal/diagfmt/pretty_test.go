package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/art/test.pw", []byte("x <- $\n"))
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexInvalidChar, source.Span{File: fileID, Start: 5, End: 6}, "Invalid character '$'."))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/art/test.pw:1:6"},
		{name: "Relative path", mode: PathModeRelative, contains: "art/test.pw:1:6"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.pw:1:6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1001", "Invalid character"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.pw", []byte("Spawn(0, 0)\nn <- foo + 1\n"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SemaUndeclaredVar, source.Span{File: fileID, Start: 17, End: 20}, "'foo' not declared."))

	tests := []struct {
		name    string
		context int8
		want    string
	}{
		{
			name:    "no context",
			context: 0,
			want:    "test.pw:2:6: ERROR SEM3001: 'foo' not declared.\n 2 | n <- foo + 1\n   |      ^~~\n",
		},
		{
			name:    "one line around",
			context: 1,
			want:    "test.pw:2:6: ERROR SEM3001: 'foo' not declared.\n 1 | Spawn(0, 0)\n 2 | n <- foo + 1\n   |      ^~~\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: tt.context, PathMode: PathModeBasename})
			if got := buf.String(); got != tt.want {
				t.Fatalf("got:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestPrettyCaretWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("Print(\"日本\" + q)")
	fileID := fs.AddVirtual("wide.pw", content)
	start := uint32(bytes.IndexByte(content, 'q'))

	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.SemaUndeclaredVar, source.Span{File: fileID, Start: start, End: start + 1}, "'q' not declared."))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[0], "wide.pw:1:14:") {
		t.Fatalf("header = %q", lines[0])
	}
	// 日本 занимает четыре колонки
	want := "   | " + strings.Repeat(" ", 15) + "^"
	if lines[2] != want {
		t.Fatalf("caret line = %q, want %q", lines[2], want)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.pw", []byte("count <- 1\nPrint(cuont)\n"))
	span := source.Span{File: fileID, Start: 17, End: 22}

	d := diag.NewError(diag.SemaUndeclaredVar, span, "'cuont' not declared.").
		WithNote(span, "did you mean 'count'?").
		WithNote(source.Span{}, "checked before the first run").
		WithFix("replace with 'count'", diag.FixEdit{Span: span, NewText: "count"})
	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()

	for _, want := range []string{
		"note: test.pw:2:7: did you mean 'count'?",
		"  note: checked before the first run\n",
		"fix #1: replace with 'count'",
		"edit test.pw:2:7 apply=\"count\"",
		"preview:",
		"- Print(cuont)",
		"+ Print(count)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") || strings.Contains(buf.String(), "fix #") {
		t.Fatalf("notes and fixes should be hidden:\n%s", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.pw", []byte("x\n"))
	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.SemaUndeclaredVar, source.Span{File: fileID, Start: 0, End: 1}, "'x' not declared."))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{Color: false})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes: %q", colored.String())
	}
}

func TestPrettyDropped(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("d.pw", []byte("a\nb\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SemaUndeclaredVar, source.Span{File: fileID, Start: 0, End: 1}, "'a' not declared."))
	bag.Add(diag.NewError(diag.SemaUndeclaredVar, source.Span{File: fileID, Start: 2, End: 3}, "'b' not declared."))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if !strings.Contains(buf.String(), "... 1 more diagnostics not shown") {
		t.Fatalf("missing dropped line:\n%s", buf.String())
	}
}
