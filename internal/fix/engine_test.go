package fix

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/driver"
	"pixelwalle/internal/source"
)

func replaceDiag(file source.FileID, start, end uint32, text string) diag.Diagnostic {
	span := source.Span{File: file, Start: start, End: end}
	return diag.NewError(diag.SemaUndeclaredVar, span, "undeclared").
		WithFix("replace with '"+text+"'", diag.FixEdit{Span: span, NewText: text})
}

func TestCandidatesIDs(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.pw", []byte("x <- 1\nPrint(y)\n"))
	d := replaceDiag(fileID, 13, 14, "x")
	d = d.WithFix("second", diag.FixEdit{Span: d.Primary, NewText: "z"})
	empty := diag.NewError(diag.SemaUndeclaredLabel, source.Span{File: fileID}, "no edits")
	empty.Fixes = []diag.Fix{{Title: "nothing"}}

	cands, skips := Candidates(fs, []diag.Diagnostic{d, d, empty})
	if len(cands) != 2 {
		t.Fatalf("candidates = %+v", cands)
	}
	if cands[0].ID != "SEM3001@2:7" || cands[1].ID != "SEM3001@2:7#2" {
		t.Fatalf("ids = %q, %q", cands[0].ID, cands[1].ID)
	}
	reasons := map[string]int{}
	for _, s := range skips {
		reasons[s.Reason]++
	}
	if reasons["duplicate fix id"] != 2 || reasons["fix has no edits"] != 1 {
		t.Fatalf("skips = %+v", skips)
	}
}

func TestApplyDryRun(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.pw", []byte("abc <- 1\nPrint(ab)\nPrint(ac)\n"))
	diags := []diag.Diagnostic{
		replaceDiag(fileID, 15, 17, "abc"),
		replaceDiag(fileID, 25, 27, "abc"),
	}

	tests := []struct {
		name    string
		opts    ApplyOptions
		want    string
		applied int
	}{
		{"once", ApplyOptions{Mode: ApplyModeOnce, DryRun: true}, "abc <- 1\nPrint(abc)\nPrint(ac)\n", 1},
		{"all", ApplyOptions{Mode: ApplyModeAll, DryRun: true}, "abc <- 1\nPrint(abc)\nPrint(abc)\n", 2},
		{"by id", ApplyOptions{Mode: ApplyModeID, TargetID: "SEM3001@3:7", DryRun: true}, "abc <- 1\nPrint(ab)\nPrint(abc)\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Apply(fs, diags, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Applied) != tt.applied || len(res.FileChanges) != 1 {
				t.Fatalf("result = %+v", res)
			}
			if got := string(res.FileChanges[0].Content); got != tt.want {
				t.Fatalf("content = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeID, TargetID: "nope", DryRun: true}); !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v", err)
	}
}

func TestApplySkipsConflicts(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.pw", []byte("Print(abcd)\n"))
	diags := []diag.Diagnostic{
		replaceDiag(fileID, 6, 10, "x"),
		replaceDiag(fileID, 7, 9, "y"),
	}
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Applied) != 1 || len(res.Skipped) != 1 {
		t.Fatalf("result = %+v", res)
	}
	if got := string(res.FileChanges[0].Content); got != "Print(x)\n" {
		t.Fatalf("content = %q", got)
	}
}

func TestApplyRefusesVirtualWrite(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.pw", []byte("Print(a)\n"))
	res, err := Apply(fs, []diag.Diagnostic{replaceDiag(fileID, 6, 7, "b")}, ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) || len(res.Skipped) != 1 || res.Skipped[0].Reason != "target file is virtual" {
		t.Fatalf("res = %+v, err = %v", res, err)
	}
}

func TestApplyCheckerSuggestion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "typo.pw")
	// CRLF сохраняется при записи
	if err := os.WriteFile(path, []byte("counter <- 1\r\nPrint(countr)\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := driver.Check(context.Background(), path, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("expected an undeclared variable error")
	}

	applied, err := Apply(res.FileSet, res.Bag.Items(), ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatal(err)
	}
	if len(applied.Applied) != 1 {
		t.Fatalf("applied = %+v", applied)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "counter <- 1\r\nPrint(counter)\r\n" {
		t.Fatalf("file = %q", got)
	}
}
