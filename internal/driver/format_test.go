package driver_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/driver"
)

func TestFormatPaths(t *testing.T) {
	dir := t.TempDir()
	messy := writeScript(t, dir, "a.pw", "Spawn( 0,0 )\r\nx<-(1+2)*3\r\n")
	clean := writeScript(t, dir, "sub/b.pw", "Spawn(0, 0)\n")
	broken := writeScript(t, dir, "c.pw", "x <- (1\n")
	writeScript(t, dir, "notes.txt", "not a script")

	results, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{Check: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %+v", results)
	}
	byPath := make(map[string]driver.FormatResult)
	for _, r := range results {
		byPath[r.Path] = r
	}
	if !byPath[messy].Changed || byPath[clean].Changed {
		t.Fatalf("check results = %+v", results)
	}
	if err := byPath[broken].Err; !errors.Is(err, driver.ErrParseErrors) {
		t.Fatalf("broken err = %v", err)
	}

	results, err = driver.FormatPaths(context.Background(), []string{messy}, driver.FormatOptions{Stdout: true})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(results[0].Formatted), "Spawn(0, 0)\nx <- (1 + 2) * 3\n"; got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
	if data, _ := os.ReadFile(messy); string(data) == "Spawn(0, 0)\nx <- (1 + 2) * 3\n" {
		t.Fatal("stdout mode rewrote the file")
	}

	if _, err := driver.FormatPaths(context.Background(), []string{messy, messy}, driver.FormatOptions{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(messy)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Spawn(0, 0)\nx <- (1 + 2) * 3\n" {
		t.Fatalf("rewritten = %q", data)
	}
}

func TestFormatPathsNoScripts(t *testing.T) {
	if _, err := driver.FormatPaths(context.Background(), []string{t.TempDir()}, driver.FormatOptions{}); err == nil {
		t.Fatal("expected error for empty directory")
	}
}

func TestForeignSyntaxHints(t *testing.T) {
	src := []byte("Spawn(0, 0)\nx = 5\nPrint(x)\n")

	res, err := driver.CheckSource(context.Background(), "hint.pw", src, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var hint *diag.Diagnostic
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SynForeignSyntax {
			hint = &d
			break
		}
	}
	if hint == nil {
		t.Fatalf("no foreign syntax hint in %+v", res.Bag.Items())
	}
	if hint.Severity != diag.SevInfo || len(hint.Fixes) != 1 {
		t.Fatalf("hint = %+v", hint)
	}
	if len(hint.Notes) != 1 || hint.Notes[0].Msg != "in PixelWallE: x <- 5" {
		t.Fatalf("notes = %+v", hint.Notes)
	}

	res, err = driver.CheckSource(context.Background(), "hint.pw", src, driver.Options{NoSuggestions: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SynForeignSyntax {
			t.Fatalf("hint reported with suggestions off: %+v", d)
		}
	}
}
