package main

import (
	"fmt"
	"io"
	"os"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/diagfmt"
	"pixelwalle/internal/observ"
	"pixelwalle/internal/source"
)

// diagView selects how a bag is printed.
type diagView struct {
	format    string // pretty|short|json
	color     bool
	withNotes bool
	fixes     bool
	preview   bool
	pathMode  diagfmt.PathMode
}

func validDiagFormat(format string) error {
	switch format {
	case "pretty", "short", "json":
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// printDiagnostics writes bag in the selected format. Empty bags print
// nothing except in JSON mode, where an empty list is still emitted.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, view diagView) error {
	switch view.format {
	case "pretty":
		if bag.Len() == 0 && bag.Dropped() == 0 {
			return nil
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:       view.color,
			Context:     2,
			PathMode:    view.pathMode,
			ShowNotes:   view.withNotes,
			ShowFixes:   view.fixes || view.preview,
			ShowPreview: view.preview,
		})
		return nil
	case "short":
		if out := diag.FormatShortDiagnostics(bag.Items(), fs, view.withNotes); out != "" {
			_, err := fmt.Fprintln(w, out)
			return err
		}
		return nil
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         view.pathMode,
			IncludeNotes:     view.withNotes,
			IncludeFixes:     view.fixes || view.preview,
			IncludePreviews:  view.preview,
		})
	default:
		return fmt.Errorf("unknown format: %s", view.format)
	}
}

// printStderrDiagnostics is the pretty rendering used by commands whose
// stdout carries something else (tokens, AST, program output).
func printStderrDiagnostics(s settings, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     s.useColor(os.Stderr),
		Context:   2,
		PathMode:  s.pathMode,
		ShowNotes: true,
	})
}

func printTimings(w io.Writer, s settings, report observ.Report) {
	if !s.timings || s.quiet {
		return
	}
	fmt.Fprint(w, report.String())
}
