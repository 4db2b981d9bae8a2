package driver

import (
	"pixelwalle/internal/diag"
	"pixelwalle/internal/dialect"
	"pixelwalle/internal/source"
)

// reportForeignSyntax adds an info diagnostic for every rejected line that
// reads like Python, Go or C-style code. Only lexical and syntax errors
// mark a line as rejected.
func reportForeignSyntax(file *source.File, bag *diag.Bag, rep diag.Reporter) int {
	var rows []uint32
	for _, d := range bag.Items() {
		if d.Severity != diag.SevError || d.Primary.File != file.ID {
			continue
		}
		if d.Code < diag.LexInfo || d.Code >= diag.SemaInfo || d.Code == diag.SynParseAborted {
			continue
		}
		rows = append(rows, file.Coord(d.Primary).Row)
	}
	if len(rows) == 0 {
		return 0
	}

	findings := dialect.Detect(file, rows)
	for _, f := range findings {
		b := diag.NewReportBuilder(rep, diag.SevInfo, diag.SynForeignSyntax, f.Span, f.Message)
		if f.Example != "" {
			b.WithNote(f.Span, "in PixelWallE: "+f.Example)
		}
		if f.Fix != nil {
			b.WithFix(f.Fix.Title, f.Fix.Edits...)
		}
		b.Emit()
	}
	return len(findings)
}
