package diag

import (
	"testing"

	"pixelwalle/internal/source"
)

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexInvalidChar, "LEX1001"},
		{SynUnclosedParen, "SYN2002"},
		{SemaUndeclaredVar, "SEM3001"},
		{RunOutOfBounds, "RUN4001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if got := SemaDuplicateLabel.String(); got != "[SEM3002]: Duplicate label" {
		t.Errorf("String() = %q", got)
	}
	if Code(3999).Title() != "Unknown error" {
		t.Errorf("unknown code title = %q", Code(3999).Title())
	}
}

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	b.Add(New(SevWarning, LexInvalidChar, source.Span{}, "w"))
	if b.HasErrors() || !b.HasWarnings() {
		t.Fatal("warning-only bag misreported")
	}
	b.Add(NewError(SemaUndeclaredVar, source.Span{}, "e"))
	if ok := b.Add(NewError(SemaUndeclaredVar, source.Span{}, "dropped")); ok {
		t.Fatal("Add beyond limit must fail")
	}
	if b.Len() != 2 || b.Dropped() != 1 || !b.HasErrors() || b.Cap() != 2 {
		t.Fatalf("len=%d dropped=%d", b.Len(), b.Dropped())
	}
	if b.Count(SevError) != 1 || b.Count(SevWarning) != 1 {
		t.Fatal("Count mismatch")
	}
}

func TestBagDroppedErrorsStillCount(t *testing.T) {
	b := NewBag(2)
	b.Add(New(SevWarning, LexInvalidChar, source.Span{}, "w1"))
	b.Add(New(SevWarning, LexInvalidChar, source.Span{}, "w2"))
	b.Add(New(SevWarning, LexInvalidChar, source.Span{}, "w3"))
	if b.HasErrors() || b.DroppedErrors() != 0 {
		t.Fatal("dropped warnings must not count as errors")
	}
	b.Add(NewError(SemaUndeclaredVar, source.Span{}, "e"))
	if !b.HasErrors() || b.DroppedErrors() != 1 || b.Count(SevError) != 0 {
		t.Fatalf("dropped error lost: has=%v dropped=%d", b.HasErrors(), b.DroppedErrors())
	}

	merged := NewBag(4)
	merged.Merge(b)
	if !merged.HasErrors() {
		t.Fatal("Merge must carry dropped errors")
	}
}

func TestBagSortDedupProblems(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("p.pw", []byte("a <- b\nGoTo[x]\n"))

	b := NewBag(10)
	r := BagReporter{Bag: b}
	r.Report(SemaUndeclaredLabel, SevError, source.Span{File: id, Start: 12, End: 13}, "Label 'x' not declared.", nil, nil)
	r.Report(SemaUndeclaredVar, SevError, source.Span{File: id, Start: 5, End: 6}, "'b' not declared.", nil, nil)
	r.Report(SemaUndeclaredVar, SevError, source.Span{File: id, Start: 5, End: 6}, "'b' not declared.", nil, nil)

	b.Dedup()
	b.Sort()
	ps := b.Problems(fs)
	if len(ps) != 2 {
		t.Fatalf("got %d problems, want 2", len(ps))
	}
	if ps[0].Coord != (source.Coord{Row: 1, Col: 6, Length: 1}) {
		t.Errorf("first coord = %+v", ps[0].Coord)
	}
	if ps[1].Coord.Row != 2 || ps[1].Coord.Col != 6 {
		t.Errorf("second coord = %+v", ps[1].Coord)
	}
	if got := ps[0].String(); got != "ERROR 1:6 'b' not declared." {
		t.Errorf("Problem.String() = %q", got)
	}
}

func TestBufferReporter(t *testing.T) {
	var buf BufferReporter
	ReportError(&buf, SynUnclosedParen, source.Span{}, "')' expected.").Emit()
	if buf.Len() != 1 {
		t.Fatalf("Len = %d", buf.Len())
	}

	b := NewBag(4)
	buf.FlushTo(BagReporter{Bag: b})
	if buf.Len() != 0 || b.Len() != 1 {
		t.Fatalf("after flush buf=%d bag=%d", buf.Len(), b.Len())
	}
	if b.Items()[0].Message != "')' expected." {
		t.Errorf("message = %q", b.Items()[0].Message)
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(4)
	rb := ReportError(BagReporter{Bag: b}, SemaUndeclaredVar, source.Span{}, "'y' not declared.").
		WithNote(source.Span{}, "did you mean 'x'?").
		WithFix("rename to 'x'", FixEdit{NewText: "x"})
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("Emit twice produced %d diagnostics", b.Len())
	}
	d := b.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 {
		t.Fatalf("notes=%d fixes=%d", len(d.Notes), len(d.Fixes))
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(4)
	r := NewDedupReporter(BagReporter{Bag: b})
	sp := source.Span{Start: 1, End: 2}
	r.Report(SemaArity, SevError, sp, "Missing arguments at 'Draw'.", nil, nil)
	r.Report(SemaArity, SevError, sp, "Missing arguments at 'Draw'.", nil, nil)
	r.Report(SemaArity, SevError, sp, "Missing arguments at 'Fill'.", nil, nil)
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("testdata/sample.pw", []byte("a\nb\n"))

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     LexInvalidChar,
			Message:  "Invalid character '\t'.",
			Primary:  source.Span{File: id, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SemaUndeclaredVar,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: id, Start: 0, End: 1},
			Notes:    []Note{{Span: source.Span{File: id, Start: 2, End: 3}, Msg: "note line"}},
		},
	}

	want := "error SEM3001 testdata/sample.pw:1:1 first line second\n" +
		"warning LEX1001 testdata/sample.pw:2:1 Invalid character '\t'.\n" +
		"note SEM3001 testdata/sample.pw:2:1 note line"
	if got := FormatShortDiagnostics(diags, fs, true); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}
