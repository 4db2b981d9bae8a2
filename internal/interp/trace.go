package interp

import (
	"fmt"
	"io"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/source"
	"pixelwalle/internal/value"
)

// stepTracer writes one line per executed statement for "run --trace-exec".
// A nil *stepTracer is valid and prints nothing.
type stepTracer struct {
	w     io.Writer
	files *source.FileSet
}

func newStepTracer(w io.Writer, files *source.FileSet) *stepTracer {
	if w == nil {
		return nil
	}
	return &stepTracer{w: w, files: files}
}

// stmt traces a statement about to run.
// Format: [step=N] pc=<pc> <kind> <detail> @ <file>:<line>:<col>
func (t *stepTracer) stmt(step, pc int, b *ast.Builder, id ast.StmtID, st *ast.Stmt) {
	if t == nil {
		return
	}
	fmt.Fprintf(t.w, "[step=%d] pc=%d %s @ %s\n", step, pc, t.describe(b, id, st), t.formatSpan(st.Span))
}

// write traces a variable assignment.
func (t *stepTracer) write(name string, v value.Value) {
	if t == nil {
		return
	}
	fmt.Fprintf(t.w, "    write %s = %s\n", name, formatValue(v))
}

func (t *stepTracer) describe(b *ast.Builder, id ast.StmtID, st *ast.Stmt) string {
	switch st.Kind {
	case ast.StmtAssign:
		data, _ := b.Stmts.Assign(id)
		return "assign " + b.Name(data.Name)
	case ast.StmtLabel:
		data, _ := b.Stmts.Label(id)
		return "label " + b.Name(data.Name)
	case ast.StmtGoto:
		data, _ := b.Stmts.Goto(id)
		if data.Cond.IsValid() {
			return "goto " + b.Name(data.Label) + " (conditional)"
		}
		return "goto " + b.Name(data.Label)
	case ast.StmtAction:
		data, _ := b.Stmts.Action(id)
		return fmt.Sprintf("action %s/%d", data.Op, len(data.Args))
	default:
		return st.Kind.String()
	}
}

func (t *stepTracer) formatSpan(span source.Span) string {
	if t.files == nil {
		return span.String()
	}
	f := t.files.Get(span.File)
	if f == nil {
		return span.String()
	}
	start, _ := t.files.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", f.Path, start.Line, start.Col)
}

func formatValue(v value.Value) string {
	if v.Kind == value.KindString {
		return fmt.Sprintf("%q", v.Str)
	}
	return v.String()
}
