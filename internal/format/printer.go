package format

import (
	"errors"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/source"
)

type Options struct {
	// KeepBlankLines keeps one empty line wherever the source had one or more.
	KeepBlankLines bool
	// GotoKeyword is the jump spelling to print (goto, Goto or GoTo).
	GotoKeyword string
}

func (o Options) withDefaults() Options {
	switch o.GotoKeyword {
	case "goto", "Goto", "GoTo":
	default:
		o.GotoKeyword = "GoTo"
	}
	return o
}

type printer struct {
	builder *ast.Builder
	sf      *source.File
	writer  *Writer
	opt     Options
}

// FormatFile prints the statements under root. The tree must come from a
// parse without errors: skipped lines are not in the tree and would be lost.
func FormatFile(sf *source.File, b *ast.Builder, root ast.StmtID, opt Options) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	if b == nil {
		return nil, errors.New("format: nil builder")
	}
	if _, ok := b.Stmts.Block(root); !ok {
		return nil, errors.New("format: root is not a statement block")
	}

	pr := printer{builder: b, sf: sf, writer: NewWriter(sf), opt: opt.withDefaults()}
	pr.printStatements(b.Statements(root))
	return pr.writer.Bytes(), nil
}

func (p *printer) printStatements(stmts []ast.StmtID) {
	prevRow := 0
	for i, id := range stmts {
		stmt := p.builder.Stmts.Get(id)
		row := int(p.sf.Coord(stmt.Span).Row)
		if i > 0 && p.opt.KeepBlankLines && row > prevRow+1 {
			p.writer.BlankLine()
		}
		p.printStmt(id)
		p.writer.Newline()
		prevRow = row
	}
}

func (p *printer) printStmt(id ast.StmtID) {
	b := p.builder
	w := p.writer
	switch b.Stmts.Get(id).Kind {
	case ast.StmtAssign:
		data, _ := b.Stmts.Assign(id)
		w.WriteString(b.Name(data.Name))
		w.WriteString(" <- ")
		p.printExpr(data.Value)
	case ast.StmtLabel:
		data, _ := b.Stmts.Label(id)
		w.WriteString(b.Name(data.Name))
	case ast.StmtGoto:
		data, _ := b.Stmts.Goto(id)
		w.WriteString(p.opt.GotoKeyword)
		w.WriteString("[")
		w.WriteString(b.Name(data.Label))
		w.WriteString("]")
		if data.Cond.IsValid() {
			w.WriteString("(")
			p.printExpr(data.Cond)
			w.WriteString(")")
		}
	case ast.StmtAction:
		data, _ := b.Stmts.Action(id)
		p.printCall(b.Name(data.Name), data.Args)
	case ast.StmtBlock:
		// вложенных блоков парсер не строит
		data, _ := b.Stmts.Block(id)
		p.printStatements(data.Stmts)
	}
}

func (p *printer) printCall(name string, args []ast.ExprID) {
	p.writer.WriteString(name)
	p.writer.WriteString("(")
	for i, arg := range args {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.printExpr(arg)
	}
	p.writer.WriteString(")")
}
