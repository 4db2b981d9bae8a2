package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed script:
// 1) the root span stays within the file content
// 2) every statement span is non-empty, inside the root span and after the previous one
// 3) every expression span is inside the span of the node that owns it
func CheckSpanInvariants(b *ast.Builder, root ast.StmtID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	blk, ok := b.Stmts.Block(root)
	if !ok {
		return fmt.Errorf("root %d is not a block", root)
	}
	rootSpan := b.Stmts.Get(root).Span

	// 1) root span sanity
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if rootSpan.End > lenContent {
		return fmt.Errorf("root span end beyond content: %d > %d", rootSpan.End, lenContent)
	}
	if len(blk.Stmts) > 0 && rootSpan.File != sf.ID {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", rootSpan.File, sf.ID)
	}

	// 2) statements are ordered and inside the root
	var prevEnd uint32
	for i, id := range blk.Stmts {
		stmt := b.Stmts.Get(id)
		if stmt == nil {
			return fmt.Errorf("nil statement for id=%d", id)
		}
		sp := stmt.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty statement span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("statement span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if !within(sp, rootSpan) {
			return fmt.Errorf("statement span %v is outside root span %v", sp, rootSpan)
		}
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("statement %d overlaps its predecessor: %v", i, sp)
		}
		prevEnd = sp.End

		// 3) expressions
		for _, e := range stmtExprs(b, id) {
			if err := checkExpr(b, e, sp); err != nil {
				return fmt.Errorf("statement %d: %w", i, err)
			}
		}
	}
	return nil
}

func within(inner, outer source.Span) bool {
	return inner.Start >= outer.Start && inner.End <= outer.End
}

func stmtExprs(b *ast.Builder, id ast.StmtID) []ast.ExprID {
	switch b.Stmts.Get(id).Kind {
	case ast.StmtAssign:
		data, _ := b.Stmts.Assign(id)
		return []ast.ExprID{data.Value}
	case ast.StmtGoto:
		data, _ := b.Stmts.Goto(id)
		if data.Cond.IsValid() {
			return []ast.ExprID{data.Cond}
		}
	case ast.StmtAction:
		data, _ := b.Stmts.Action(id)
		return data.Args
	case ast.StmtLabel, ast.StmtBlock:
	}
	return nil
}

func checkExpr(b *ast.Builder, id ast.ExprID, parent source.Span) error {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return fmt.Errorf("nil expression for id=%d", id)
	}
	if expr.Span.End <= expr.Span.Start {
		return fmt.Errorf("empty expression span: %v", expr.Span)
	}
	if !within(expr.Span, parent) {
		return fmt.Errorf("expression span %v is outside %v", expr.Span, parent)
	}
	var children []ast.ExprID
	switch expr.Kind {
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		children = []ast.ExprID{data.Left, data.Right}
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		children = []ast.ExprID{data.Operand}
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		children = data.Args
	case ast.ExprVariable, ast.ExprLiteral:
	}
	for _, child := range children {
		if err := checkExpr(b, child, expr.Span); err != nil {
			return err
		}
	}
	return nil
}
