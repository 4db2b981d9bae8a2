package ast

import (
	"pixelwalle/internal/source"
)

type Hints struct{ Stmts, Exprs uint }

// Builder owns every node of one parsed script plus the identifier interner.
type Builder struct {
	Stmts   *Stmts
	Exprs   *Exprs
	Strings *source.Interner
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Strings: strings,
	}
}

// Name returns the text of an interned identifier.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}

// Statements returns the flat statement list of a block root.
func (b *Builder) Statements(root StmtID) []StmtID {
	if blk, ok := b.Stmts.Block(root); ok {
		return blk.Stmts
	}
	return nil
}
