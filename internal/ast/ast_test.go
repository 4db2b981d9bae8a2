package ast

import (
	"testing"

	"pixelwalle/internal/builtin"
	"pixelwalle/internal/source"
)

func TestArenaOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatal("empty arena returned a node")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("Allocate = %d, Get = %v", id, a.Get(id))
	}
}

func TestExprAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	sp := source.Span{Start: 0, End: 1}
	one := b.Exprs.NewIntLiteral(sp, 1)
	x := b.Exprs.NewVariable(sp, b.Strings.Intern("x"))
	sum := b.Exprs.NewBinary(sp.Cover(source.Span{Start: 4, End: 5}), ExprBinaryAdd, x, one)
	neg := b.Exprs.NewUnary(sp, ExprUnaryNeg, sum)
	call := b.Exprs.NewCall(sp, sp, b.Strings.Intern("GetActualX"), builtin.GetActualX, nil)

	if lit, ok := b.Exprs.Literal(one); !ok || lit.Kind != LitInt || lit.Int != 1 {
		t.Fatalf("Literal = %+v, %v", lit, ok)
	}
	if _, ok := b.Exprs.Literal(x); ok {
		t.Fatal("Literal accessor accepted a variable")
	}
	if bin, ok := b.Exprs.Binary(sum); !ok || bin.Left != x || bin.Right != one {
		t.Fatalf("Binary = %+v", bin)
	}
	if un, ok := b.Exprs.Unary(neg); !ok || un.Operand != sum || un.Op.Name() != "Negative" {
		t.Fatalf("Unary = %+v", un)
	}
	if c, ok := b.Exprs.Call(call); !ok || c.Op != builtin.GetActualX {
		t.Fatalf("Call = %+v", c)
	}
	if v, ok := b.Exprs.Variable(x); !ok || b.Name(v.Name) != "x" {
		t.Fatal("Variable accessor failed")
	}
	if got := b.Exprs.Get(sum).Span; got != (source.Span{Start: 0, End: 5}) {
		t.Fatalf("binary span = %v", got)
	}
}

func TestStmtAccessorsAndBlock(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	sp := source.Span{}
	loop := b.Strings.Intern("loop")
	lbl := b.Stmts.NewLabel(sp, loop)
	jmp := b.Stmts.NewGoto(sp, sp, loop, NoExprID)
	act := b.Stmts.NewAction(sp, sp, b.Strings.Intern("Draw"), builtin.Draw, nil)
	root := b.Stmts.NewBlock(sp, []StmtID{lbl, act, jmp})

	if got := b.Statements(root); len(got) != 3 || got[2] != jmp {
		t.Fatalf("Statements = %v", got)
	}
	if g, ok := b.Stmts.Goto(jmp); !ok || g.Cond.IsValid() || g.Label != loop {
		t.Fatalf("Goto = %+v", g)
	}
	if _, ok := b.Stmts.Assign(lbl); ok {
		t.Fatal("Assign accessor accepted a label")
	}
	if a, ok := b.Stmts.Action(act); !ok || a.Op != builtin.Draw {
		t.Fatalf("Action = %+v", a)
	}
	if b.Statements(lbl) != nil {
		t.Fatal("Statements of a non-block must be nil")
	}
}

func TestOperatorNames(t *testing.T) {
	tests := []struct {
		op         ExprBinaryOp
		sym, name  string
		arithmetic bool
	}{
		{ExprBinaryAdd, "+", "Add", true},
		{ExprBinaryPow, "**", "Power", true},
		{ExprBinaryMod, "%", "Modulus", true},
		{ExprBinaryLessEq, "<=", "LessOrEqualThan", false},
		{ExprBinaryNotEq, "!=", "NotEqual", false},
		{ExprBinaryOr, "||", "Or", false},
	}
	for _, tt := range tests {
		if tt.op.String() != tt.sym || tt.op.Name() != tt.name || tt.op.IsArithmetic() != tt.arithmetic {
			t.Errorf("%v: got %q %q %v", tt.op, tt.op.String(), tt.op.Name(), tt.op.IsArithmetic())
		}
	}
}
