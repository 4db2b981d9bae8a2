package env_test

import (
	"testing"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/env"
	"pixelwalle/internal/source"
	"pixelwalle/internal/value"
)

func TestRebuildLabels(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	a := b.Strings.Intern("a")
	c := b.Strings.Intern("c")
	x := b.Strings.Intern("x")
	one := b.Exprs.NewIntLiteral(source.Span{}, 1)

	stmts := []ast.StmtID{
		b.Stmts.NewLabel(source.Span{}, a),
		b.Stmts.NewAssign(source.Span{}, source.Span{}, x, one),
		b.Stmts.NewLabel(source.Span{}, c),
		b.Stmts.NewLabel(source.Span{}, a),
	}

	ctx := env.New()
	ctx.Labels[b.Strings.Intern("stale")] = 42
	dups := ctx.RebuildLabels(b, stmts)

	if len(ctx.Labels) != 2 {
		t.Fatalf("labels = %v", ctx.Labels)
	}
	if idx, ok := ctx.LabelIndex(a); !ok || idx != 0 {
		t.Fatalf("a -> %d, %v", idx, ok)
	}
	if idx, ok := ctx.LabelIndex(c); !ok || idx != 2 {
		t.Fatalf("c -> %d, %v", idx, ok)
	}
	if len(dups) != 1 || dups[0].Stmt != stmts[3] || dups[0].First != stmts[0] {
		t.Fatalf("dups = %+v", dups)
	}
}

func TestJumpStateMachine(t *testing.T) {
	ctx := env.New()
	if ctx.State != env.Running {
		t.Fatalf("initial state = %v", ctx.State)
	}
	if _, ok := ctx.TakeJump(); ok {
		t.Fatalf("no jump pending")
	}
	ctx.RequestJump(7)
	if ctx.State != env.Jumping {
		t.Fatalf("state = %v", ctx.State)
	}
	target, ok := ctx.TakeJump()
	if !ok || target != 7 || ctx.State != env.Running {
		t.Fatalf("TakeJump = %d, %v, state %v", target, ok, ctx.State)
	}
}

func TestVariablesRetype(t *testing.T) {
	strings := source.NewInterner()
	x := strings.Intern("x")
	ctx := env.New()
	ctx.Assign(x, value.MakeInt(1))
	ctx.Assign(x, value.MakeString("one"))
	got, ok := ctx.Lookup(x)
	if !ok || !got.Equal(value.MakeString("one")) {
		t.Fatalf("x = %v", got)
	}
	if names := ctx.SortedNames(strings); len(names) != 1 || names[0] != "x" {
		t.Fatalf("names = %v", names)
	}
	ctx.Reset()
	if _, ok := ctx.Lookup(x); ok || len(ctx.Labels) != 0 {
		t.Fatalf("Reset left state behind")
	}
}
