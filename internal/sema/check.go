// Package sema is the semantic checker: it resolves labels, checks operand
// kinds and dry-runs every builtin call against the host without touching
// the canvas.
//
// A script passes when Result.Errors is zero; only then may it be executed.
package sema

import (
	"pixelwalle/internal/ast"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/env"
	"pixelwalle/internal/host"
	"pixelwalle/internal/source"
	"pixelwalle/internal/value"
)

// Options configure a semantic pass over a script.
type Options struct {
	Reporter diag.Reporter
	// Host validates builtin calls. Nil means a default 32x32 canvas.
	Host host.Capability
	// NoSuggestions turns off "did you mean" notes.
	NoSuggestions bool
}

// Result stores what the checker learned about the script.
type Result struct {
	// Errors counts error diagnostics, including those raised by the host.
	Errors int
	// ExprKinds is the static kind of every checked expression; Void marks
	// expressions that already produced an error.
	ExprKinds map[ast.ExprID]value.Kind
}

// OK reports whether the script may be executed.
func (r Result) OK() bool { return r.Errors == 0 }

// Check runs both passes over the block rooted at root. ctx is reset and
// left holding the label table and the last assigned kind of every variable.
func Check(b *ast.Builder, root ast.StmtID, ctx *env.Context, opts Options) Result {
	res := Result{ExprKinds: make(map[ast.ExprID]value.Kind)}
	if b == nil || !root.IsValid() {
		return res
	}
	if ctx == nil {
		ctx = env.New()
	}
	h := opts.Host
	if h == nil {
		h = host.NewCanvas(host.Options{})
	}

	rep := &countingReporter{next: opts.Reporter}
	c := &checker{
		b:       b,
		ctx:     ctx,
		host:    h,
		rep:     rep,
		known:   make(map[source.StringID]bool),
		suggest: !opts.NoSuggestions,
		res:     &res,
	}
	ctx.Reset()
	h.StartValidation()
	c.block(b.Statements(root))
	res.Errors = rep.errors
	return res
}

type checker struct {
	b    *ast.Builder
	ctx  *env.Context
	host host.Capability
	rep  *countingReporter
	// known marks variables whose current value is exact; ctx.Variables
	// holds the value (or a zero of the right kind) for every declared one.
	known   map[source.StringID]bool
	suggest bool
	res     *Result
}

// countingReporter forwards everything and counts errors.
type countingReporter struct {
	next   diag.Reporter
	errors int
}

func (r *countingReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	if sev >= diag.SevError {
		r.errors++
	}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}

// block is the two-pass walk: labels first, then everything else in order.
func (c *checker) block(stmts []ast.StmtID) {
	for _, dup := range c.ctx.RebuildLabels(c.b, stmts) {
		c.errorf(diag.SemaDuplicateLabel, c.b.Stmts.Get(dup.Stmt).Span, "'%s' already declared.", c.b.Name(dup.Name)).
			WithNote(c.b.Stmts.Get(dup.First).Span, "first declared here").
			Emit()
	}
	for _, id := range stmts {
		c.stmt(id)
	}
}

func (c *checker) stmt(id ast.StmtID) {
	st := c.b.Stmts.Get(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case ast.StmtAssign:
		data, _ := c.b.Stmts.Assign(id)
		v := c.expr(data.Value)
		c.ctx.Assign(data.Name, v.val)
		c.known[data.Name] = v.known

	case ast.StmtLabel:
		// Сюда можно прыгнуть откуда угодно: точные значения больше не известны.
		clear(c.known)
		c.host.MergePoint()

	case ast.StmtGoto:
		c.gotoStmt(id)

	case ast.StmtAction:
		c.action(id, st)

	case ast.StmtBlock:
		data, _ := c.b.Stmts.Block(id)
		c.block(data.Stmts)

	default:
		panic("sema: unexpected statement kind " + st.Kind.String())
	}
}

func (c *checker) gotoStmt(id ast.StmtID) {
	data, _ := c.b.Stmts.Goto(id)
	if _, ok := c.ctx.LabelIndex(data.Label); !ok {
		name := c.b.Name(data.Label)
		b := c.errorf(diag.SemaUndeclaredLabel, data.LabelSpan, "Label '%s' not declared.", name)
		c.withSuggestion(b, data.LabelSpan, name, c.labelNames())
		b.Emit()
	}
	if !data.Cond.IsValid() {
		return
	}
	cond := c.expr(data.Cond)
	if k := cond.val.Kind; k != value.KindVoid && k != value.KindBool {
		span := c.b.Exprs.Get(data.Cond).Span
		c.errorf(diag.SemaConditionNotBool, span, "Goto condition must be Boolean, found %s.", k).Emit()
	}
}

func (c *checker) action(id ast.StmtID, st *ast.Stmt) {
	data, _ := c.b.Stmts.Action(id)
	args := c.args(data.Args)
	name := c.b.Name(data.Name)
	switch {
	case !data.Op.IsValid():
		b := c.errorf(diag.SemaUnknownBuiltin, data.NameSpan, "Invalid '%s' action", name)
		c.withSuggestion(b, data.NameSpan, name, actionNames)
		b.Emit()
	case data.Op.IsFunction():
		c.errorf(diag.SemaBuiltinMisuse, data.NameSpan, "'%s' is a function and cannot be used as a statement", name).Emit()
	default:
		c.host.ValidateAction(data.Op, args, st.Span, c.rep)
	}
}
