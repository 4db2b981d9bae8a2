// Package interp executes a checked script with a program counter over the
// flat statement list.
//
// Execute assumes the checker reported no errors. Anything the checker
// guarantees (known builtins, operand kinds, resolved labels) is not
// re-validated here: a violation panics with *InternalError.
package interp

import (
	"context"
	"fmt"
	"io"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/env"
	"pixelwalle/internal/host"
	"pixelwalle/internal/source"
	"pixelwalle/internal/trace"
)

// DefaultStepLimit bounds runaway goto loops.
const DefaultStepLimit = 10_000_000

// cancelCheckEvery is how many statements run between context checks.
const cancelCheckEvery = 1024

type Options struct {
	Host host.Capability
	// StepLimit caps executed statements; 0 means DefaultStepLimit and a
	// negative value means no limit.
	StepLimit int
	// Trace, when set, receives one line per executed statement.
	Trace io.Writer
	Files *source.FileSet
	// Parent is the trace span the execute span nests under.
	Parent uint64
}

// Result summarises a finished run.
type Result struct {
	Steps int
	Jumps int
}

// SignalKind tells the loop how to move the program counter.
type SignalKind uint8

const (
	// SignalContinue moves to the next statement.
	SignalContinue SignalKind = iota
	// SignalJump moves to Signal.Target.
	SignalJump
)

// Signal is the outcome of executing one statement.
type Signal struct {
	Kind   SignalKind
	Target int
}

func Continue() Signal         { return Signal{Kind: SignalContinue} }
func JumpTo(target int) Signal { return Signal{Kind: SignalJump, Target: target} }

type interpreter struct {
	b      *ast.Builder
	env    *env.Context
	host   host.Capability
	tracer trace.Tracer
	span   uint64
	steps  *stepTracer
	step   int
}

// Execute runs the block rooted at root. Variables and labels in envCtx are
// reset first, so the same Context can be reused after checking.
// A *RuntimeError is returned for script faults; other errors come from the
// host's output.
func Execute(ctx context.Context, b *ast.Builder, root ast.StmtID, envCtx *env.Context, opts Options) (Result, error) {
	if opts.Host == nil {
		return Result{}, fmt.Errorf("interp: no host")
	}
	if envCtx == nil {
		envCtx = env.New()
	}
	limit := opts.StepLimit
	if limit == 0 {
		limit = DefaultStepLimit
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "execute", opts.Parent)
	it := &interpreter{
		b:      b,
		env:    envCtx,
		host:   opts.Host,
		tracer: tracer,
		span:   span.ID(),
		steps:  newStepTracer(opts.Trace, opts.Files),
	}

	stmts := b.Statements(root)
	envCtx.Reset()
	envCtx.RebuildLabels(b, stmts)

	var res Result
	var err error
	pc := 0
	for pc < len(stmts) {
		if limit > 0 && it.step >= limit {
			err = &RuntimeError{
				Code:    diag.RunStepLimit,
				Message: fmt.Sprintf("Step limit of %d statements exceeded", limit),
				Span:    b.Stmts.Get(stmts[pc]).Span,
				Step:    it.step,
			}
			break
		}
		if it.step%cancelCheckEvery == 0 {
			if cerr := ctx.Err(); cerr != nil {
				err = &RuntimeError{
					Code:    diag.RunCanceled,
					Message: "Execution canceled: " + cerr.Error(),
					Span:    b.Stmts.Get(stmts[pc]).Span,
					Step:    it.step,
				}
				break
			}
		}

		var sig Signal
		sig, err = it.exec(pc, stmts[pc])
		it.step++
		if err != nil {
			break
		}
		switch sig.Kind {
		case SignalContinue:
			pc++
		case SignalJump:
			res.Jumps++
			pc = sig.Target
		default:
			panic(internalf(source.Span{}, "unknown signal %d", sig.Kind))
		}
	}

	res.Steps = it.step
	span.WithCount("steps", res.Steps).
		WithCount("jumps", res.Jumps).
		End(outcome(err))
	return res, err
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}
