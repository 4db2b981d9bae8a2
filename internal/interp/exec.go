package interp

import (
	"errors"
	"fmt"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/host"
	"pixelwalle/internal/source"
	"pixelwalle/internal/trace"
	"pixelwalle/internal/value"
)

func (it *interpreter) exec(pc int, id ast.StmtID) (Signal, error) {
	st := it.b.Stmts.Get(id)
	if st == nil {
		panic(internalf(source.Span{}, "statement %d does not exist", id))
	}
	it.steps.stmt(it.step, pc, it.b, id, st)

	switch st.Kind {
	case ast.StmtAssign:
		data, _ := it.b.Stmts.Assign(id)
		v, err := it.eval(data.Value)
		if err != nil {
			return Continue(), err
		}
		it.env.Assign(data.Name, v)
		it.steps.write(it.b.Name(data.Name), v)
		return Continue(), nil

	case ast.StmtLabel:
		return Continue(), nil

	case ast.StmtGoto:
		return it.gotoStmt(id, st)

	case ast.StmtAction:
		data, _ := it.b.Stmts.Action(id)
		if !data.Op.IsAction() {
			panic(internalf(data.NameSpan, "'%s' is not an action", it.b.Name(data.Name)))
		}
		args, err := it.evalArgs(data.Args)
		if err != nil {
			return Continue(), err
		}
		if err := it.host.CallAction(data.Op, args, st.Span); err != nil {
			return Continue(), it.hostError(err, st.Span, data.Op.String())
		}
		return Continue(), nil

	case ast.StmtBlock:
		panic(internalf(st.Span, "nested blocks are not executable"))

	default:
		panic(internalf(st.Span, "unexpected statement kind %s", st.Kind))
	}
}

// gotoStmt drives the jump state machine: a true condition requests the
// jump, and the pending jump is taken right away to produce the signal.
func (it *interpreter) gotoStmt(id ast.StmtID, st *ast.Stmt) (Signal, error) {
	data, _ := it.b.Stmts.Goto(id)
	if data.Cond.IsValid() {
		cond, err := it.eval(data.Cond)
		if err != nil {
			return Continue(), err
		}
		if cond.Kind != value.KindBool {
			panic(internalf(st.Span, "goto condition is %s", cond.Kind))
		}
		if !cond.Bool {
			return Continue(), nil
		}
	}

	it.env.RequestJump(data.Label)
	label, _ := it.env.TakeJump()
	target, ok := it.env.LabelIndex(label)
	if !ok {
		panic(internalf(data.LabelSpan, "label '%s' is not declared", it.b.Name(label)))
	}
	trace.Point(it.tracer, trace.ScopeStmt, "jump", it.span,
		fmt.Sprintf("%s -> %d", it.b.Name(label), target))
	return JumpTo(target), nil
}

// hostError turns a host failure into the interpreter's error taxonomy.
func (it *interpreter) hostError(err error, span source.Span, op string) error {
	var herr *host.Error
	switch {
	case errors.As(err, &herr):
		return &RuntimeError{Code: herr.Code, Message: herr.Msg, Span: span, Step: it.step}
	case errors.Is(err, host.ErrUnknownOp):
		panic(internalf(span, "%v", err))
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func (it *interpreter) runtimeError(code diag.Code, span source.Span, format string, args ...any) *RuntimeError {
	return &RuntimeError{Code: code, Message: fmt.Sprintf(format, args...), Span: span, Step: it.step}
}
