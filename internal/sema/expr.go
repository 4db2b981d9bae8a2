package sema

import (
	"errors"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/builtin"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/host"
	"pixelwalle/internal/value"
)

// operand is what the checker knows about an expression. A Void kind means
// an error was already reported for it and nothing more should be said
// about that value itself. Operators applied to it still yield their
// result kind, so later statements keep being checked.
type operand struct {
	val   value.Value
	known bool
}

var errored = operand{}

func kindOnly(k value.Kind) operand { return operand{val: value.Value{Kind: k}} }

func exact(v value.Value) operand { return operand{val: v, known: true} }

func (c *checker) expr(id ast.ExprID) operand {
	e := c.b.Exprs.Get(id)
	if e == nil {
		return errored
	}
	var out operand
	switch e.Kind {
	case ast.ExprBinary:
		out = c.binary(id, e)
	case ast.ExprUnary:
		out = c.unary(id, e)
	case ast.ExprVariable:
		out = c.variable(id, e)
	case ast.ExprLiteral:
		out = c.literal(id)
	case ast.ExprCall:
		out = c.call(id, e)
	default:
		panic("sema: unexpected expression kind " + e.Kind.String())
	}
	c.res.ExprKinds[id] = out.val.Kind
	return out
}

func (c *checker) binary(id ast.ExprID, e *ast.Expr) operand {
	data, _ := c.b.Exprs.Binary(id)
	l, r := c.expr(data.Left), c.expr(data.Right)
	if l.val.IsVoid() || r.val.IsVoid() {
		return kindOnly(value.ResultKind(data.Op))
	}
	if !value.Supports(data.Op, l.val.Kind, r.val.Kind) {
		err := &value.OpError{Op: data.Op.Name(), Left: l.val.Kind, Right: r.val.Kind}
		c.errorf(diag.SemaBinaryMismatch, e.Span, "%s", err.Error()).Emit()
		return kindOnly(value.ResultKind(data.Op))
	}

	result := kindOnly(value.ResultKindFor(data.Op, l.val.Kind))
	isDivision := data.Op == ast.ExprBinaryDiv || data.Op == ast.ExprBinaryMod
	if isDivision && r.known && r.val.Int == 0 {
		c.errorf(diag.SemaDivisionByZero, e.Span, "Division by zero is not supported").Emit()
		return result
	}
	if !l.known || !r.known {
		return result
	}
	v, err := value.Binary(data.Op, l.val, r.val)
	if err != nil {
		if errors.Is(err, value.ErrDivisionByZero) {
			return result
		}
		panic("sema: folding a supported operation failed: " + err.Error())
	}
	return exact(v)
}

func (c *checker) unary(id ast.ExprID, e *ast.Expr) operand {
	data, _ := c.b.Exprs.Unary(id)
	x := c.expr(data.Operand)
	if x.val.IsVoid() {
		return kindOnly(value.UnaryResultKind(data.Op))
	}
	if !value.SupportsUnary(data.Op, x.val.Kind) {
		err := &value.OpError{Op: data.Op.Name(), Left: x.val.Kind, Unary: true}
		c.errorf(diag.SemaUnaryMismatch, e.Span, "%s", err.Error()).Emit()
		return kindOnly(value.UnaryResultKind(data.Op))
	}
	if !x.known {
		return kindOnly(value.UnaryResultKind(data.Op))
	}
	v, err := value.Unary(data.Op, x.val)
	if err != nil {
		panic("sema: folding a supported operation failed: " + err.Error())
	}
	return exact(v)
}

func (c *checker) variable(id ast.ExprID, e *ast.Expr) operand {
	data, _ := c.b.Exprs.Variable(id)
	v, ok := c.ctx.Lookup(data.Name)
	if !ok {
		name := c.b.Name(data.Name)
		b := c.errorf(diag.SemaUndeclaredVar, e.Span, "'%s' not declared.", name)
		c.withSuggestion(b, e.Span, name, c.ctx.SortedNames(c.b.Strings))
		b.Emit()
		return errored
	}
	return operand{val: v, known: c.known[data.Name] && !v.IsVoid()}
}

func (c *checker) literal(id ast.ExprID) operand {
	lit, _ := c.b.Exprs.Literal(id)
	switch lit.Kind {
	case ast.LitInt:
		return exact(value.MakeInt(lit.Int))
	case ast.LitBool:
		return exact(value.MakeBool(lit.Bool))
	case ast.LitString:
		return exact(value.MakeString(lit.Str))
	default:
		panic("sema: unexpected literal kind")
	}
}

func (c *checker) call(id ast.ExprID, e *ast.Expr) operand {
	data, _ := c.b.Exprs.Call(id)
	args := c.args(data.Args)
	name := c.b.Name(data.Name)
	switch {
	case !data.Op.IsValid():
		b := c.errorf(diag.SemaUnknownBuiltin, data.NameSpan, "Invalid '%s' function", name)
		c.withSuggestion(b, data.NameSpan, name, functionNames)
		b.Emit()
		return errored
	case data.Op.IsAction():
		c.errorf(diag.SemaBuiltinMisuse, data.NameSpan, "'%s' is an action and cannot be used in an expression", name).Emit()
		return errored
	}
	_, kind := c.host.ValidateFunction(data.Op, args, e.Span, c.rep)
	// результат функции известен только во время исполнения
	return kindOnly(kind)
}

func (c *checker) args(ids []ast.ExprID) []host.Arg {
	out := make([]host.Arg, len(ids))
	for i, id := range ids {
		x := c.expr(id)
		out[i] = host.Arg{Value: x.val, Known: x.known}
		if e := c.b.Exprs.Get(id); e != nil {
			out[i].Span = e.Span
		}
	}
	return out
}

var (
	actionNames   = builtin.Names(builtin.CategoryAction)
	functionNames = builtin.Names(builtin.CategoryFunction)
)
