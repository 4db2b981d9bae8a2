package interp

import (
	"errors"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
	"pixelwalle/internal/value"
)

func (it *interpreter) eval(id ast.ExprID) (value.Value, error) {
	e := it.b.Exprs.Get(id)
	if e == nil {
		panic(internalf(source.Span{}, "expression %d does not exist", id))
	}

	switch e.Kind {
	case ast.ExprBinary:
		data, _ := it.b.Exprs.Binary(id)
		// && и || вычисляют оба операнда: функции хоста вызываются всегда.
		l, err := it.eval(data.Left)
		if err != nil {
			return value.Void, err
		}
		r, err := it.eval(data.Right)
		if err != nil {
			return value.Void, err
		}
		v, err := value.Binary(data.Op, l, r)
		if errors.Is(err, value.ErrDivisionByZero) {
			return value.Void, it.runtimeError(diag.RunDivisionByZero, e.Span, "Division by zero is not supported")
		}
		if err != nil {
			panic(internalf(e.Span, "%v", err))
		}
		return v, nil

	case ast.ExprUnary:
		data, _ := it.b.Exprs.Unary(id)
		x, err := it.eval(data.Operand)
		if err != nil {
			return value.Void, err
		}
		v, err := value.Unary(data.Op, x)
		if err != nil {
			panic(internalf(e.Span, "%v", err))
		}
		return v, nil

	case ast.ExprVariable:
		data, _ := it.b.Exprs.Variable(id)
		v, ok := it.env.Lookup(data.Name)
		if !ok {
			// присваивание перепрыгнули через goto
			return value.Void, it.runtimeError(diag.RunUnsetVariable, e.Span,
				"'%s' is used before it is assigned", it.b.Name(data.Name))
		}
		return v, nil

	case ast.ExprLiteral:
		lit, _ := it.b.Exprs.Literal(id)
		switch lit.Kind {
		case ast.LitInt:
			return value.MakeInt(lit.Int), nil
		case ast.LitBool:
			return value.MakeBool(lit.Bool), nil
		case ast.LitString:
			return value.MakeString(lit.Str), nil
		default:
			panic(internalf(e.Span, "unexpected literal kind %d", lit.Kind))
		}

	case ast.ExprCall:
		data, _ := it.b.Exprs.Call(id)
		if !data.Op.IsFunction() {
			panic(internalf(data.NameSpan, "'%s' is not a function", it.b.Name(data.Name)))
		}
		args, err := it.evalArgs(data.Args)
		if err != nil {
			return value.Void, err
		}
		v, err := it.host.CallFunction(data.Op, args, e.Span)
		if err != nil {
			return value.Void, it.hostError(err, e.Span, data.Op.String())
		}
		return v, nil

	default:
		panic(internalf(e.Span, "unexpected expression kind %s", e.Kind))
	}
}

func (it *interpreter) evalArgs(ids []ast.ExprID) ([]value.Value, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]value.Value, len(ids))
	for i, id := range ids {
		v, err := it.eval(id)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}
