package value

import (
	"errors"
	"fmt"

	"pixelwalle/internal/ast"
)

// ErrDivisionByZero is returned by Binary for "/" and "%" with a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// OpError reports an operator applied to operand kinds it does not support.
type OpError struct {
	Op    string
	Left  Kind
	Right Kind
	Unary bool
}

func (e *OpError) Error() string {
	if e.Unary {
		return fmt.Sprintf("Unsupported %s for %s.", e.Op, e.Left)
	}
	return fmt.Sprintf("Unsupported %s for %s and %s", e.Op, e.Left, e.Right)
}

// Supports reports whether op is defined for operands of kinds l and r.
// Operands must share a kind:
//   - Integer: every operator except && and ||.
//   - Boolean: == != && ||.
//   - String: + (concatenation) == !=.
func Supports(op ast.ExprBinaryOp, l, r Kind) bool {
	if l != r {
		return false
	}
	switch l {
	case KindInt:
		return op != ast.ExprBinaryAnd && op != ast.ExprBinaryOr
	case KindBool:
		switch op {
		case ast.ExprBinaryEq, ast.ExprBinaryNotEq, ast.ExprBinaryAnd, ast.ExprBinaryOr:
			return true
		}
	case KindString:
		switch op {
		case ast.ExprBinaryAdd, ast.ExprBinaryEq, ast.ExprBinaryNotEq:
			return true
		}
	}
	return false
}

// ResultKind is the static result of op regardless of operands:
// arithmetic yields Integer, everything else Boolean. String "+" is the one
// exception and is resolved by ResultKindFor.
func ResultKind(op ast.ExprBinaryOp) Kind {
	if op.IsArithmetic() {
		return KindInt
	}
	return KindBool
}

// ResultKindFor refines ResultKind when the operand kind is known.
func ResultKindFor(op ast.ExprBinaryOp, operand Kind) Kind {
	if op == ast.ExprBinaryAdd && operand == KindString {
		return KindString
	}
	return ResultKind(op)
}

// Binary applies op. It returns *OpError for unsupported operand kinds and
// ErrDivisionByZero for a zero divisor.
func Binary(op ast.ExprBinaryOp, l, r Value) (Value, error) {
	if !Supports(op, l.Kind, r.Kind) {
		return Void, &OpError{Op: op.Name(), Left: l.Kind, Right: r.Kind}
	}
	switch l.Kind {
	case KindInt:
		return intBinary(op, l.Int, r.Int)
	case KindBool:
		return boolBinary(op, l.Bool, r.Bool), nil
	case KindString:
		return stringBinary(op, l.Str, r.Str), nil
	default:
		return Void, &OpError{Op: op.Name(), Left: l.Kind, Right: r.Kind}
	}
}

func intBinary(op ast.ExprBinaryOp, a, b int64) (Value, error) {
	switch op {
	case ast.ExprBinaryAdd:
		return MakeInt(a + b), nil
	case ast.ExprBinarySub:
		return MakeInt(a - b), nil
	case ast.ExprBinaryMul:
		return MakeInt(a * b), nil
	case ast.ExprBinaryDiv:
		if b == 0 {
			return Void, ErrDivisionByZero
		}
		return MakeInt(a / b), nil
	case ast.ExprBinaryMod:
		if b == 0 {
			return Void, ErrDivisionByZero
		}
		return MakeInt(a % b), nil
	case ast.ExprBinaryPow:
		return MakeInt(Pow(a, b)), nil
	case ast.ExprBinaryLess:
		return MakeBool(a < b), nil
	case ast.ExprBinaryLessEq:
		return MakeBool(a <= b), nil
	case ast.ExprBinaryGreater:
		return MakeBool(a > b), nil
	case ast.ExprBinaryGreaterEq:
		return MakeBool(a >= b), nil
	case ast.ExprBinaryEq:
		return MakeBool(a == b), nil
	case ast.ExprBinaryNotEq:
		return MakeBool(a != b), nil
	case ast.ExprBinaryAnd, ast.ExprBinaryOr:
	}
	return Void, &OpError{Op: op.Name(), Left: KindInt, Right: KindInt}
}

func boolBinary(op ast.ExprBinaryOp, a, b bool) Value {
	switch op {
	case ast.ExprBinaryEq:
		return MakeBool(a == b)
	case ast.ExprBinaryNotEq:
		return MakeBool(a != b)
	case ast.ExprBinaryAnd:
		return MakeBool(a && b)
	default: // ExprBinaryOr; Supports excluded the rest
		return MakeBool(a || b)
	}
}

func stringBinary(op ast.ExprBinaryOp, a, b string) Value {
	switch op {
	case ast.ExprBinaryEq:
		return MakeBool(a == b)
	case ast.ExprBinaryNotEq:
		return MakeBool(a != b)
	default: // ExprBinaryAdd
		return MakeString(a + b)
	}
}

// Pow raises base to exp with wrapping int64 arithmetic. A negative exponent
// truncates toward zero like integer division: 1 and -1 keep a unit result,
// every other base yields 0.
func Pow(base, exp int64) int64 {
	if exp < 0 {
		switch base {
		case 1:
			return 1
		case -1:
			if exp%2 == 0 {
				return 1
			}
			return -1
		default:
			return 0
		}
	}
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// SupportsUnary reports whether op applies to kind: "-" to Integer, "!" to Boolean.
func SupportsUnary(op ast.ExprUnaryOp, k Kind) bool {
	switch op {
	case ast.ExprUnaryNeg:
		return k == KindInt
	case ast.ExprUnaryNot:
		return k == KindBool
	default:
		return false
	}
}

// UnaryResultKind is the static result of op.
func UnaryResultKind(op ast.ExprUnaryOp) Kind {
	if op == ast.ExprUnaryNot {
		return KindBool
	}
	return KindInt
}

// Unary applies op or returns *OpError.
func Unary(op ast.ExprUnaryOp, v Value) (Value, error) {
	if !SupportsUnary(op, v.Kind) {
		return Void, &OpError{Op: op.Name(), Left: v.Kind, Unary: true}
	}
	switch op {
	case ast.ExprUnaryNeg:
		return MakeInt(-v.Int), nil
	default:
		return MakeBool(!v.Bool), nil
	}
}
