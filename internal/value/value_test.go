package value

import (
	"errors"
	"math"
	"testing"

	"pixelwalle/internal/ast"
)

func TestBinaryInt(t *testing.T) {
	tests := []struct {
		op   ast.ExprBinaryOp
		a, b int64
		want Value
	}{
		{ast.ExprBinaryAdd, 2, 3, MakeInt(5)},
		{ast.ExprBinarySub, 2, 3, MakeInt(-1)},
		{ast.ExprBinaryMul, -4, 3, MakeInt(-12)},
		{ast.ExprBinaryDiv, 7, 2, MakeInt(3)},
		{ast.ExprBinaryDiv, -7, 2, MakeInt(-3)},
		{ast.ExprBinaryMod, -7, 3, MakeInt(-1)},
		{ast.ExprBinaryPow, 2, 10, MakeInt(1024)},
		{ast.ExprBinaryPow, 5, 0, MakeInt(1)},
		{ast.ExprBinaryPow, 2, -1, MakeInt(0)},
		{ast.ExprBinaryPow, -1, -3, MakeInt(-1)},
		{ast.ExprBinaryLess, 1, 2, MakeBool(true)},
		{ast.ExprBinaryLessEq, 2, 2, MakeBool(true)},
		{ast.ExprBinaryGreater, 1, 2, MakeBool(false)},
		{ast.ExprBinaryGreaterEq, 3, 2, MakeBool(true)},
		{ast.ExprBinaryEq, 3, 3, MakeBool(true)},
		{ast.ExprBinaryNotEq, 3, 3, MakeBool(false)},
		{ast.ExprBinaryAdd, math.MaxInt64, 1, MakeInt(math.MinInt64)},
	}
	for _, tt := range tests {
		got, err := Binary(tt.op, MakeInt(tt.a), MakeInt(tt.b))
		if err != nil {
			t.Fatalf("%d %v %d: %v", tt.a, tt.op, tt.b, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("%d %v %d = %#v, want %#v", tt.a, tt.op, tt.b, got, tt.want)
		}
	}
}

func TestBinaryBoolAndString(t *testing.T) {
	got, err := Binary(ast.ExprBinaryAnd, MakeBool(true), MakeBool(false))
	if err != nil || !got.Equal(MakeBool(false)) {
		t.Fatalf("true && false = %#v, %v", got, err)
	}
	got, err = Binary(ast.ExprBinaryOr, MakeBool(true), MakeBool(false))
	if err != nil || !got.Equal(MakeBool(true)) {
		t.Fatalf("true || false = %#v, %v", got, err)
	}
	got, err = Binary(ast.ExprBinaryAdd, MakeString("Wall"), MakeString("-E"))
	if err != nil || !got.Equal(MakeString("Wall-E")) {
		t.Fatalf("concat = %#v, %v", got, err)
	}
	got, err = Binary(ast.ExprBinaryEq, MakeString("a"), MakeString("a"))
	if err != nil || !got.Equal(MakeBool(true)) {
		t.Fatalf("string == = %#v, %v", got, err)
	}
}

func TestBinaryErrors(t *testing.T) {
	_, err := Binary(ast.ExprBinaryDiv, MakeInt(1), MakeInt(0))
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("1/0 err = %v", err)
	}
	_, err = Binary(ast.ExprBinaryMod, MakeInt(1), MakeInt(0))
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("1%%0 err = %v", err)
	}

	tests := []struct {
		op   ast.ExprBinaryOp
		l, r Value
		msg  string
	}{
		{ast.ExprBinaryAdd, MakeInt(1), MakeString("a"), "Unsupported Add for Integer and String"},
		{ast.ExprBinaryAnd, MakeInt(1), MakeInt(1), "Unsupported And for Integer and Integer"},
		{ast.ExprBinaryLess, MakeBool(true), MakeBool(false), "Unsupported LessThan for Boolean and Boolean"},
		{ast.ExprBinarySub, MakeString("a"), MakeString("b"), "Unsupported Subtract for String and String"},
	}
	for _, tt := range tests {
		_, err := Binary(tt.op, tt.l, tt.r)
		var opErr *OpError
		if !errors.As(err, &opErr) {
			t.Fatalf("%v: expected *OpError, got %v", tt.op, err)
		}
		if err.Error() != tt.msg {
			t.Errorf("message = %q, want %q", err.Error(), tt.msg)
		}
	}
}

func TestUnary(t *testing.T) {
	if got, err := Unary(ast.ExprUnaryNeg, MakeInt(5)); err != nil || !got.Equal(MakeInt(-5)) {
		t.Fatalf("-5 = %#v, %v", got, err)
	}
	if got, err := Unary(ast.ExprUnaryNot, MakeBool(false)); err != nil || !got.Equal(MakeBool(true)) {
		t.Fatalf("!false = %#v, %v", got, err)
	}
	_, err := Unary(ast.ExprUnaryNot, MakeInt(1))
	if err == nil || err.Error() != "Unsupported Not for Integer." {
		t.Fatalf("!1 err = %v", err)
	}
	_, err = Unary(ast.ExprUnaryNeg, MakeString("x"))
	if err == nil || err.Error() != "Unsupported Negative for String." {
		t.Fatalf("-\"x\" err = %v", err)
	}
}

func TestResultKinds(t *testing.T) {
	if ResultKind(ast.ExprBinaryMod) != KindInt || ResultKind(ast.ExprBinaryEq) != KindBool || ResultKind(ast.ExprBinaryOr) != KindBool {
		t.Fatal("ResultKind misclassifies operators")
	}
	if ResultKindFor(ast.ExprBinaryAdd, KindString) != KindString || ResultKindFor(ast.ExprBinaryAdd, KindInt) != KindInt {
		t.Fatal("ResultKindFor must special-case string concatenation")
	}
	if UnaryResultKind(ast.ExprUnaryNot) != KindBool || UnaryResultKind(ast.ExprUnaryNeg) != KindInt {
		t.Fatal("UnaryResultKind misclassifies operators")
	}
}

func TestStringAndEqual(t *testing.T) {
	if MakeInt(-3).String() != "-3" || MakeBool(true).String() != "true" || MakeString("hi").String() != "hi" {
		t.Fatal("String rendering mismatch")
	}
	if MakeInt(1).Equal(MakeBool(true)) {
		t.Fatal("different kinds must not be equal")
	}
	if !Void.IsVoid() || Void.Kind.String() != "Void" {
		t.Fatal("zero Value must be Void")
	}
}
