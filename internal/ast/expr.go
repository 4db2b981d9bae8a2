package ast

import (
	"pixelwalle/internal/builtin"
	"pixelwalle/internal/source"
)

// ExprKind is the closed set of expression variants.
type ExprKind uint8

const (
	// ExprBinary is "left op right".
	ExprBinary ExprKind = iota + 1
	// ExprUnary is a prefix operator applied to one operand.
	ExprUnary
	// ExprVariable reads a variable.
	ExprVariable
	// ExprLiteral is an integer, boolean or string constant.
	ExprLiteral
	// ExprCall invokes a builtin function.
	ExprCall
)

func (k ExprKind) String() string {
	switch k {
	case ExprBinary:
		return "Binary"
	case ExprUnary:
		return "Unary"
	case ExprVariable:
		return "Variable"
	case ExprLiteral:
		return "Literal"
	case ExprCall:
		return "Call"
	default:
		return "Invalid"
	}
}

// Expr is a tagged node; Payload indexes the arena of its Kind.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operators.
type ExprBinaryOp uint8

const (
	// Арифметические
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod
	ExprBinaryPow

	// Сравнения
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq
	ExprBinaryEq
	ExprBinaryNotEq

	// Логические
	ExprBinaryAnd
	ExprBinaryOr
)

var binaryOpInfo = [...]struct{ sym, name string }{
	ExprBinaryAdd:       {"+", "Add"},
	ExprBinarySub:       {"-", "Subtract"},
	ExprBinaryMul:       {"*", "Multiply"},
	ExprBinaryDiv:       {"/", "Divide"},
	ExprBinaryMod:       {"%", "Modulus"},
	ExprBinaryPow:       {"**", "Power"},
	ExprBinaryLess:      {"<", "LessThan"},
	ExprBinaryLessEq:    {"<=", "LessOrEqualThan"},
	ExprBinaryGreater:   {">", "GreaterThan"},
	ExprBinaryGreaterEq: {">=", "GreaterOrEqualThan"},
	ExprBinaryEq:        {"==", "Equal"},
	ExprBinaryNotEq:     {"!=", "NotEqual"},
	ExprBinaryAnd:       {"&&", "And"},
	ExprBinaryOr:        {"||", "Or"},
}

// String returns the source symbol of the operator.
func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpInfo) {
		return binaryOpInfo[op].sym
	}
	return "?"
}

// Name returns the operation name used in diagnostics, e.g. "Subtract".
func (op ExprBinaryOp) Name() string {
	if int(op) < len(binaryOpInfo) {
		return binaryOpInfo[op].name
	}
	return "Unknown"
}

// IsArithmetic reports operators whose result is an Integer.
func (op ExprBinaryOp) IsArithmetic() bool {
	return op <= ExprBinaryPow
}

// ExprUnaryOp enumerates prefix operators.
type ExprUnaryOp uint8

const (
	ExprUnaryNeg ExprUnaryOp = iota
	ExprUnaryNot
)

func (op ExprUnaryOp) String() string {
	if op == ExprUnaryNot {
		return "!"
	}
	return "-"
}

// Name returns the operation name used in diagnostics.
func (op ExprUnaryOp) Name() string {
	if op == ExprUnaryNot {
		return "Not"
	}
	return "Negative"
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprVariableData struct {
	Name source.StringID
}

// LitKind tells which field of ExprLiteralData is meaningful.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitBool
	LitString
)

type ExprLiteralData struct {
	Kind LitKind
	Int  int64
	Bool bool
	Str  string
}

type ExprCallData struct {
	Name     source.StringID
	NameSpan source.Span
	Op       builtin.Op // builtin.Unknown when Name is not in the catalogue
	Args     []ExprID
}
