package ast

import (
	"pixelwalle/internal/builtin"
	"pixelwalle/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Binaries  *Arena[ExprBinaryData]
	Unaries   *Arena[ExprUnaryData]
	Variables *Arena[ExprVariableData]
	Literals  *Arena[ExprLiteralData]
	Calls     *Arena[ExprCallData]
}

// NewExprs creates per-kind arenas; capHint 0 means 1<<8.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Binaries:  NewArena[ExprBinaryData](capHint / 2),
		Unaries:   NewArena[ExprUnaryData](capHint / 8),
		Variables: NewArena[ExprVariableData](capHint / 2),
		Literals:  NewArena[ExprLiteralData](capHint / 2),
		Calls:     NewArena[ExprCallData](capHint / 8),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewVariable(span source.Span, name source.StringID) ExprID {
	return e.new(ExprVariable, span, e.Variables.Allocate(ExprVariableData{Name: name}))
}

func (e *Exprs) Variable(id ExprID) (*ExprVariableData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprVariable {
		return nil, false
	}
	return e.Variables.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewIntLiteral(span source.Span, v int64) ExprID {
	return e.new(ExprLiteral, span, e.Literals.Allocate(ExprLiteralData{Kind: LitInt, Int: v}))
}

func (e *Exprs) NewBoolLiteral(span source.Span, v bool) ExprID {
	return e.new(ExprLiteral, span, e.Literals.Allocate(ExprLiteralData{Kind: LitBool, Bool: v}))
}

func (e *Exprs) NewStringLiteral(span source.Span, v string) ExprID {
	return e.new(ExprLiteral, span, e.Literals.Allocate(ExprLiteralData{Kind: LitString, Str: v}))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLiteral {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCall(span, nameSpan source.Span, name source.StringID, op builtin.Op, args []ExprID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Name: name, NameSpan: nameSpan, Op: op, Args: args}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}
