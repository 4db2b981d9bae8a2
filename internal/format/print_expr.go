package format

import (
	"strconv"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/parser"
)

const levelPrimary = 1 << 8

func (p *printer) printExpr(id ast.ExprID) {
	b := p.builder
	w := p.writer
	expr := b.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		level, shiftRight := parser.BinaryPrecedence(data.Op)
		p.printOperand(data.Left, needParensLeft(b, data.Left, level))
		w.WriteString(" ")
		w.WriteString(data.Op.String())
		w.WriteString(" ")
		p.printOperand(data.Right, needParensRight(b, data.Right, level, shiftRight))
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		w.WriteString(data.Op.String())
		operand := b.Exprs.Get(data.Operand)
		p.printOperand(data.Operand, operand != nil && operand.Kind == ast.ExprBinary)
	case ast.ExprVariable:
		data, _ := b.Exprs.Variable(id)
		w.WriteString(b.Name(data.Name))
	case ast.ExprLiteral:
		data, _ := b.Exprs.Literal(id)
		switch data.Kind {
		case ast.LitInt:
			w.WriteString(strconv.FormatInt(data.Int, 10))
		case ast.LitBool:
			w.WriteString(strconv.FormatBool(data.Bool))
		case ast.LitString:
			w.WriteString(`"` + data.Str + `"`)
		}
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		p.printCall(b.Name(data.Name), data.Args)
	}
}

func (p *printer) printOperand(id ast.ExprID, parens bool) {
	if parens {
		p.writer.WriteString("(")
	}
	p.printExpr(id)
	if parens {
		p.writer.WriteString(")")
	}
}

// exprLevel is the binary level of id, or levelPrimary for anything that
// parses as a single operand.
func exprLevel(b *ast.Builder, id ast.ExprID) (level int, shiftRight bool) {
	data, ok := b.Exprs.Binary(id)
	if !ok {
		return levelPrimary, false
	}
	return parser.BinaryPrecedence(data.Op)
}

// needParensLeft: a left operand at the parent's level is only produced by a
// left-folding (reduce) operator; a shift operator ends its chain.
func needParensLeft(b *ast.Builder, child ast.ExprID, parent int) bool {
	level, shiftRight := exprLevel(b, child)
	if level != parent {
		return level < parent
	}
	return shiftRight
}

// needParensRight: a shift operator parses its right side at its own level,
// a reduce operator one level higher.
func needParensRight(b *ast.Builder, child ast.ExprID, parent int, parentShift bool) bool {
	level, _ := exprLevel(b, child)
	if parentShift {
		return level < parent
	}
	return level <= parent
}
