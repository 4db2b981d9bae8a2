package parser

import (
	"pixelwalle/internal/ast"
	"pixelwalle/internal/token"
)

// Уровни приоритета бинарных операторов, от низшего к высшему.
// Унарные операторы и первичные выражения лежат выше precPower.
type prec uint8

const (
	precOr prec = iota
	precAnd
	precComparison
	precAdditive
	precMultiplicative
	precPower
	precUnary
)

// assoc says how the right operand of an operator is parsed.
type assoc uint8

const (
	// shift parses the right side at the same level, so the chain
	// nests to the right: a ** b ** c is a ** (b ** c).
	shift assoc = iota
	// reduce parses the right side one level higher and folds left:
	// a - b - c is (a - b) - c.
	reduce
)

type binaryOpInfo struct {
	op    ast.ExprBinaryOp
	prec  prec
	assoc assoc
}

var binaryOps = map[token.Kind]binaryOpInfo{
	token.OrOr:     {ast.ExprBinaryOr, precOr, shift},
	token.AndAnd:   {ast.ExprBinaryAnd, precAnd, shift},
	token.EqEq:     {ast.ExprBinaryEq, precComparison, reduce},
	token.BangEq:   {ast.ExprBinaryNotEq, precComparison, reduce},
	token.Lt:       {ast.ExprBinaryLess, precComparison, reduce},
	token.LtEq:     {ast.ExprBinaryLessEq, precComparison, reduce},
	token.Gt:       {ast.ExprBinaryGreater, precComparison, reduce},
	token.GtEq:     {ast.ExprBinaryGreaterEq, precComparison, reduce},
	token.Plus:     {ast.ExprBinaryAdd, precAdditive, shift},
	token.Minus:    {ast.ExprBinarySub, precAdditive, reduce},
	token.Star:     {ast.ExprBinaryMul, precMultiplicative, shift},
	token.Slash:    {ast.ExprBinaryDiv, precMultiplicative, reduce},
	token.Percent:  {ast.ExprBinaryMod, precMultiplicative, reduce},
	token.StarStar: {ast.ExprBinaryPow, precPower, shift},
}

// getBinaryOperator возвращает оператор, если токен k — бинарный оператор уровня level.
func getBinaryOperator(k token.Kind, level prec) (binaryOpInfo, bool) {
	info, ok := binaryOps[k]
	if !ok || info.prec != level {
		return binaryOpInfo{}, false
	}
	return info, true
}

func tokenKindToUnaryOp(k token.Kind) (ast.ExprUnaryOp, bool) {
	switch k {
	case token.Minus:
		return ast.ExprUnaryNeg, true
	case token.Bang:
		return ast.ExprUnaryNot, true
	}
	return 0, false
}

// BinaryPrecedence reports the level of op (higher binds tighter) and
// whether its right operand is parsed at the same level. Printers use it to
// decide where parentheses are required for a tree to parse back unchanged.
func BinaryPrecedence(op ast.ExprBinaryOp) (level int, shiftRight bool) {
	for _, info := range binaryOps {
		if info.op == op {
			return int(info.prec), info.assoc == shift
		}
	}
	return int(precUnary), false
}
