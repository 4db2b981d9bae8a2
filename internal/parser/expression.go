package parser

import (
	"fmt"
	"strconv"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/builtin"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/source"
	"pixelwalle/internal/token"
)

// parseExpr разбирает выражение целиком, начиная с самого низкого приоритета.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(precOr)
}

// parseBinaryExpr разбирает цепочку операторов одного уровня.
// Shift-операторы разбирают правую часть на том же уровне и завершают цепочку,
// reduce-операторы берут операнд уровнем выше и сворачивают влево.
func (p *Parser) parseBinaryExpr(level prec) (ast.ExprID, bool) {
	if level >= precUnary {
		return p.parseUnaryExpr()
	}

	left, ok := p.parseBinaryExpr(level + 1)
	if !ok {
		return ast.NoExprID, false
	}

	for {
		info, isOp := getBinaryOperator(p.peek().Kind, level)
		if !isOp {
			return left, true
		}
		p.advance()

		var right ast.ExprID
		if info.assoc == shift {
			right, ok = p.parseBinaryExpr(level)
		} else {
			right, ok = p.parseBinaryExpr(level + 1)
		}
		if !ok {
			return ast.NoExprID, false
		}

		left = p.newBinary(info.op, left, right)
		if info.assoc == shift {
			return left, true
		}
	}
}

func (p *Parser) newBinary(op ast.ExprBinaryOp, left, right ast.ExprID) ast.ExprID {
	exprs := p.arenas.Exprs
	span := exprs.Get(left).Span.Cover(exprs.Get(right).Span)
	return exprs.NewBinary(span, op, left, right)
}

// parseUnaryExpr собирает серию префиксных операторов и сворачивает её
// справа налево: --5 даёт Neg(Neg(5)).
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op   ast.ExprUnaryOp
		span source.Span
	}
	var ops []prefixOp
	for {
		op, ok := tokenKindToUnaryOp(p.peek().Kind)
		if !ok {
			break
		}
		ops = append(ops, prefixOp{op: op, span: p.advance().Span})
	}

	operand, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	exprs := p.arenas.Exprs
	for i := len(ops) - 1; i >= 0; i-- {
		span := ops[i].span.Cover(exprs.Get(operand).Span)
		operand = exprs.NewUnary(span, ops[i].op, operand)
	}
	return operand, true
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	exprs := p.arenas.Exprs
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			p.errAt(diag.SynIntegerOutOfRange, tok.Span, fmt.Sprintf("Integer '%s' out of range.", tok.Text))
			return ast.NoExprID, false
		}
		return exprs.NewIntLiteral(tok.Span, v), true

	case token.BoolLit:
		p.advance()
		return exprs.NewBoolLiteral(tok.Span, tok.Text == "true"), true

	case token.StringLit:
		p.advance()
		return exprs.NewStringLiteral(tok.Span, tok.Text), true

	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')' expected."); !ok {
			return ast.NoExprID, false
		}
		// Скобки не порождают отдельного узла, но span расширяем на них.
		exprs.Get(inner).Span = tok.Span.Cover(p.lastSpan)
		return inner, true

	case token.Ident:
		if p.peekN(1).Kind == token.LParen {
			return p.parseCallExpr()
		}
		p.advance()
		return exprs.NewVariable(tok.Span, p.arenas.Strings.Intern(tok.Text)), true

	default:
		p.err(diag.SynExpectExpression, fmt.Sprintf("Expected expression, found %s.", describe(tok)))
		return ast.NoExprID, false
	}
}

// parseCallExpr разбирает вызов встроенной функции внутри выражения.
// Имя сопоставляется с каталогом сразу; неизвестное имя даёт builtin.Unknown,
// об этом сообщает семантический анализ.
func (p *Parser) parseCallExpr() (ast.ExprID, bool) {
	nameTok := p.advance()
	args, ok := p.parseArgs()
	if !ok {
		return ast.NoExprID, false
	}
	span := nameTok.Span.Cover(p.lastSpan)
	name := p.arenas.Strings.Intern(nameTok.Text)
	return p.arenas.Exprs.NewCall(span, nameTok.Span, name, builtin.Lookup(nameTok.Text), args), true
}

// parseArgs разбирает "( expr, expr, ... )". Текущий токен — '('.
func (p *Parser) parseArgs() ([]ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "'(' expected."); !ok {
		return nil, false
	}
	var args []ast.ExprID
	if p.at(token.RParen) {
		p.advance()
		return args, true
	}
	for {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')' expected."); !ok {
		return nil, false
	}
	return args, true
}
