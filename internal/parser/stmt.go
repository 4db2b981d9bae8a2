package parser

import (
	"fmt"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/builtin"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/token"
)

// stmtForm is one statement alternative. It returns false when the line
// does not have that form; the caller restores the cursor.
type stmtForm func(p *Parser) (ast.StmtID, bool)

// Порядок важен: метка пробуется последней.
var stmtForms = [...]stmtForm{
	(*Parser).parseAssignStmt,
	(*Parser).parseGotoStmt,
	(*Parser).parseActionStmt,
	(*Parser).parseLabelStmt,
}

type attempt struct {
	far int
	buf diag.BufferReporter
}

// parseLine пробует все формы оператора по очереди, откатывая курсор после
// каждой неудачи. Диагностика неудачной попытки не выходит наружу, кроме
// попытки, продвинувшейся дальше всех: её ошибки описывают строку лучше всего.
func (p *Parser) parseLine() (ast.StmtID, bool) {
	start := p.pos
	startSpan := p.lastSpan
	var attempts [len(stmtForms)]attempt
	best := -1

	for i, form := range stmtForms {
		a := &attempts[i]
		p.pos, p.far, p.lastSpan = start, start, startSpan
		p.sink = &a.buf

		stmtID, ok := form(p)
		a.far = p.far
		p.sink = nil
		if ok {
			p.commit(&a.buf)
			return stmtID, true
		}
		if best < 0 || a.far > attempts[best].far ||
			(a.far == attempts[best].far && a.buf.Len() > 0 && attempts[best].buf.Len() == 0) {
			best = i
		}
	}

	p.pos, p.lastSpan = start, startSpan
	if b := &attempts[best]; b.buf.Len() > 0 {
		p.commit(&b.buf)
	} else {
		tok := p.peek()
		p.report(diag.SynUnrecognizedStmt, diag.SevError, tok.Span,
			fmt.Sprintf("Unrecognized statement starting with %s.", describe(tok)))
	}
	return ast.NoStmtID, false
}

// parseAssignStmt: Ident <- Expr
func (p *Parser) parseAssignStmt() (ast.StmtID, bool) {
	if !p.at(token.Ident) || p.peekN(1).Kind != token.LArrow {
		return ast.NoStmtID, false
	}
	nameTok := p.advance()
	p.advance() // <-

	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	span := nameTok.Span.Cover(p.lastSpan)
	if !p.expectEnd() {
		return ast.NoStmtID, false
	}
	name := p.arenas.Strings.Intern(nameTok.Text)
	return p.arenas.Stmts.NewAssign(span, nameTok.Span, name, value), true
}

// parseGotoStmt: GoTo [Ident] или GoTo [Ident] (Expr)
func (p *Parser) parseGotoStmt() (ast.StmtID, bool) {
	if !p.at(token.KwGoto) {
		return ast.NoStmtID, false
	}
	gotoTok := p.advance()

	if _, ok := p.expect(token.LBracket, diag.SynUnexpectedToken, "'[' expected."); !ok {
		return ast.NoStmtID, false
	}
	labelTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "Label name expected.")
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "']' expected."); !ok {
		return ast.NoStmtID, false
	}

	cond := ast.NoExprID
	if p.at(token.LParen) {
		p.advance()
		if cond, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')' expected."); !ok {
			return ast.NoStmtID, false
		}
	}

	span := gotoTok.Span.Cover(p.lastSpan)
	if !p.expectEnd() {
		return ast.NoStmtID, false
	}
	label := p.arenas.Strings.Intern(labelTok.Text)
	return p.arenas.Stmts.NewGoto(span, labelTok.Span, label, cond), true
}

// parseActionStmt: Ident ( Args )
func (p *Parser) parseActionStmt() (ast.StmtID, bool) {
	if !p.at(token.Ident) || p.peekN(1).Kind != token.LParen {
		return ast.NoStmtID, false
	}
	nameTok := p.advance()
	args, ok := p.parseArgs()
	if !ok {
		return ast.NoStmtID, false
	}
	span := nameTok.Span.Cover(p.lastSpan)
	if !p.expectEnd() {
		return ast.NoStmtID, false
	}
	name := p.arenas.Strings.Intern(nameTok.Text)
	return p.arenas.Stmts.NewAction(span, nameTok.Span, name, builtin.Lookup(nameTok.Text), args), true
}

// parseLabelStmt: Ident на отдельной строке. Ошибок не репортит:
// если строка не метка, лучше сообщить о ней как о нераспознанной.
func (p *Parser) parseLabelStmt() (ast.StmtID, bool) {
	if !p.at(token.Ident) {
		return ast.NoStmtID, false
	}
	nameTok := p.advance()
	if !p.at_or(token.NewLine, token.EOF) {
		return ast.NoStmtID, false
	}
	p.expectEnd()
	name := p.arenas.Strings.Intern(nameTok.Text)
	return p.arenas.Stmts.NewLabel(nameTok.Span, name), true
}
