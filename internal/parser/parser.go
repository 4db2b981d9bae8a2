package parser

import (
	"slices"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/lexer"
	"pixelwalle/internal/source"
	"pixelwalle/internal/token"
)

// Mode selects what happens when a line matches no statement form.
type Mode uint8

const (
	// ModeSkipAndReport reports the line and resumes after its newline.
	ModeSkipAndReport Mode = iota
	// ModeFailFast reports the line and stops parsing.
	ModeFailFast
)

func (m Mode) String() string {
	if m == ModeFailFast {
		return "fail"
	}
	return "skip"
}

// ParseMode maps the textual form used in pixelwalle.toml and on the command line.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "skip":
		return ModeSkipAndReport, true
	case "fail":
		return ModeFailFast, true
	}
	return ModeSkipAndReport, false
}

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	Mode          Mode
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Root    ast.StmtID // StmtBlock with the flat statement list
	Builder *ast.Builder
	// Stopped is set when ModeFailFast or MaxErrors cut parsing short.
	Stopped bool
	Errors  uint
}

// Parser — состояние парсера на один файл
type Parser struct {
	toks     []token.Token
	pos      int
	far      int // самая дальняя позиция, достигнутая текущей попыткой
	arenas   *ast.Builder
	opts     Options
	sink     diag.Reporter // буфер текущей попытки
	lastSpan source.Span
}

// ParseFile lexes file and parses the resulting tokens.
// Lexer warnings go to the same reporter as syntax errors.
func ParseFile(file *source.File, arenas *ast.Builder, opts Options) Result {
	toks := lexer.Scan(file, lexer.Options{Reporter: opts.Reporter})
	return Parse(toks, arenas, opts)
}

// Parse builds the statement block for an already scanned token stream.
// toks must end with an EOF token, as lexer.Scan guarantees.
func Parse(toks []token.Token, arenas *ast.Builder, opts Options) Result {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		toks = append(slices.Clone(toks), token.Token{Kind: token.EOF, Text: lexer.EOFText})
	}
	if arenas == nil {
		arenas = ast.NewBuilder(ast.Hints{}, nil)
	}
	p := Parser{
		toks:     toks,
		arenas:   arenas,
		opts:     opts,
		lastSpan: toks[0].Span.AtStart(),
	}
	root, stopped := p.parseBlock()
	return Result{
		Root:    root,
		Builder: arenas,
		Stopped: stopped,
		Errors:  p.opts.CurrentErrors,
	}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekN(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// parseBlock — основной цикл: строка за строкой до EOF.
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	startSpan := p.peek().Span
	var stmts []ast.StmtID
	stopped := false
	for !p.at(token.EOF) {
		if p.opts.Enough() {
			stopped = true
			break
		}
		if p.at(token.NewLine) {
			p.advance()
			continue
		}
		stmtID, ok := p.parseLine()
		if ok {
			stmts = append(stmts, stmtID)
			continue
		}
		if p.opts.Mode == ModeFailFast {
			p.report(diag.SynParseAborted, diag.SevInfo, p.peek().Span.AtStart(), "Parsing stopped at the first unrecognized line.")
			stopped = true
			break
		}
		p.resyncLine()
	}
	span := startSpan.Cover(p.peek().Span)
	return p.arenas.Stmts.NewBlock(span, stmts), stopped
}

// resyncLine — пропускаем всё до конца строки включительно.
func (p *Parser) resyncLine() {
	for !p.at_or(token.NewLine, token.EOF) {
		p.advance()
	}
	if p.at(token.NewLine) {
		p.advance()
	}
}
