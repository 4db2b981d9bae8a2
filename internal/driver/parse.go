package driver

import (
	"fortio.org/safecast"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/lexer"
	"pixelwalle/internal/parser"
	"pixelwalle/internal/source"
	"pixelwalle/internal/token"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Root    ast.StmtID
	Bag     *diag.Bag
	// Stopped is set when the parser gave up before the end of the file.
	Stopped bool
}

// Parse loads path and builds its statement block without checking it.
func Parse(path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.maxDiagnostics())
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.Scan(file, lexer.Options{Reporter: rep})
	res, err := parseTokens(toks, rep, opts)
	if err != nil {
		return nil, err
	}
	bag.Sort()

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: res.Builder,
		Root:    res.Root,
		Bag:     bag,
		Stopped: res.Stopped,
	}, nil
}

func parseTokens(toks []token.Token, rep diag.Reporter, opts Options) (parser.Result, error) {
	maxErrors, err := safecast.Conv[uint](opts.maxDiagnostics())
	if err != nil {
		return parser.Result{}, err
	}
	return parser.Parse(toks, ast.NewBuilder(ast.Hints{}, nil), parser.Options{
		Reporter:  rep,
		MaxErrors: maxErrors,
		Mode:      opts.Mode,
	}), nil
}
