package driver

import (
	"pixelwalle/internal/diag"
	"pixelwalle/internal/lexer"
	"pixelwalle/internal/source"
	"pixelwalle/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and scans it; the token slice always ends with EOF.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.maxDiagnostics())
	tokens := lexer.Scan(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	bag.Sort()

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
