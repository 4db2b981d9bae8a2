package driver

import (
	"context"
	"fmt"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/env"
	"pixelwalle/internal/host"
	"pixelwalle/internal/lexer"
	"pixelwalle/internal/observ"
	"pixelwalle/internal/sema"
	"pixelwalle/internal/source"
	"pixelwalle/internal/trace"
)

// CheckResult is the front end output for one script.
type CheckResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Root    ast.StmtID
	// Env holds the label table and variable kinds left by the checker.
	Env  *env.Context
	Bag  *diag.Bag
	Sema sema.Result
	Host host.Capability
	// Stopped is set when the parser gave up before the end of the file.
	Stopped bool
	// ParseErrors is the parser's own error count, independent of the bag limit.
	ParseErrors uint
	Timer       *observ.Timer
}

// OK reports whether the script may run: no error of any phase, including
// errors the bag dropped at its limit.
func (r *CheckResult) OK() bool {
	if r == nil {
		return false
	}
	return r.ParseErrors == 0 && !r.Stopped && r.Sema.OK() && !r.Bag.HasErrors()
}

// Check loads path and runs lex, parse and check.
func Check(ctx context.Context, path string, opts Options) (*CheckResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return checkFile(ctx, fs, fs.Get(fileID), opts, 0)
}

// CheckSource is Check for an in-memory script.
func CheckSource(ctx context.Context, name string, content []byte, opts Options) (*CheckResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return checkFile(ctx, fs, fs.Get(fileID), opts, 0)
}

func checkFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options, parent uint64) (*CheckResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check", parent)
	defer span.End("")

	timer := observ.NewTimer()
	timer.Observe(opts.Observer)

	bag := diag.NewBag(opts.maxDiagnostics())
	rep := diag.BagReporter{Bag: bag}
	res := &CheckResult{FileSet: fs, File: file, Bag: bag, Env: env.New(), Timer: timer}

	// lex
	lexSpan := trace.Begin(tracer, trace.ScopePass, "lex", span.ID())
	idx := timer.Begin("lex")
	toks := lexer.Scan(file, lexer.Options{Reporter: rep})
	timer.End(idx, fmt.Sprintf("%d tokens", len(toks)))
	lexSpan.WithCount("tokens", len(toks)).End("")

	// parse
	parseSpan := trace.Begin(tracer, trace.ScopePass, "parse", span.ID())
	idx = timer.Begin("parse")
	pr, err := parseTokens(toks, rep, opts)
	if err != nil {
		parseSpan.End(err.Error())
		return nil, err
	}
	stmts := pr.Builder.Statements(pr.Root)
	hints := 0
	if !opts.NoSuggestions && bag.HasErrors() {
		hints = reportForeignSyntax(file, bag, rep)
	}
	timer.End(idx, fmt.Sprintf("%d statements", len(stmts)))
	parseSpan.WithCount("statements", len(stmts)).
		WithCount("hints", hints).End("")
	res.Builder, res.Root, res.Stopped = pr.Builder, pr.Root, pr.Stopped
	res.ParseErrors = pr.Errors

	// check
	checkSpan := trace.Begin(tracer, trace.ScopePass, "check", span.ID())
	idx = timer.Begin("check")
	res.Host = opts.host()
	res.Sema = sema.Check(pr.Builder, pr.Root, res.Env, sema.Options{
		Reporter:      rep,
		Host:          res.Host,
		NoSuggestions: opts.NoSuggestions,
	})
	timer.End(idx, fmt.Sprintf("%d errors", res.Sema.Errors))
	checkSpan.WithCount("errors", res.Sema.Errors).End("")

	bag.Sort()
	bag.Dedup()
	return res, nil
}

func (r *CheckResult) reporter() diag.Reporter {
	return diag.BagReporter{Bag: r.Bag}
}
