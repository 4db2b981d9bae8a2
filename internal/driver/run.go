package driver

import (
	"context"
	"errors"
	"fmt"
	"os"

	"pixelwalle/internal/host"
	"pixelwalle/internal/interp"
	"pixelwalle/internal/source"
	"pixelwalle/internal/trace"
)

// RunResult is a checked script and, when the check passed, its execution.
type RunResult struct {
	*CheckResult
	// Executed is false when diagnostics blocked execution.
	Executed bool
	Exec     interp.Result
	// Runtime is the fault that stopped execution, also present in Bag.
	Runtime *interp.RuntimeError
}

// Canvas returns the canvas the script drew on, if the host is one.
func (r *RunResult) Canvas() (*host.Canvas, bool) {
	if r == nil || r.CheckResult == nil {
		return nil, false
	}
	c, ok := r.Host.(*host.Canvas)
	return c, ok
}

// Run checks path and executes it when no error was reported.
// Script faults end up in the bag; the returned error is for I/O failures,
// cancellation of the host output, and internal faults.
func Run(ctx context.Context, path string, opts Options) (*RunResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return runFile(ctx, fs, fs.Get(fileID), opts)
}

// RunSource is Run for an in-memory script.
func RunSource(ctx context.Context, name string, content []byte, opts Options) (*RunResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return runFile(ctx, fs, fs.Get(fileID), opts)
}

func runFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (res *RunResult, err error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "run", 0)
	defer func() { span.End(outcome(err)) }()

	h := opts.host()
	h.Reset()
	opts.Host = h

	checked, err := checkFile(ctx, fs, file, opts, span.ID())
	if err != nil {
		return nil, err
	}
	res = &RunResult{CheckResult: checked}
	if !checked.OK() {
		return res, nil
	}

	// проверка гоняла тень агента, холст надо вернуть в исходное
	h.Reset()
	idx := checked.Timer.Begin("execute")
	defer func() {
		if r := recover(); r != nil {
			ierr, ok := r.(*interp.InternalError)
			if !ok {
				panic(r)
			}
			checked.Timer.End(idx, "internal error")
			if dumpErr := trace.DumpRing(tracer, os.Stderr); dumpErr != nil {
				err = errors.Join(ierr, dumpErr)
				return
			}
			err = ierr
		}
	}()

	res.Exec, err = interp.Execute(ctx, checked.Builder, checked.Root, checked.Env, interp.Options{
		Host:      h,
		StepLimit: opts.StepLimit,
		Trace:     opts.StepTrace,
		Files:     fs,
		Parent:    span.ID(),
	})
	res.Executed = true
	checked.Timer.End(idx, fmt.Sprintf("%d steps", res.Exec.Steps))

	var rerr *interp.RuntimeError
	if errors.As(err, &rerr) {
		res.Runtime = rerr
		rerr.Report(checked.reporter())
		checked.Bag.Sort()
		return res, nil
	}
	return res, err
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}
