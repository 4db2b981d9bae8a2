package interp_test

import (
	"bytes"
	"context"
	"errors"
	"maps"
	"strings"
	"testing"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/builtin"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/env"
	"pixelwalle/internal/host"
	"pixelwalle/internal/interp"
	"pixelwalle/internal/parser"
	"pixelwalle/internal/sema"
	"pixelwalle/internal/source"
	"pixelwalle/internal/value"
)

type program struct {
	b    *ast.Builder
	root ast.StmtID
	fs   *source.FileSet
}

func parseChecked(t *testing.T, input string, h host.Capability) program {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.pw", []byte(input))
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	pr := parser.ParseFile(fs.Get(fileID), nil, parser.Options{Reporter: rep})
	res := sema.Check(pr.Builder, pr.Root, env.New(), sema.Options{Reporter: rep, Host: h})
	if bag.HasErrors() || !res.OK() {
		for _, d := range bag.Items() {
			t.Logf("%s %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("script did not pass the checker")
	}
	return program{b: pr.Builder, root: pr.Root, fs: fs}
}

func runSource(t *testing.T, input string, opts interp.Options) (string, interp.Result, error) {
	t.Helper()
	var out bytes.Buffer
	if opts.Host == nil {
		opts.Host = host.NewCanvas(host.Options{Output: &out})
	}
	p := parseChecked(t, input, opts.Host)
	opts.Host.Reset()
	res, err := interp.Execute(context.Background(), p.b, p.root, env.New(), opts)
	return out.String(), res, err
}

func TestExecuteOutput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"loop", "n <- 0\nloop\nn <- n + 1\nGoTo[loop](n < 5)\nPrint(n)\n", "5\n"},
		{"forward jump skips", "x <- 1\nGoTo[end](true)\nx <- 2\nend\nPrint(x)\n", "1\n"},
		{"false condition falls through", "x <- 1\nGoTo[end](false)\nx <- 2\nend\nPrint(x)\n", "2\n"},
		{"reduce is left associative", "Print(10 - 4 - 3)\n", "3\n"},
		{"shift is right associative", "Print(2 * 3 / 4)\n", "0\n"},
		{"power chain", "Print(2 ** 3 ** 2)\n", "512\n"},
		{"negative exponent", "Print(2 ** -1)\n", "0\n"},
		{"truncating division", "Print(-7 / 2)\nPrint(-7 % 2)\n", "-3\n-1\n"},
		{"concatenation", "Print(\"a\" + \"b\")\n", "ab\n"},
		{"booleans", "Print(!(1 < 2) || 3 >= 3)\n", "true\n"},
		{"retyping", "x <- 1\nx <- \"one\"\nPrint(x)\n", "one\n"},
		{"functions", "Spawn(3, 4)\nPrint(GetActualX() + GetActualY())\n", "7\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runSource(t, tt.input, interp.Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.want {
				t.Fatalf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestExecuteLeavesVariables(t *testing.T) {
	h := host.NewCanvas(host.Options{})
	p := parseChecked(t, "x <- 5\ny <- x + 3\n", h)
	h.Reset()
	ctx := env.New()
	if _, err := interp.Execute(context.Background(), p.b, p.root, ctx, interp.Options{Host: h}); err != nil {
		t.Fatal(err)
	}
	want := map[string]value.Value{"x": value.MakeInt(5), "y": value.MakeInt(8)}
	if got := ctx.Named(p.b.Strings); !maps.Equal(got, want) {
		t.Fatalf("variables = %v, want %v", got, want)
	}
}

func TestExecuteCounts(t *testing.T) {
	_, res, err := runSource(t, "n <- 0\nloop\nn <- n + 1\nGoTo[loop](n < 3)\n", interp.Options{})
	if err != nil {
		t.Fatal(err)
	}
	// 1 + 3 * (label, assign, goto)
	if res.Jumps != 2 {
		t.Fatalf("jumps = %d, want 2", res.Jumps)
	}
	if res.Steps != 10 {
		t.Fatalf("steps = %d, want 10", res.Steps)
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"skipped assignment", "GoTo[skip](true)\ny <- 1\nskip\nPrint(y)\n", diag.RunUnsetVariable},
		{"computed position", "Spawn(0, 0)\nw <- GetCanvasWidth()\nMove(w, 0)\n", diag.RunOutOfBounds},
		{"computed divisor", "Spawn(0, 0)\nz <- GetActualX()\nx <- 1 / z\n", diag.RunDivisionByZero},
		{"colour after label", "c <- \"Re\"\nl\nColor(c + \"x\")\n", diag.RunInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runSource(t, tt.input, interp.Options{})
			var rerr *interp.RuntimeError
			if !errors.As(err, &rerr) {
				t.Fatalf("expected *RuntimeError, got %v", err)
			}
			if rerr.Code != tt.code {
				t.Fatalf("code = %s, want %s (%s)", rerr.Code.ID(), tt.code.ID(), rerr.Message)
			}
		})
	}
}

func TestStepLimit(t *testing.T) {
	_, res, err := runSource(t, "a\nGoTo[a](true)\n", interp.Options{StepLimit: 100})
	var rerr *interp.RuntimeError
	if !errors.As(err, &rerr) || rerr.Code != diag.RunStepLimit {
		t.Fatalf("expected step limit error, got %v", err)
	}
	if res.Steps != 100 {
		t.Fatalf("steps = %d, want 100", res.Steps)
	}
}

func TestCanceledContext(t *testing.T) {
	canvas := host.NewCanvas(host.Options{})
	p := parseChecked(t, "a\nGoTo[a](true)\n", canvas)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := interp.Execute(ctx, p.b, p.root, env.New(), interp.Options{Host: canvas, StepLimit: -1})
	var rerr *interp.RuntimeError
	if !errors.As(err, &rerr) || rerr.Code != diag.RunCanceled {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestBothOperandsAreEvaluated(t *testing.T) {
	rec := host.NewRecorder(host.NewCanvas(host.Options{}))
	_, _, err := runSource(t, "Spawn(0, 0)\nPrint(false && GetActualX() == 0)\nPrint(true || GetActualY() == 0)\n", interp.Options{Host: rec})
	if err != nil {
		t.Fatal(err)
	}
	want := []builtin.Op{builtin.Spawn, builtin.GetActualX, builtin.Print, builtin.GetActualY, builtin.Print}
	got := rec.Ops()
	if len(got) != len(want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ops = %v, want %v", got, want)
		}
	}
}

func TestReuseContext(t *testing.T) {
	var out bytes.Buffer
	canvas := host.NewCanvas(host.Options{Output: &out})
	p := parseChecked(t, "n <- 0\nloop\nn <- n + 1\nGoTo[loop](n < 2)\nPrint(n)\n", canvas)
	ctx := env.New()
	for range 2 {
		canvas.Reset()
		if _, err := interp.Execute(context.Background(), p.b, p.root, ctx, interp.Options{Host: canvas}); err != nil {
			t.Fatal(err)
		}
	}
	if out.String() != "2\n2\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestUncheckedScriptPanics(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("bad.pw", []byte("x <- 1 + \"a\"\n"))
	pr := parser.ParseFile(fs.Get(fileID), nil, parser.Options{})

	defer func() {
		r := recover()
		if _, ok := r.(*interp.InternalError); !ok {
			t.Fatalf("expected *InternalError panic, got %v", r)
		}
	}()
	_, _ = interp.Execute(context.Background(), pr.Builder, pr.Root, env.New(), interp.Options{Host: host.NewCanvas(host.Options{})})
	t.Fatalf("Execute returned normally")
}

func TestStepTrace(t *testing.T) {
	var tr bytes.Buffer
	canvas := host.NewCanvas(host.Options{})
	p := parseChecked(t, "x <- 2\nSpawn(x, x)\n", canvas)
	_, err := interp.Execute(context.Background(), p.b, p.root, env.New(), interp.Options{
		Host:  canvas,
		Trace: &tr,
		Files: p.fs,
	})
	if err != nil {
		t.Fatal(err)
	}
	out := tr.String()
	for _, want := range []string{
		"[step=0] pc=0 assign x @ test.pw:1:1",
		"    write x = 2",
		"[step=1] pc=1 action Spawn/2 @ test.pw:2:1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace %q lacks %q", out, want)
		}
	}
}
