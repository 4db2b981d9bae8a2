package sema_test

import (
	"slices"
	"testing"

	"pixelwalle/internal/ast"
	"pixelwalle/internal/diag"
	"pixelwalle/internal/env"
	"pixelwalle/internal/host"
	"pixelwalle/internal/parser"
	"pixelwalle/internal/sema"
	"pixelwalle/internal/source"
	"pixelwalle/internal/value"
)

type checked struct {
	res sema.Result
	bag *diag.Bag
	ctx *env.Context
	b   *ast.Builder
	pr  parser.Result
}

func checkSource(t *testing.T, input string, h host.Capability) checked {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.pw", []byte(input))

	parseBag := diag.NewBag(100)
	pr := parser.ParseFile(fs.Get(fileID), nil, parser.Options{Reporter: diag.BagReporter{Bag: parseBag}})
	if parseBag.HasErrors() {
		t.Fatalf("unexpected syntax errors in %q: %v", input, messages(parseBag))
	}

	bag := diag.NewBag(100)
	ctx := env.New()
	res := sema.Check(pr.Builder, pr.Root, ctx, sema.Options{
		Reporter: diag.BagReporter{Bag: bag},
		Host:     h,
	})
	return checked{res: res, bag: bag, ctx: ctx, b: pr.Builder, pr: pr}
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func messages(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID()+" "+d.Message)
	}
	return out
}

func TestCheckCodes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []diag.Code
	}{
		{"valid loop", "Spawn(0, 0)\nColor(\"Red\")\nn <- 5\nloop\nDrawLine(1, 0, 1)\nn <- n - 1\nGoTo[loop](n > 0)\n", nil},
		{"forward label", "GoTo[end](true)\nx <- 1\nend\n", nil},
		{"undeclared variable", "x <- y + 1\n", []diag.Code{diag.SemaUndeclaredVar}},
		{"undeclared label", "GoTo[nowhere](true)\n", []diag.Code{diag.SemaUndeclaredLabel}},
		{"duplicate label", "a\nx <- 1\na\n", []diag.Code{diag.SemaDuplicateLabel}},
		{"mixed kinds", "x <- 1 + \"a\"\n", []diag.Code{diag.SemaBinaryMismatch}},
		{"unsupported on booleans", "x <- true + false\n", []diag.Code{diag.SemaBinaryMismatch}},
		{"not on integer", "x <- !1\n", []diag.Code{diag.SemaUnaryMismatch}},
		{"negative boolean", "x <- -true\n", []diag.Code{diag.SemaUnaryMismatch}},
		{"literal division by zero", "x <- 1 / 0\n", []diag.Code{diag.SemaDivisionByZero}},
		{"folded modulus by zero", "z <- 2 - 2\nx <- 5 % z\n", []diag.Code{diag.SemaDivisionByZero}},
		{"unknown action", "Drow()\n", []diag.Code{diag.SemaUnknownBuiltin}},
		{"unknown function", "x <- GetX()\n", []diag.Code{diag.SemaUnknownBuiltin}},
		{"function as statement", "GetActualX()\n", []diag.Code{diag.SemaBuiltinMisuse}},
		{"action in expression", "x <- Draw()\n", []diag.Code{diag.SemaBuiltinMisuse}},
		{"condition not boolean", "a\nGoTo[a](1)\n", []diag.Code{diag.SemaConditionNotBool}},
		{"not spawned", "Draw()\n", []diag.Code{diag.SemaNotSpawned}},
		{"spawned twice", "Spawn(0, 0)\nSpawn(1, 1)\n", []diag.Code{diag.SemaAlreadySpawned}},
		{"spawn outside", "Spawn(40, 0)\n", []diag.Code{diag.SemaOutOfBounds}},
		{"unknown colour", "Spawn(0, 0)\nColor(\"Pink\")\n", []diag.Code{diag.SemaUnsupportedColor}},
		{"folded brush size", "Spawn(0, 0)\nSize(1 - 1)\n", []diag.Code{diag.SemaInvalidBrushSize}},
		{"direction", "Spawn(0, 0)\nDrawLine(2, 0, 1)\n", []diag.Code{diag.SemaInvalidDirection}},
		{"arity", "Spawn(1)\n", []diag.Code{diag.SemaArity}},
		{"argument kind", "Spawn(0, 0)\nColor(3)\n", []diag.Code{diag.SemaArgType}},
		{"variable folded into bounds", "Spawn(0, 0)\nd <- 10 * 4\nDrawLine(1, 0, d)\n", []diag.Code{diag.SemaOutOfBounds}},
		{"label forgets values", "Spawn(0, 0)\nd <- 40\nl\nDrawLine(1, 0, d)\n", nil},
		{"function results are unknown", "Spawn(0, 0)\nd <- GetCanvasWidth() * 2\nDrawLine(1, 0, d)\n", nil},
		{"retyped variable", "x <- 1\nx <- \"Red\"\nColor(x)\n", nil},
		{"undeclared and duplicate label both reported", "a\nx <- y\na\n", []diag.Code{diag.SemaDuplicateLabel, diag.SemaUndeclaredVar}},
		{"mismatch still yields Integer", "x <- 1 + true\ny <- x + \"s\"\n", []diag.Code{diag.SemaBinaryMismatch, diag.SemaBinaryMismatch}},
		{"undeclared operand still yields Integer", "x <- q * 2\ny <- x && true\n", []diag.Code{diag.SemaUndeclaredVar, diag.SemaBinaryMismatch}},
		{"unary mismatch still yields Boolean", "x <- !5\ny <- x + 1\n", []diag.Code{diag.SemaUnaryMismatch, diag.SemaBinaryMismatch}},
		{"composed kind reaches arguments", "Spawn(0, 0)\nc <- -true\nColor(c)\n", []diag.Code{diag.SemaUnaryMismatch, diag.SemaArgType}},
		{"undeclared variable is not reported twice", "x <- y\nColor(x)\n", []diag.Code{diag.SemaUndeclaredVar}},
		{"arguments checked for unknown builtins", "Drow(y)\n", []diag.Code{diag.SemaUndeclaredVar, diag.SemaUnknownBuiltin}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkSource(t, tt.input, nil)
			if !slices.Equal(codes(got.bag), tt.want) {
				t.Fatalf("codes = %v, want %v\n%v", codes(got.bag), tt.want, messages(got.bag))
			}
			if got.res.Errors != len(tt.want) {
				t.Fatalf("Errors = %d, want %d", got.res.Errors, len(tt.want))
			}
			if got.res.OK() != (len(tt.want) == 0) {
				t.Fatalf("OK() = %v", got.res.OK())
			}
		})
	}
}

func TestCheckMessages(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
		note  string
	}{
		{"variable", "count <- 1\nx <- cont + 1\n", "'cont' not declared.", "did you mean 'count'?"},
		{"label", "GoTo[lop](true)\nloop\n", "Label 'lop' not declared.", "did you mean 'loop'?"},
		{"action", "Drow()\n", "Invalid 'Drow' action", "did you mean 'Draw'?"},
		{"mismatch", "x <- 1 + \"a\"\n", "Unsupported Add for Integer and String", ""},
		{"unary", "x <- !1\n", "Unsupported Not for Integer.", ""},
		{"division", "x <- 4 / 0\n", "Division by zero is not supported", ""},
		{"duplicate", "a\na\n", "'a' already declared.", "first declared here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkSource(t, tt.input, nil)
			items := got.bag.Items()
			if len(items) != 1 {
				t.Fatalf("want 1 diagnostic, got %v", messages(got.bag))
			}
			if items[0].Message != tt.msg {
				t.Fatalf("message = %q, want %q", items[0].Message, tt.msg)
			}
			if tt.note == "" {
				return
			}
			if len(items[0].Notes) != 1 || items[0].Notes[0].Msg != tt.note {
				t.Fatalf("notes = %+v, want %q", items[0].Notes, tt.note)
			}
		})
	}
}

func TestNoSuggestions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.pw", []byte("count <- 1\nx <- cont\n"))
	pr := parser.ParseFile(fs.Get(fileID), nil, parser.Options{})
	bag := diag.NewBag(10)
	sema.Check(pr.Builder, pr.Root, env.New(), sema.Options{
		Reporter:      diag.BagReporter{Bag: bag},
		NoSuggestions: true,
	})
	if bag.Len() != 1 || len(bag.Items()[0].Notes) != 0 {
		t.Fatalf("expected a bare diagnostic, got %+v", bag.Items())
	}
}

func TestCheckerNeverCallsHost(t *testing.T) {
	rec := host.NewRecorder(host.NewCanvas(host.Options{}))
	got := checkSource(t, "Spawn(1, 1)\nColor(\"Blue\")\nDraw()\nx <- GetActualX()\nPrint(x)\n", rec)
	if !got.res.OK() {
		t.Fatalf("unexpected diagnostics: %v", messages(got.bag))
	}
	if len(rec.Calls) != 0 {
		t.Fatalf("checker performed host calls: %v", rec.Ops())
	}
	if rec.Validations != 5 {
		t.Fatalf("validations = %d, want 5", rec.Validations)
	}
}

func TestContextAfterCheck(t *testing.T) {
	got := checkSource(t, "a <- 1\nb <- \"x\" + \"y\"\nstart\nc <- a < 2\nGoTo[start](false)\n", nil)
	if !got.res.OK() {
		t.Fatalf("unexpected diagnostics: %v", messages(got.bag))
	}
	vars := got.ctx.Named(got.b.Strings)
	want := map[string]value.Kind{"a": value.KindInt, "b": value.KindString, "c": value.KindBool}
	for name, kind := range want {
		if vars[name].Kind != kind {
			t.Errorf("%s: kind %s, want %s", name, vars[name].Kind, kind)
		}
	}
	id, ok := got.b.Strings.Find("start")
	if !ok {
		t.Fatalf("label not interned")
	}
	if idx, ok := got.ctx.LabelIndex(id); !ok || idx != 2 {
		t.Fatalf("start -> %d, %v; want 2", idx, ok)
	}
}

func TestExprKinds(t *testing.T) {
	got := checkSource(t, "s <- \"a\" + \"b\"\n", nil)
	stmts := got.b.Statements(got.pr.Root)
	assign, ok := got.b.Stmts.Assign(stmts[0])
	if !ok {
		t.Fatalf("first statement is not an assignment")
	}
	if k := got.res.ExprKinds[assign.Value]; k != value.KindString {
		t.Fatalf("kind = %s, want String", k)
	}
}
