package builtin

import "testing"

func TestCatalogueComplete(t *testing.T) {
	arity := map[string]int{
		"Spawn": 2, "Draw": 0, "Plot": 2, "Move": 2, "Size": 1, "Color": 1, "ColorRGB": 3,
		"DrawLine": 3, "PlotLine": 4, "DrawCircle": 3, "PlotCircle": 3,
		"DrawRectangle": 5, "PlotRectangle": 4, "Fill": 0, "Print": 1, "Erase": 0,
		"GetActualX": 0, "GetActualY": 0, "GetCanvasSize": 0, "GetCanvasWidth": 0,
		"GetCanvasHeight": 0, "GetBrushSize": 0, "GetColorCount": 5,
		"IsBrushColor": 1, "IsBrushSize": 1, "IsCanvasColor": 3,
	}
	if len(All()) != len(arity) {
		t.Fatalf("catalogue has %d entries, want %d", len(All()), len(arity))
	}
	for name, n := range arity {
		op := Lookup(name)
		if !op.IsValid() {
			t.Fatalf("Lookup(%q) = Unknown", name)
		}
		if got := op.Info().Arity(); got != n {
			t.Errorf("%s arity = %d, want %d", name, got, n)
		}
		if op.String() != name {
			t.Errorf("String() = %q, want %q", op.String(), name)
		}
		if op.IsAction() == op.IsFunction() {
			t.Errorf("%s must be exactly one of action/function", name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, name := range []string{"", "spawn", "DRAW", "Teleport", "IsCanvascolor"} {
		if op := Lookup(name); op != Unknown {
			t.Errorf("Lookup(%q) = %v, want Unknown", name, op)
		}
	}
	if Unknown.IsValid() || Unknown.IsAction() || Unknown.IsFunction() {
		t.Error("Unknown must be neither action nor function")
	}
	if Op(200).Info() != Unknown.Info() {
		t.Error("out-of-range op must map to Unknown info")
	}
}

func TestNamesByCategory(t *testing.T) {
	actions := Names(CategoryAction)
	functions := Names(CategoryFunction)
	if len(actions) != 16 || len(functions) != 10 {
		t.Fatalf("actions=%d functions=%d", len(actions), len(functions))
	}
	if actions[0] != "Spawn" || functions[0] != "GetActualX" {
		t.Errorf("unexpected order: %s, %s", actions[0], functions[0])
	}
}
