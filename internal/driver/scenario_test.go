package driver_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/driver"
	"pixelwalle/internal/host"
	"pixelwalle/internal/parser"
)

type scenarioFile struct {
	Scenarios []scenario `yaml:"scenarios"`
}

type scenario struct {
	Name        string         `yaml:"name"`
	Source      string         `yaml:"source"`
	Mode        string         `yaml:"mode"`
	Canvas      scenarioCanvas `yaml:"canvas"`
	Executed    bool           `yaml:"executed"`
	Output      string         `yaml:"output"`
	Diagnostics []string       `yaml:"diagnostics"`
	Pixels      []pixel        `yaml:"pixels"`
}

type scenarioCanvas struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type pixel struct {
	X     int64  `yaml:"x"`
	Y     int64  `yaml:"y"`
	Color string `yaml:"color"`
}

func loadScenarios(t *testing.T, path string) []scenario {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var file scenarioFile
	if err := dec.Decode(&file); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	if len(file.Scenarios) == 0 {
		t.Fatalf("%s has no scenarios", path)
	}
	return file.Scenarios
}

// visibleDiagnostics renders errors and warnings in the short one-line form.
func visibleDiagnostics(res *driver.RunResult) []string {
	var kept []diag.Diagnostic
	for _, d := range res.Bag.Items() {
		if d.Severity >= diag.SevWarning {
			kept = append(kept, d)
		}
	}
	out := diag.FormatShortDiagnostics(kept, res.FileSet, false)
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestScenarios(t *testing.T) {
	for _, sc := range loadScenarios(t, "testdata/scenarios.yaml") {
		t.Run(sc.Name, func(t *testing.T) {
			mode, ok := parser.ParseMode(sc.Mode)
			if !ok {
				t.Fatalf("bad mode %q", sc.Mode)
			}
			var out bytes.Buffer
			res, err := driver.RunSource(context.Background(), "scenario.pw", []byte(sc.Source), driver.Options{
				Mode:   mode,
				Canvas: host.Options{Width: sc.Canvas.Width, Height: sc.Canvas.Height},
				Output: &out,
			})
			if err != nil {
				t.Fatalf("RunSource: %v", err)
			}

			if res.Executed != sc.Executed {
				t.Fatalf("executed = %v, want %v", res.Executed, sc.Executed)
			}
			if out.String() != sc.Output {
				t.Fatalf("output = %q, want %q", out.String(), sc.Output)
			}
			got := visibleDiagnostics(res)
			if strings.Join(got, "\n") != strings.Join(sc.Diagnostics, "\n") {
				t.Fatalf("diagnostics:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(sc.Diagnostics, "\n"))
			}

			if len(sc.Pixels) == 0 {
				return
			}
			canvas, ok := res.Canvas()
			if !ok {
				t.Fatalf("host is not a canvas")
			}
			for _, px := range sc.Pixels {
				want, ok := host.LookupColor(px.Color)
				if !ok {
					t.Fatalf("bad colour %q", px.Color)
				}
				got, inside := canvas.Pixel(px.X, px.Y)
				if !inside || got != want {
					t.Fatalf("pixel (%d, %d) = %v, want %v", px.X, px.Y, got, want)
				}
			}
		})
	}
}
