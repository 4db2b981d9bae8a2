package fuzztests

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// baseSeeds cover each statement form and the usual ways to get them wrong.
var baseSeeds = []string{
	"",
	"Spawn(0, 0)\nColor(\"Red\")\nDrawLine(1, 0, 3)\n",
	"n <- 0\nloop\nn <- n + 1\nGoTo[loop](n < 3)\n",
	"x <- -(2 ** 3) % 5 / 1\n",
	"b <- true && !false || 1 == 2\n",
	"s <- \"a\" + \"b\"\nPrint(s)\n",
	"Spawn(0, 0)\nPrint(GetColorCount(\"White\", 0, 0, GetCanvasWidth() - 1, 3))\n",
	"goto[end]\nend",
	"Spawn(0,",
	"x <- (1 + 2\n",
	"\"unterminated\n",
	"x <- 1\tx\r\n",
	"GoTo[a](",
	"GoTo[]\n",
	"@@@\n<-\n",
	"Spawn(0, 0)\nDrawCircle(1, 1, 100)\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range baseSeeds {
		f.Add([]byte(s))
	}
	addScenarioSeeds(f)
}

// addScenarioSeeds adds the scripts of the driver's YAML scenarios.
func addScenarioSeeds(f *testing.F) {
	path := filepath.Join("..", "driver", "testdata", "scenarios.yaml")
	// #nosec G304 -- path is a fixed repository location
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var doc struct {
		Scenarios []struct {
			Source string `yaml:"source"`
		} `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return
	}
	for _, s := range doc.Scenarios {
		f.Add(clampSeed([]byte(s.Source)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
