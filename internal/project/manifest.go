package project

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"pixelwalle/internal/host"
	"pixelwalle/internal/parser"
)

// Manifest is a decoded pixelwalle.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest sections. Keys left out keep their Default values.
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Parser ParserConfig `toml:"parser"`
	Check  CheckConfig  `toml:"check"`
	Run    RunConfig    `toml:"run"`
}

type CanvasConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
}

type ParserConfig struct {
	// OnUnrecognized is "skip" or "fail".
	OnUnrecognized string `toml:"on_unrecognized"`
}

type CheckConfig struct {
	MaxDiagnostics int  `toml:"max_diagnostics"`
	Suggestions    bool `toml:"suggestions"`
}

type RunConfig struct {
	// StepLimit caps executed statements; 0 keeps the interpreter default.
	StepLimit int `toml:"step_limit"`
}

// Default is the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{Width: host.DefaultWidth, Height: host.DefaultHeight, Background: "White"},
		Parser: ParserConfig{OnUnrecognized: "skip"},
		Check:  CheckConfig{MaxDiagnostics: 100, Suggestions: true},
	}
}

// LoadManifest finds pixelwalle.toml above startDir and decodes it.
// ok is false when there is no manifest; that is not an error.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes one manifest file on top of Default.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(cfg, meta); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig is LoadConfig for in-memory manifests.
func DecodeConfig(data string) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := validate(cfg, meta); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config, meta toml.MetaData) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if meta.IsDefined("canvas", "width") && cfg.Canvas.Width <= 0 {
		return fmt.Errorf("[canvas].width must be positive, got %d", cfg.Canvas.Width)
	}
	if meta.IsDefined("canvas", "height") && cfg.Canvas.Height <= 0 {
		return fmt.Errorf("[canvas].height must be positive, got %d", cfg.Canvas.Height)
	}
	if _, ok := host.LookupColor(cfg.Canvas.Background); !ok {
		return fmt.Errorf("[canvas].background: unsupported colour %q", cfg.Canvas.Background)
	}
	if _, ok := parser.ParseMode(cfg.Parser.OnUnrecognized); !ok {
		return fmt.Errorf("[parser].on_unrecognized must be \"skip\" or \"fail\", got %q", cfg.Parser.OnUnrecognized)
	}
	if meta.IsDefined("check", "max_diagnostics") && cfg.Check.MaxDiagnostics <= 0 {
		return fmt.Errorf("[check].max_diagnostics must be positive, got %d", cfg.Check.MaxDiagnostics)
	}
	if cfg.Run.StepLimit < 0 {
		return fmt.Errorf("[run].step_limit must not be negative, got %d", cfg.Run.StepLimit)
	}
	return nil
}

// CanvasOptions converts the [canvas] section. Output is left for the caller.
func (c Config) CanvasOptions() host.Options {
	bg, ok := host.LookupColor(c.Canvas.Background)
	if !ok {
		bg = host.White
	}
	return host.Options{Width: c.Canvas.Width, Height: c.Canvas.Height, Background: bg}
}

// ParserMode converts [parser].on_unrecognized.
func (c Config) ParserMode() parser.Mode {
	mode, _ := parser.ParseMode(c.Parser.OnUnrecognized)
	return mode
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}
