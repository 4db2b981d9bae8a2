package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pixelwalle/internal/diagfmt"
	"pixelwalle/internal/driver"
	"pixelwalle/internal/parser"
	"pixelwalle/internal/project"
)

// settings is what every script command needs: driver options built from the
// manifest plus flag overrides, and the output switches.
type settings struct {
	opts     driver.Options
	manifest *project.Manifest // nil without pixelwalle.toml

	quiet    bool
	timings  bool
	color    switchMode
	pathMode diagfmt.PathMode
}

// loadSettings looks for pixelwalle.toml next to target (a script or a
// directory) and applies the persistent flags on top of it.
func loadSettings(cmd *cobra.Command, target string) (settings, error) {
	var s settings
	flags := cmd.Flags()

	startDir := target
	if st, err := os.Stat(target); err == nil && !st.IsDir() {
		startDir = filepath.Dir(target)
	}
	cfg := project.Default()
	manifest, ok, err := project.LoadManifest(startDir)
	if err != nil {
		return s, err
	}
	if ok {
		s.manifest = manifest
		cfg = manifest.Config
	}
	if err := applyOverrides(flags, &cfg); err != nil {
		return s, err
	}
	s.opts = driver.OptionsFromConfig(cfg)

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return s, fmt.Errorf("failed to get color flag: %w", err)
	}
	if s.color, err = readSwitchMode("color", colorFlag); err != nil {
		return s, err
	}
	pathFlag, err := flags.GetString("path-mode")
	if err != nil {
		return s, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(pathFlag)
	if !ok {
		return s, fmt.Errorf("invalid --path-mode value %q (expected auto|absolute|relative|basename)", pathFlag)
	}
	s.pathMode = mode
	return s, nil
}

// applyOverrides copies the flags the user actually set into cfg.
// Defaults of unset flags never shadow the manifest.
func applyOverrides(flags *pflag.FlagSet, cfg *project.Config) error {
	if flags.Changed("width") {
		w, err := flags.GetInt("width")
		if err != nil {
			return fmt.Errorf("failed to get width flag: %w", err)
		}
		if w <= 0 {
			return fmt.Errorf("--width must be positive, got %d", w)
		}
		cfg.Canvas.Width = w
	}
	if flags.Changed("height") {
		h, err := flags.GetInt("height")
		if err != nil {
			return fmt.Errorf("failed to get height flag: %w", err)
		}
		if h <= 0 {
			return fmt.Errorf("--height must be positive, got %d", h)
		}
		cfg.Canvas.Height = h
	}
	if flags.Changed("on-unrecognized") {
		v, err := flags.GetString("on-unrecognized")
		if err != nil {
			return fmt.Errorf("failed to get on-unrecognized flag: %w", err)
		}
		if _, ok := parser.ParseMode(v); !ok {
			return fmt.Errorf("invalid --on-unrecognized value %q (expected skip|fail)", v)
		}
		cfg.Parser.OnUnrecognized = v
	}
	if flags.Changed("max-diagnostics") {
		n, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		if n <= 0 {
			return fmt.Errorf("--max-diagnostics must be positive, got %d", n)
		}
		cfg.Check.MaxDiagnostics = n
	}
	return nil
}

// useColor resolves --color for output going to f.
func (s settings) useColor(f *os.File) bool {
	return s.color.resolve(f)
}
