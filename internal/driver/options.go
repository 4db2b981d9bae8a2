package driver

import (
	"io"

	"pixelwalle/internal/host"
	"pixelwalle/internal/observ"
	"pixelwalle/internal/parser"
	"pixelwalle/internal/project"
)

// DefaultMaxDiagnostics is used when Options.MaxDiagnostics is not positive.
const DefaultMaxDiagnostics = 100

// Options configure every pipeline entry point.
type Options struct {
	MaxDiagnostics int
	Mode           parser.Mode
	NoSuggestions  bool

	// Canvas configures the canvas built when Host is nil.
	Canvas host.Options
	// Host replaces the default canvas, e.g. with a host.Recorder.
	Host host.Capability

	// StepLimit is passed to the interpreter (0 = default, <0 = none).
	StepLimit int
	// Output receives Print output of the default canvas.
	Output io.Writer
	// StepTrace receives one line per executed statement.
	StepTrace io.Writer

	// Observer is told about phase boundaries (used by the progress UI).
	Observer observ.Observer
}

// OptionsFromConfig maps a manifest onto driver options. CLI flags are
// applied on top by the caller.
func OptionsFromConfig(cfg project.Config) Options {
	return Options{
		MaxDiagnostics: cfg.Check.MaxDiagnostics,
		Mode:           cfg.ParserMode(),
		NoSuggestions:  !cfg.Check.Suggestions,
		Canvas:         cfg.CanvasOptions(),
		StepLimit:      cfg.Run.StepLimit,
	}
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// host returns the configured host or a fresh canvas writing Print output to o.Output.
func (o Options) host() host.Capability {
	if o.Host != nil {
		return o.Host
	}
	canvasOpts := o.Canvas
	canvasOpts.Output = o.Output
	return host.NewCanvas(canvasOpts)
}
