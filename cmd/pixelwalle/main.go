package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pixelwalle/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pixelwalle",
	Short: "PixelWallE script checker and interpreter",
	Long: `PixelWallE drives a brush-carrying agent over a square canvas.
The tool tokenizes, parses, checks and runs .pw scripts.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
}

// traceCleanup is set by PersistentPreRunE. PersistentPostRun is skipped when
// a command fails, so main calls it after Execute instead.
var traceCleanup = func() {}

// main registers subcommands and persistent flags, then executes the root command.
// Any returned error ends the process with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(fmtCmd)

	registerPersistentFlags(rootCmd)

	err := rootCmd.Execute()
	traceCleanup()
	if err != nil {
		os.Exit(1)
	}
}

func registerPersistentFlags(root *cobra.Command) {
	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	root.PersistentFlags().String("path-mode", "auto", "how file paths are printed (auto|absolute|relative|basename)")

	// Переопределения pixelwalle.toml
	root.PersistentFlags().Int("width", 0, "canvas width (overrides [canvas].width)")
	root.PersistentFlags().Int("height", 0, "canvas height (overrides [canvas].height)")
	root.PersistentFlags().String("on-unrecognized", "", "unrecognized line handling: skip|fail (overrides [parser].on_unrecognized)")

	// Трассировка
	root.PersistentFlags().String("trace", "", "write trace events to a file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|script|step)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "events kept in the ring buffer")
	root.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")

	// Профилирование
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to this file")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
