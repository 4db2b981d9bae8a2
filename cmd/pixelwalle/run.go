package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pixelwalle/internal/driver"
	"pixelwalle/internal/host"
	"pixelwalle/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] file.pw",
	Short: "Check and execute a PixelWallE script",
	Long: `Run checks the script and executes it only when no error was reported.
Print output goes to stdout, diagnostics to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().Bool("show", false, "render the final canvas to stdout")
	runCmd.Flags().Bool("border", true, "frame the rendered canvas")
	runCmd.Flags().String("snapshot", "", "write the final canvas as a msgpack snapshot to this file")
	runCmd.Flags().Bool("trace-exec", false, "print every executed statement to stderr")
	runCmd.Flags().Int("step-limit", 0, "stop after this many statements (0 = manifest or default, -1 = none)")
}

type runFlags struct {
	show      bool
	border    bool
	snapshot  string
	traceExec bool
}

func readRunFlags(cmd *cobra.Command) (runFlags, error) {
	var f runFlags
	var err error
	if f.show, err = cmd.Flags().GetBool("show"); err != nil {
		return f, fmt.Errorf("failed to get show flag: %w", err)
	}
	if f.border, err = cmd.Flags().GetBool("border"); err != nil {
		return f, fmt.Errorf("failed to get border flag: %w", err)
	}
	if f.snapshot, err = cmd.Flags().GetString("snapshot"); err != nil {
		return f, fmt.Errorf("failed to get snapshot flag: %w", err)
	}
	if f.traceExec, err = cmd.Flags().GetBool("trace-exec"); err != nil {
		return f, fmt.Errorf("failed to get trace-exec flag: %w", err)
	}
	return f, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	flags, err := readRunFlags(cmd)
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd, filePath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("step-limit") {
		limit, err := cmd.Flags().GetInt("step-limit")
		if err != nil {
			return fmt.Errorf("failed to get step-limit flag: %w", err)
		}
		s.opts.StepLimit = limit
	}
	s.opts.Output = cmd.OutOrStdout()
	if flags.traceExec {
		s.opts.StepTrace = cmd.ErrOrStderr()
	}

	var result *driver.RunResult
	err = withProfiling(cmd, func() error {
		var runErr error
		result, runErr = driver.Run(cmd.Context(), filePath, s.opts)
		return runErr
	})
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	printStderrDiagnostics(s, result.Bag, result.FileSet)
	if !result.Executed && !s.quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "script not executed: errors reported")
	}
	printTimings(cmd.ErrOrStderr(), s, result.Timer.Report())

	if canvas, ok := result.Canvas(); ok && result.Executed {
		if flags.show {
			showCanvas(cmd.OutOrStdout(), canvas, s.useColor(os.Stdout), flags.border)
		}
		if flags.snapshot != "" {
			if err := writeSnapshot(flags.snapshot, canvas); err != nil {
				return err
			}
		}
	}

	if !result.Executed || result.Runtime != nil {
		return silentFailure(cmd)
	}
	return nil
}

func showCanvas(w io.Writer, canvas *host.Canvas, color, border bool) {
	agent := canvas.Agent()
	fmt.Fprintln(w, ui.RenderCanvas(canvas, ui.CanvasOpts{Color: color, Border: border, Agent: &agent}))
	fmt.Fprintln(w, ui.Legend(canvas))
}

func writeSnapshot(path string, canvas *host.Canvas) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return host.EncodeSnapshot(f, canvas.Snapshot())
}
