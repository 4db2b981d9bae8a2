package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/driver"
	"pixelwalle/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.pw|dir>",
	Short: "Check scripts for lexical, syntax and semantic errors",
	Long: `Check runs the front end (lexer, parser and checker) without executing anything.
Directories are checked in parallel; the exit status is 1 when any error is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "preview suggested edits (implies --suggest)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress display for directories (auto|on|off)")
	checkCmd.Flags().Bool("disk-cache", false, "reuse results of unchanged scripts from the user cache directory")
	checkCmd.Flags().Bool("drop-cache", false, "clear the disk cache before checking")
}

var errDiagnostics = errors.New("diagnostics reported")

// silentFailure makes the command exit with status 1 without cobra's usage
// text: the diagnostics are already printed.
func silentFailure(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return errDiagnostics
}

type checkFlags struct {
	view      diagView
	jobs      int
	ui        switchMode
	diskCache bool
	dropCache bool
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var f checkFlags
	var err error
	if f.view.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	if err = validDiagFormat(f.view.format); err != nil {
		return f, err
	}
	if f.view.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.view.fixes, err = cmd.Flags().GetBool("suggest"); err != nil {
		return f, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if f.view.preview, err = cmd.Flags().GetBool("preview"); err != nil {
		return f, fmt.Errorf("failed to get preview flag: %w", err)
	}
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readSwitchMode("ui", uiFlag); err != nil {
		return f, err
	}
	if f.diskCache, err = cmd.Flags().GetBool("disk-cache"); err != nil {
		return f, fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	if f.dropCache, err = cmd.Flags().GetBool("drop-cache"); err != nil {
		return f, fmt.Errorf("failed to get drop-cache flag: %w", err)
	}
	return f, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	flags.view.color = s.useColor(os.Stdout)
	flags.view.pathMode = s.pathMode

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var failed bool
	err = withProfiling(cmd, func() error {
		var runErr error
		if st.IsDir() {
			failed, runErr = checkDirectory(cmd, target, s, flags)
		} else {
			failed, runErr = checkSingle(cmd, target, s, flags)
		}
		return runErr
	})
	if err != nil {
		return err
	}
	if failed {
		return silentFailure(cmd)
	}
	return nil
}

func checkSingle(cmd *cobra.Command, path string, s settings, flags checkFlags) (bool, error) {
	result, err := driver.Check(cmd.Context(), path, s.opts)
	if err != nil {
		return false, fmt.Errorf("check failed: %w", err)
	}
	if err := printDiagnostics(cmd.OutOrStdout(), result.Bag, result.FileSet, flags.view); err != nil {
		return false, err
	}
	printTimings(cmd.ErrOrStderr(), s, result.Timer.Report())
	return result.Bag.HasErrors(), nil
}

func checkDirectory(cmd *cobra.Command, dir string, s settings, flags checkFlags) (bool, error) {
	dirOpts := driver.DirOptions{Jobs: flags.jobs}
	if flags.diskCache || flags.dropCache {
		cache, err := driver.OpenDiskCache("pixelwalle")
		if err != nil {
			return false, fmt.Errorf("failed to open disk cache: %w", err)
		}
		if flags.dropCache {
			if err := cache.DropAll(); err != nil {
				return false, fmt.Errorf("failed to clear disk cache: %w", err)
			}
		}
		if flags.diskCache {
			dirOpts.Cache = cache
		}
	}

	// JSON в stdout не смешиваем с прогрессом
	useUI := flags.view.format != "json" && flags.ui.resolve(os.Stdout)

	var (
		dirResult checkDirOutcome
		err       error
	)
	if useUI {
		dirResult, err = runCheckDirWithUI(cmd.Context(), dir, s.opts, dirOpts)
	} else {
		dirResult.fs, dirResult.results, dirResult.err = driver.CheckDir(cmd.Context(), dir, s.opts, dirOpts)
	}
	if err != nil {
		return false, err
	}
	if dirResult.err != nil {
		return false, fmt.Errorf("check failed: %w", dirResult.err)
	}

	merged := diag.NewBag(s.opts.MaxDiagnostics)
	var (
		report observ.Report
		failed bool
		cached int
	)
	for _, r := range dirResult.results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			failed = true
			continue
		}
		merged.Merge(r.Bag)
		report.Add(r.Timing)
		if r.Cached {
			cached++
		}
	}
	merged.Sort()
	if err := printDiagnostics(cmd.OutOrStdout(), merged, dirResult.fs, flags.view); err != nil {
		return false, err
	}

	if !s.quiet && flags.view.format != "json" {
		fmt.Fprintf(cmd.ErrOrStderr(), "checked %d scripts: %d errors, %d warnings",
			len(dirResult.results), merged.Count(diag.SevError), merged.Count(diag.SevWarning))
		if dirOpts.Cache != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), " (%d cached)", cached)
		}
		fmt.Fprintln(cmd.ErrOrStderr())
	}
	printTimings(cmd.ErrOrStderr(), s, report)
	return failed || merged.HasErrors(), nil
}
