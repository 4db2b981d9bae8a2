package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pixelwalle/internal/diag"
	"pixelwalle/internal/driver"
	"pixelwalle/internal/fix"
	"pixelwalle/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.pw|dir>",
	Short: "Apply the checker's suggested replacements",
	Long: `Fix checks the scripts and applies the "did you mean" replacements offered for
misspelled variables, labels and builtins.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply the fix with this identifier (see --list)")
	fixCmd.Flags().Bool("list", false, "list available fixes without applying them")
	fixCmd.Flags().Bool("dry-run", false, "print the fixed content instead of writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fmt.Errorf("failed to get once flag: %w", err)
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fmt.Errorf("failed to get id flag: %w", err)
	}
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return fmt.Errorf("failed to get list flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}
	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	s, err := loadSettings(cmd, targetPath)
	if err != nil {
		return err
	}
	// без подсказок чинить нечего
	s.opts.NoSuggestions = false

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// id уникален только в пределах одного файла
	if info.IsDir() && targetID != "" {
		return fmt.Errorf("fix: --id can only be used with a single file")
	}

	var (
		fs          *source.FileSet
		diagnostics []diag.Diagnostic
	)
	err = withProfiling(cmd, func() error {
		var collectErr error
		fs, diagnostics, collectErr = collectDiagnostics(cmd, targetPath, info.IsDir(), s)
		return collectErr
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if list {
		return listFixes(out, fs, diagnostics)
	}
	res, applyErr := fix.Apply(fs, diagnostics, fix.ApplyOptions{Mode: mode, TargetID: targetID, DryRun: dryRun})
	return handleApplyResult(out, res, applyErr, dryRun)
}

func collectDiagnostics(cmd *cobra.Command, path string, isDir bool, s settings) (*source.FileSet, []diag.Diagnostic, error) {
	if !isDir {
		result, err := driver.Check(cmd.Context(), path, s.opts)
		if err != nil {
			return nil, nil, fmt.Errorf("fix: check failed: %w", err)
		}
		return result.FileSet, result.Bag.Items(), nil
	}
	fs, results, err := driver.CheckDir(cmd.Context(), path, s.opts, driver.DirOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("fix: check failed: %w", err)
	}
	var all []diag.Diagnostic
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			continue
		}
		all = append(all, r.Bag.Items()...)
	}
	return fs, all, nil
}

func listFixes(out io.Writer, fs *source.FileSet, diagnostics []diag.Diagnostic) error {
	cands, _ := fix.Candidates(fs, diagnostics)
	if len(cands) == 0 {
		_, err := fmt.Fprintln(out, "No fixes available.")
		return err
	}
	for _, c := range cands {
		path := fs.Get(c.Diag.Primary.File).FormatPath("auto", fs.BaseDir())
		if _, err := fmt.Fprintf(out, "%s  %s: %s (%s)\n", c.ID, path, c.Fix.Title, c.Diag.Message); err != nil {
			return err
		}
	}
	return nil
}

func handleApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}
	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(out, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			fmt.Fprintf(out, "  %s [%s] %s (%d edits)\n", item.Title, item.ID, item.PrimaryPath, item.EditCount)
		}
	}
	if len(res.FileChanges) > 0 {
		if dryRun {
			for _, change := range res.FileChanges {
				fmt.Fprintf(out, "--- %s\n%s", change.Path, change.Content)
			}
		} else {
			fmt.Fprintln(out, "Updated files:")
			for _, change := range res.FileChanges {
				fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
			}
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			if skip.Title != "" {
				fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, skip.ID, skip.Reason)
			} else {
				fmt.Fprintf(out, "  [%s]: %s\n", skip.ID, skip.Reason)
			}
		}
	}

	if errors.Is(applyErr, fix.ErrNoFixes) {
		if len(res.Applied) == 0 && len(res.Skipped) == 0 {
			fmt.Fprintln(out, "No fixes available.")
		}
		return nil
	}
	return applyErr
}
