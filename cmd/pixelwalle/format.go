package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pixelwalle/internal/driver"
	"pixelwalle/internal/format"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format PixelWallE scripts",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	registerFmtFlags(fmtCmd)
}

func registerFmtFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("check", false, "list scripts that need formatting without rewriting them")
	cmd.Flags().String("format", "text", "output format (text|json)")
	cmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	cmd.Flags().Bool("keep-blank-lines", true, "keep one empty line where the script had blank lines")
	cmd.Flags().String("goto", "GoTo", "jump keyword spelling (goto|Goto|GoTo)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	keepBlank, err := cmd.Flags().GetBool("keep-blank-lines")
	if err != nil {
		return err
	}
	gotoKeyword, err := cmd.Flags().GetString("goto")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	switch gotoKeyword {
	case "goto", "Goto", "GoTo":
	default:
		return fmt.Errorf("fmt: unknown --goto spelling %q", gotoKeyword)
	}

	s, err := loadSettings(cmd, args[0])
	if err != nil {
		return err
	}

	results, err := driver.FormatPaths(cmd.Context(), args, driver.FormatOptions{
		Check:          check,
		MaxDiagnostics: s.opts.MaxDiagnostics,
		Stdout:         writeToStdout,
		Options:        format.Options{KeepBlankLines: keepBlank, GotoKeyword: gotoKeyword},
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	var hasErrors, hasChanges bool
	switch outputFormat {
	case "text":
		if writeToStdout {
			hasErrors = renderFmtStdout(out, errOut, results)
			break
		}
		hasErrors, hasChanges = renderFmtText(out, errOut, results, check, s.quiet)
	case "json":
		if err := renderFmtJSON(out, results, check); err != nil {
			return err
		}
		for _, res := range results {
			hasErrors = hasErrors || res.Err != nil
			hasChanges = hasChanges || res.Changed
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some scripts")
	}
	if check && hasChanges {
		return silentFailure(cmd)
	}
	return nil
}

func renderFmtStdout(out, errOut io.Writer, results []driver.FormatResult) (hasErrors bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
	return hasErrors
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, check, quiet bool) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if !res.Changed {
			continue
		}
		hasChanges = true
		if quiet {
			continue
		}
		if check {
			fmt.Fprintln(out, res.Path)
		} else {
			fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
	}
	return hasErrors, hasChanges
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
