package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pixelwalle/internal/diagfmt"
	"pixelwalle/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.pw",
	Short: "Parse a PixelWallE script and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|tree|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s, err := loadSettings(cmd, filePath)
	if err != nil {
		return err
	}

	result, err := driver.Parse(filePath, s.opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	printStderrDiagnostics(s, result.Bag, result.FileSet)
	if result.Stopped && !s.quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "parsing stopped at the first unrecognized line")
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatASTPretty(out, result.Builder, result.Root, result.FileSet)
	case "tree":
		err = diagfmt.FormatASTTree(out, result.Builder, result.Root, result.FileSet)
	case "json":
		err = diagfmt.FormatASTJSON(out, result.Builder, result.Root)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return silentFailure(cmd)
	}
	return nil
}
