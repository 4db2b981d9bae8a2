package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pixelwalle/internal/diagfmt"
	"pixelwalle/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.pw",
	Short: "Tokenize a PixelWallE script",
	Long:  `Tokenize prints the token stream of a script; lexical errors go to stderr`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s, err := loadSettings(cmd, filePath)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, s.opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	printStderrDiagnostics(s, result.Bag, result.FileSet)

	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens)
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
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
