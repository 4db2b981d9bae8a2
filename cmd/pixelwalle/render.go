package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pixelwalle/internal/host"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] snapshot",
	Short: "Render a canvas snapshot written by run --snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().Bool("border", true, "frame the rendered canvas")
}

func runRender(cmd *cobra.Command, args []string) error {
	border, err := cmd.Flags().GetBool("border")
	if err != nil {
		return fmt.Errorf("failed to get border flag: %w", err)
	}
	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	colorMode, err := readSwitchMode("color", colorFlag)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := host.DecodeSnapshot(f)
	if err != nil {
		return err
	}
	canvas, err := host.Restore(snap, io.Discard)
	if err != nil {
		return err
	}
	showCanvas(cmd.OutOrStdout(), canvas, colorMode.resolve(os.Stdout), border)
	return nil
}
