package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pixelwalle/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().Bool("full", false, "include commit and build date")
}

func runVersion(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return fmt.Errorf("failed to get full flag: %w", err)
	}
	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	colorMode, err := readSwitchMode("color", colorFlag)
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "json":
		return renderVersionJSON(cmd.OutOrStdout(), full)
	case "pretty":
		renderVersionPretty(cmd.OutOrStdout(), full, colorMode.resolve(os.Stdout))
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func renderVersionPretty(out io.Writer, full, colored bool) {
	if !full {
		v := version.Version
		if colored {
			v = version.Colored()
		}
		fmt.Fprintf(out, "pixelwalle %s\n", v)
		return
	}
	fmt.Fprintln(out, version.Describe())
}

func renderVersionJSON(out io.Writer, full bool) error {
	payload := versionPayload{Tool: "pixelwalle", Version: version.Version}
	if full {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
		payload.BuildDate = valueOrUnknown(version.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
