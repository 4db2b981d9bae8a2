package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the pixelwalle CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored renders Version with each numeric part in its own colour.
// The suffix after the patch number, if any, stays plain.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Describe is the full "version" command output without colour.
func Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pixelwalle %s", Version)
	if GitCommit != "" {
		fmt.Fprintf(&sb, "\ncommit: %s", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&sb, "\nbuilt:  %s", BuildDate)
	}
	return sb.String()
}
