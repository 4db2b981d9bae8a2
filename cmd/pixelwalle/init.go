package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pixelwalle/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create pixelwalle.toml and a sample script",
	Long: `Init writes a default pixelwalle.toml and a main.pw sample into dir
(the current directory when omitted). The directory is created if needed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const sampleScript = `Spawn(0, 0)
Color("Blue")
Size(3)
n <- 0
loop
DrawLine(1, 1, 5)
n <- n + 1
GoTo[loop](n < 4)
Color("Orange")
DrawCircle(-1, -1, 4)
Print(GetColorCount("Blue", 0, 0, GetCanvasWidth() - 1, GetCanvasHeight() - 1))
`

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	// Создаём каталог при необходимости
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	var buf bytes.Buffer
	if err := project.Encode(&buf, project.Default()); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, "main.pw")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(sampleScript), 0o600); err != nil {
			return fmt.Errorf("failed to write main.pw: %w", err)
		}
		createdMain = true
	}

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if quiet {
		return nil
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized PixelWallE project in %s\n", target)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if createdMain {
		fmt.Fprintln(out, "  - main.pw")
	} else {
		fmt.Fprintln(out, "  - main.pw (existing)")
	}
	return nil
}
