package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pixelwalle/internal/prof"
)

// withProfiling runs fn between starting and stopping the profilers named by
// --cpu-profile, --runtime-trace and --mem-profile. The heap profile is
// written after fn returns.
func withProfiling(cmd *cobra.Command, fn func() error) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Heap, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	session, err := prof.Start(opts)
	if err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	defer func() {
		if stopErr := session.Stop(); stopErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to write profiles: %v\n", stopErr)
		}
	}()
	return fn()
}
