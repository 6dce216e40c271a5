package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qasmc/internal/prof"
)

var profiling *prof.Session

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	cpuPath, err := flags.GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memPath, err := flags.GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	profiling, err = prof.Start(prof.Options{CPUPath: cpuPath, MemPath: memPath})
	return err
}
