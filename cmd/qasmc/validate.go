package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"qasmc/internal/driver"
	"qasmc/internal/project"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] <file.qasm|directory>...",
	Short: "Check the switch statements of OpenQASM 3 programs",
	Long: `Validate parses every input and runs the switch checks: integer targets
and labels, constant labels, unique case values, at least one case and only
supported statements inside case blocks`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	validateCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	validateCmd.Flags().Int("max-inline-depth", project.DefaultMaxInlineDepth, "max nested gate/subroutine expansion")
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	files, err := driver.ExpandInputs(args)
	if err != nil {
		return err
	}
	results, err := driver.RunFiles(cmd.Context(), files, driver.BatchOptions{
		Mode:    driver.ModeValidate,
		Program: s.programOptions(cmd.ErrOrStderr()),
		Jobs:    jobs,
	})
	if err != nil {
		return err
	}

	if format == "json" {
		if s.timings {
			for _, r := range results {
				if r.Program != nil {
					r.Program.AddTimingDiagnostic()
				}
			}
		}
		if err := printJSONDiagnostics(cmd.OutOrStdout(), results, s.maxDiagnostics); err != nil {
			return err
		}
		return failureError(results)
	}

	printPrettyDiagnostics(cmd.ErrOrStderr(), results, s.useColor(os.Stderr))
	if !s.quiet {
		for _, r := range results {
			if r.Err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", r.Path)
			}
		}
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), results)
	}
	return failureError(results)
}
