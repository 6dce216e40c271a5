package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"qasmc/internal/diagfmt"
	"qasmc/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.qasm",
	Short: "Parse an OpenQASM source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result, err := driver.Parse(cmd.Context(), args[0], s.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   s.useColor(os.Stderr),
			Context: 2,
		})
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatASTPretty(cmd.OutOrStdout(), result.Builder, result.FileID, result.FileSet)
	case "json":
		err = diagfmt.FormatASTJSON(cmd.OutOrStdout(), result.Builder, result.FileID)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("%s: syntax errors", args[0])
	}
	return nil
}
