package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"qasmc/internal/driver"
	"qasmc/internal/project"
)

var unrollCmd = &cobra.Command{
	Use:   "unroll [flags] <file.qasm|directory>...",
	Short: "Flatten OpenQASM 3 programs into branch-free circuits",
	Long: `Unroll validates every input, replaces each switch by the case block its
target selects and inlines gate and subroutine calls. The result is printed
as OpenQASM or serialised as json, yaml or msgpack`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUnroll,
}

func init() {
	unrollCmd.Flags().String("emit", "qasm", "output format (qasm|json|yaml|msgpack)")
	unrollCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	unrollCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	unrollCmd.Flags().Bool("disk-cache", false, "reuse unroll results from the user cache directory")
	unrollCmd.Flags().StringP("out-dir", "o", "", "write one output file per input into this directory")
	unrollCmd.Flags().Int("max-inline-depth", project.DefaultMaxInlineDepth, "max nested gate/subroutine expansion")
}

func runUnroll(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if !slices.Contains(project.EmitFormats, s.emit) {
		return fmt.Errorf("unsupported emit format %q (expected %s)", s.emit, strings.Join(project.EmitFormats, "|"))
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return fmt.Errorf("failed to get out-dir flag: %w", err)
	}

	files, err := driver.ExpandInputs(args)
	if err != nil {
		return err
	}

	opts := driver.BatchOptions{
		Mode:    driver.ModeUnroll,
		Program: s.programOptions(cmd.ErrOrStderr()),
		Jobs:    jobs,
	}
	if s.diskCache {
		if opts.Cache, err = driver.OpenDiskCache("qasmc"); err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
	}

	var results []driver.FileResult
	if shouldUseTUI(mode, outDir != "") {
		results, err = runFilesWithUI(cmd.Context(), "unrolling", files, opts)
	} else {
		results, err = driver.RunFiles(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}

	printPrettyDiagnostics(cmd.ErrOrStderr(), results, s.useColor(os.Stderr))
	if outDir != "" {
		err = writeOutputs(cmd.OutOrStdout(), outDir, results, s)
	} else {
		err = printOutputs(cmd.OutOrStdout(), results, s)
	}
	if err != nil {
		return err
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), results)
	}
	return failureError(results)
}

func printOutputs(w io.Writer, results []driver.FileResult, s settings) error {
	headers := len(results) > 1 && s.emit == "qasm" && !s.quiet
	for _, r := range results {
		if r.Doc == nil {
			continue
		}
		if headers {
			fmt.Fprintf(w, "// == %s ==\n", r.Path)
		}
		if err := driver.Emit(w, r.Doc, s.emit); err != nil {
			return err
		}
	}
	return nil
}

func writeOutputs(w io.Writer, outDir string, results []driver.FileResult, s settings) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for _, r := range results {
		if r.Doc == nil {
			continue
		}
		target := outputPath(outDir, r.Path, s.emit)
		f, err := os.Create(target)
		if err != nil {
			return err
		}
		err = driver.Emit(f, r.Doc, s.emit)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		if !s.quiet {
			note := ""
			if r.Cached {
				note = " (cached)"
			}
			fmt.Fprintf(w, "%s -> %s%s\n", r.Path, target, note)
		}
	}
	return nil
}

// outputPath maps circuits/bell.qasm to <outDir>/bell.unrolled.<ext>.
func outputPath(outDir, input, emit string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(outDir, base+".unrolled."+emit)
}
