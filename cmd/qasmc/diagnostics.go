package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"qasmc/internal/diag"
	"qasmc/internal/diagfmt"
	"qasmc/internal/driver"
	"qasmc/internal/source"
)

// resultDiagnostics finds the bag describing a file result. Files that
// failed before parsing (unreadable paths) have none.
func resultDiagnostics(r driver.FileResult) (*diag.Bag, *source.FileSet, bool) {
	if r.Program != nil {
		return r.Program.Bag, r.Program.Files, true
	}
	var pe *driver.ParseError
	if errors.As(r.Err, &pe) {
		return pe.Bag, pe.Files, true
	}
	return nil, nil, false
}

func printPrettyDiagnostics(w io.Writer, results []driver.FileResult, color bool) {
	opts := diagfmt.PrettyOpts{
		Color:     color,
		Context:   2,
		ShowNotes: true,
	}
	for _, r := range results {
		bag, fs, ok := resultDiagnostics(r)
		if !ok {
			if r.Err != nil {
				fmt.Fprintf(w, "%s: %v\n", r.Path, r.Err)
			}
			continue
		}
		if bag.Len() > 0 {
			diagfmt.Pretty(w, bag, fs, opts)
		}
	}
}

// printJSONDiagnostics writes one object keyed by input path.
func printJSONDiagnostics(w io.Writer, results []driver.FileResult, max int) error {
	opts := diagfmt.JSONOpts{
		IncludePositions: true,
		Max:              max,
		IncludeNotes:     true,
	}
	output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
	for _, r := range results {
		bag, fs, ok := resultDiagnostics(r)
		if !ok {
			bag, fs = diag.NewBag(1), source.NewFileSet()
			if r.Err != nil {
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, r.Err.Error()))
			}
		}
		output[r.Path] = diagfmt.BuildDiagnosticsOutput(bag, fs, opts)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func failureError(results []driver.FileResult) error {
	n := driver.Failed(results)
	if n == 0 {
		return nil
	}
	if len(results) == 1 {
		return fmt.Errorf("%s: %w", results[0].Path, results[0].Err)
	}
	return fmt.Errorf("%d of %d files failed", n, len(results))
}
