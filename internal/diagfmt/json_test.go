package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"qasmc/internal/diag"
	"qasmc/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	bag := emptySwitchBag(fs, "/tmp/test.qasm")

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d", output.Count, len(output.Diagnostics))
	}
	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SEM3104" || d.Title != "Switch without cases" {
		t.Fatalf("unexpected header: %+v", d)
	}
	loc := d.Location
	if loc.File != "test.qasm" || loc.StartByte != 16 || loc.EndByte != 22 {
		t.Fatalf("unexpected location: %+v", loc)
	}
	if loc.StartLine != 2 || loc.StartCol != 0 || loc.EndCol != 6 {
		t.Fatalf("unexpected positions: %+v", loc)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "switch (i) {" {
		t.Fatalf("unexpected notes: %+v", d.Notes)
	}
}

func TestJSONMaxAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.qasm", []byte("x"))
	bag := diag.NewBag(10)
	sp := source.Span{File: fileID, Start: 0, End: 1}
	bag.Add(diag.NewError(diag.SemaUndeclared, sp, "first").WithNote(sp, "x"))
	bag.Add(diag.NewError(diag.SemaUndeclared, sp, "second"))
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, sp, "timings").WithNote(sp, `{"total_ms":1}`))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("Max not applied: %d", out.Count)
	}
	if len(out.Diagnostics[0].Notes) != 0 {
		t.Fatalf("notes must be omitted unless requested")
	}

	out = BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if len(out.Diagnostics[2].Notes) != 1 {
		t.Fatalf("timing payload must always be kept")
	}
}
