package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"qasmc/internal/diagfmt"
)

const selectCase = `OPENQASM 3.0;
include "stdgates.inc";
qubit[1] q;
const int i = 2;
switch (i) {
  case 1 { x q[0]; }
  case 2 { z q[0]; }
}
`

const duplicateCase = `OPENQASM 3.0;
include "stdgates.inc";
qubit[1] q;
int i = 1;
switch (i) {
  case 1 { x q[0]; }
  case 1 { y q[0]; }
}
`

func writeFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	_, err := rootCmd.ExecuteC()
	return stdout.String(), stderr.String(), err
}

func TestUnrollCommandPrintsQASM(t *testing.T) {
	path := writeFile(t, t.TempDir(), "select.qasm", selectCase)
	stdout, _, err := execute(t, "unroll", "--ui", "off", path)
	if err != nil {
		t.Fatalf("unroll: %v", err)
	}
	if !strings.Contains(stdout, "z q[0];") || strings.Contains(stdout, "x q[0];") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
}

func TestValidateCommandJSON(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.qasm", selectCase)
	bad := writeFile(t, dir, "bad.qasm", duplicateCase)

	stdout, _, err := execute(t, "validate", "--format", "json", dir)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 files failed") {
		t.Fatalf("err = %v", err)
	}
	var out map[string]diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, stdout)
	}
	if out[good].Count != 0 {
		t.Fatalf("good file has diagnostics: %+v", out[good])
	}
	got := out[bad]
	if got.Count != 1 || got.Diagnostics[0].Message != "Duplicate case value 1 in switch statement" {
		t.Fatalf("bad file diagnostics: %+v", got)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("fancy"); err == nil {
		t.Fatal("expected error")
	}
	if shouldUseTUI(uiModeAuto, false) || !shouldUseTUI(uiModeOn, false) {
		t.Fatal("auto mode without output files must stay off")
	}
}

func TestOutputPath(t *testing.T) {
	got := outputPath("out", filepath.Join("circuits", "bell.qasm"), "json")
	if got != filepath.Join("out", "bell.unrolled.json") {
		t.Fatalf("outputPath = %q", got)
	}
}

func TestSettingsCheck(t *testing.T) {
	s := settings{color: "auto", logMode: "off", maxInlineDepth: 64}
	if err := s.check(); err != nil {
		t.Fatal(err)
	}
	s.color = "rainbow"
	if err := s.check(); err == nil {
		t.Fatal("bad color accepted")
	}
	s.color, s.maxInlineDepth = "off", 0
	if err := s.check(); err == nil {
		t.Fatal("zero inline depth accepted")
	}
}
