package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"qasmc/internal/diag"
	"qasmc/internal/source"
)

const emptySwitchSrc = "int[32] i = 15;\nswitch (i) {\n}\n"

func emptySwitchBag(fs *source.FileSet, path string) *diag.Bag {
	fileID := fs.AddVirtual(path, []byte(emptySwitchSrc))
	sp := source.Span{File: fileID, Start: 16, End: 22}
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaEmptySwitch, sp, "Switch without case statements").
		WithNote(sp, "switch (i) {"))
	return bag
}

func TestPrettyRendersCaretAndContext(t *testing.T) {
	fs := source.NewFileSet()
	bag := emptySwitchBag(fs, "circuits/empty.qasm")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeAuto, ShowNotes: true})

	want := strings.Join([]string{
		"circuits/empty.qasm:2:0: ERROR SEM3104: Switch without case statements",
		" 1 | int[32] i = 15;",
		" 2 | switch (i) {",
		"   | ^~~~~~",
		"   = note: switch (i) {",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("pretty output mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestPrettyPathModes(t *testing.T) {
	tests := []struct {
		mode     PathMode
		contains string
	}{
		{PathModeAbsolute, "/home/user/project/src/test.qasm"},
		{PathModeBasename, "test.qasm:2:0"},
		{PathModeAuto, "/home/user/project/src/test.qasm:2:0"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			fs := source.NewFileSet()
			bag := emptySwitchBag(fs, "/home/user/project/src/test.qasm")
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			if !strings.Contains(buf.String(), tt.contains) {
				t.Fatalf("expected %q in:\n%s", tt.contains, buf.String())
			}
			if strings.Contains(buf.String(), "note:") {
				t.Fatalf("notes printed without ShowNotes:\n%s", buf.String())
			}
		})
	}
}

func TestPrettyUnderlinesMultiLineSpanToLineEnd(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.qasm", []byte(emptySwitchSrc))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SemaEmptySwitch, source.Span{File: fileID, Start: 23, End: 30}, "x"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if !strings.Contains(buf.String(), "   |        ^~~~~\n") {
		t.Fatalf("unexpected underline:\n%s", buf.String())
	}
}

func TestSplitAtColumns(t *testing.T) {
	lead, marked := splitAtColumns("case 1, 1 {", 9, 10, true)
	if lead != "case 1, " || marked != "1" {
		t.Fatalf("split = %q %q", lead, marked)
	}
	lead, marked = splitAtColumns("abc", 10, 12, true)
	if lead != "abc" || marked != "" {
		t.Fatalf("out of range split = %q %q", lead, marked)
	}
}
