package diag

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"qasmc/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(3)
	bag.Add(NewError(SemaDuplicateCase, source.Span{File: 0, Start: 30, End: 31}, "late"))
	bag.Add(NewError(SemaEmptySwitch, source.Span{File: 0, Start: 5, End: 6}, "early"))
	bag.Add(New(SevWarning, SemaInfo, source.Span{File: 0, Start: 5, End: 6}, "warn"))
	if bag.Add(NewError(SemaError, source.Span{}, "overflow")) {
		t.Fatalf("expected limit to reject the fourth diagnostic")
	}
	bag.Sort()
	got := []string{bag.Items()[0].Message, bag.Items()[1].Message, bag.Items()[2].Message}
	want := []string{"early", "warn", "late"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted order = %v, want %v", got, want)
		}
	}
	if !bag.HasErrors() {
		t.Fatalf("expected HasErrors")
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	sp := source.Span{Start: 1, End: 2}
	bag.Add(NewError(SemaNotConstant, sp, "a"))
	bag.Add(NewError(SemaNotConstant, sp, "b"))
	bag.Add(NewError(SemaDuplicateCase, sp, "c"))
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("Dedup left %d items, want 2", bag.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(4)
	b := ReportError(BagReporter{Bag: bag}, SemaEmptySwitch, source.Span{}, "Switch statement must have at least one case").
		WithNote(source.Span{}, "switch (i) {")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
	if n := bag.Items()[0].Notes; len(n) != 1 || n[0].Msg != "switch (i) {" {
		t.Fatalf("unexpected notes %+v", n)
	}
}

func TestLogReporterWritesLocationAndSnippet(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.qasm", []byte("qubit q;\n    switch(i) {}\n"))
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	r := LogReporter{Logger: logger, Files: fs}
	r.Report(SemaSwitchTargetType, SevError, source.Span{File: id, Start: 13, End: 19},
		"Switch target i must be of type int", []Note{{Msg: "switch (i) {"}})

	out := buf.String()
	for _, want := range []string{"level=ERROR", "Error at line 2, column 4", "switch (i)", "SEM3100"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output %q does not contain %q", out, want)
		}
	}
}
