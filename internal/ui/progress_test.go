package ui

import (
	"strings"
	"testing"

	"qasmc/internal/pipeline"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan pipeline.Event)
	m := NewProgressModel("unroll", []string{"a.qasm", "b.qasm"}, events).(*progressModel)

	m.applyEvent(pipeline.Event{File: "a.qasm", Stage: pipeline.StageUnroll, Status: pipeline.StatusWorking})
	if got := m.percent(); got != 0.35 {
		t.Fatalf("percent = %v, want 0.35", got)
	}
	m.applyEvent(pipeline.Event{File: "a.qasm", Stage: pipeline.StageEmit, Status: pipeline.StatusDone})
	m.applyEvent(pipeline.Event{File: "b.qasm", Stage: pipeline.StageValidate, Status: pipeline.StatusError})
	// события после завершения файла игнорируются
	m.applyEvent(pipeline.Event{File: "b.qasm", Stage: pipeline.StageUnroll, Status: pipeline.StatusWorking})
	m.applyEvent(pipeline.Event{File: "unknown.qasm", Status: pipeline.StatusError})

	if m.failed != 1 {
		t.Fatalf("failed = %d, want 1", m.failed)
	}
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v, want 1", got)
	}
	view := m.View()
	if !strings.Contains(view, "1 failed") || !strings.Contains(view, "b.qasm") {
		t.Fatalf("view missing state:\n%s", view)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		stage  pipeline.Stage
		status pipeline.Status
		want   string
	}{
		{pipeline.StageParse, pipeline.StatusWorking, "parsing"},
		{pipeline.StageUnroll, pipeline.StatusWorking, "unrolling"},
		{pipeline.StageEmit, pipeline.StatusCached, "cached"},
		{"", "", "queued"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.stage, tt.status); got != tt.want {
			t.Fatalf("statusLabel(%s, %s) = %q, want %q", tt.stage, tt.status, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("circuits/very_long_name.qasm", 12); got != "circuits/..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short.qasm", 40); got != "short.qasm" {
		t.Fatalf("truncate changed short value: %q", got)
	}
}
