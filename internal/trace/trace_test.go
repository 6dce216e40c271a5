package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestStartNestsSpans(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	ctx, outer := Start(ctx, ScopeDriver, "unroll")
	_, inner := Start(ctx, ScopePass, "validate")
	Point(ctx, ScopeNode, "switch", "case 1", map[string]string{"value": "1"})
	inner.End("")
	outer.End("ok")

	events := ring.Snapshot()
	if len(events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(events))
	}
	if events[1].ParentID != outer.ID() {
		t.Fatalf("inner span must be parented to outer")
	}
	if events[2].Kind != KindPoint || events[2].Extra["value"] != "1" {
		t.Fatalf("unexpected point event %+v", events[2])
	}
	if events[4].Detail != "ok" {
		t.Fatalf("end detail lost")
	}
}

func TestLevelGatesScopes(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), st)
	_, pass := Start(ctx, ScopePass, "parse")
	Point(ctx, ScopeNode, "switch", "", nil)
	pass.End("")

	out := buf.String()
	if strings.Count(out, "parse") != 2 {
		t.Fatalf("expected begin and end of parse, got %q", out)
	}
	if strings.Contains(out, "switch") {
		t.Fatalf("node events must be hidden at phase level")
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(WithTracer(context.Background(), st), ScopeNode, "gate", "x", nil)
	if !strings.Contains(buf.String(), `"kind":"point"`) || !strings.HasSuffix(buf.String(), "\n") {
		t.Fatalf("unexpected ndjson %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if lvl, err := ParseLevel("DEBUG"); err != nil || lvl != LevelDebug {
		t.Fatalf("ParseLevel(DEBUG) = %v, %v", lvl, err)
	}
}

func TestNopSpanIsSafe(t *testing.T) {
	_, span := Start(context.Background(), ScopePass, "lex")
	if span.ID() != 0 {
		t.Fatalf("nop span must have zero ID")
	}
	span.WithExtra("k", "v").End("")
}
