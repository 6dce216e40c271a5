package observ

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeClock advances by step on every call.
func fakeClock(step time.Duration) func() time.Time {
	cur := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimerNestedPhases(t *testing.T) {
	tm := &Timer{now: fakeClock(time.Millisecond)}
	outer := tm.Begin("unroll") // t=1
	inner := tm.Begin("switch") // t=2
	tm.End(inner, "")           // t=3
	tm.End(outer, "")           // t=4
	tm.End(outer, "again")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].DurationMS != 3 || report.Phases[1].DurationMS != 1 {
		t.Fatalf("unexpected durations: %+v", report.Phases)
	}
	if report.TotalMS != 3 {
		t.Fatalf("total = %v, want 3", report.TotalMS)
	}
	if report.Phases[0].Note != "" {
		t.Fatalf("closed phase was re-closed: %+v", report.Phases[0])
	}
}

func TestTimerTrackNotesFailure(t *testing.T) {
	tm := &Timer{now: fakeClock(time.Millisecond)}
	boom := errors.New("boom")
	if err := tm.Track("validate", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Track returned %v", err)
	}
	open := tm.Begin("parse")
	_ = open

	summary := tm.Summary()
	if !strings.Contains(summary, "validate") || !strings.Contains(summary, "(failed)") {
		t.Fatalf("summary missing failed phase:\n%s", summary)
	}
	if strings.Contains(summary, "parse") {
		t.Fatalf("open phase must not be reported:\n%s", summary)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if got := tm.Report(); len(got.Phases) != 0 {
		t.Fatalf("nil timer reported %+v", got)
	}
}
