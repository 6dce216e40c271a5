package pipeline

import (
	"sync"
	"testing"
	"time"
)

func TestRecorderConcurrent(t *testing.T) {
	var rec Recorder
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			Emit(&rec, Event{File: "a.qasm", Stage: StageParse, Status: StatusWorking})
		}(i)
	}
	wg.Wait()
	if got := len(rec.Events()); got != 8 {
		t.Fatalf("recorded %d events, want 8", got)
	}
	Emit(&rec, Event{File: "a.qasm", Stage: StageEmit, Status: StatusDone})
	last, ok := rec.Last("a.qasm")
	if !ok || last.Status != StatusDone || !last.Status.Terminal() {
		t.Fatalf("last event = %+v", last)
	}
	if _, ok := rec.Last("b.qasm"); ok {
		t.Fatalf("unexpected event for unknown file")
	}
}

func TestChannelSinkAndNil(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{Stage: StageUnroll})
	if ev := <-ch; ev.Stage != StageUnroll {
		t.Fatalf("stage = %s", ev.Stage)
	}
	ChannelSink{}.OnEvent(Event{})
	Emit(nil, Event{})
	FuncSink(nil).OnEvent(Event{})
}

func TestTimingsAccumulate(t *testing.T) {
	var tm Timings
	tm.Add(StageParse, time.Millisecond)
	tm.Add(StageParse, time.Millisecond)
	tm.Add(StageUnroll, 3*time.Millisecond)
	if tm.Duration(StageParse) != 2*time.Millisecond {
		t.Fatalf("parse = %v", tm.Duration(StageParse))
	}
	if tm.Total() != 5*time.Millisecond {
		t.Fatalf("total = %v", tm.Total())
	}
	var empty Timings
	if empty.Duration(StageEmit) != 0 || empty.Total() != 0 {
		t.Fatalf("zero timings not empty")
	}
}
