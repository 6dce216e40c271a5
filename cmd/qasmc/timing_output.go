package main

import (
	"fmt"
	"io"
	"time"

	"qasmc/internal/driver"
	"qasmc/internal/pipeline"
)

var stageVerbs = map[pipeline.Stage]string{
	pipeline.StageParse:    "parsed",
	pipeline.StageValidate: "validated",
	pipeline.StageUnroll:   "unrolled",
	pipeline.StageEmit:     "emitted",
}

func printTimings(out io.Writer, results []driver.FileResult) {
	for _, r := range results {
		fmt.Fprintf(out, "%s:\n", r.Path)
		if r.Program != nil {
			fmt.Fprint(out, r.Program.TimingSummary())
			continue
		}
		// кэш или ошибка загрузки: есть только стадии пайплайна
		printStageTimings(out, r.Timings, r.Cached)
	}
}

func printStageTimings(out io.Writer, timings pipeline.Timings, cached bool) {
	for _, stage := range pipeline.Stages {
		d := timings.Duration(stage)
		if d == 0 {
			continue
		}
		fmt.Fprintf(out, "  %s %.1f ms\n", stageVerbs[stage], toMillis(d))
	}
	if cached {
		fmt.Fprintln(out, "  (from disk cache)")
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
