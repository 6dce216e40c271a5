package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"qasmc/internal/driver"
	"qasmc/internal/pipeline"
	"qasmc/internal/ui"
)

type batchOutcome struct {
	results []driver.FileResult
	err     error
}

func runFilesWithUI(ctx context.Context, title string, files []string, opts driver.BatchOptions) ([]driver.FileResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = pipeline.ChannelSink{Ch: events}
		res, err := driver.RunFiles(ctx, files, optsCopy)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
