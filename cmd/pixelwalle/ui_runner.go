package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pixelwalle/internal/driver"
	"pixelwalle/internal/source"
	"pixelwalle/internal/ui"
)

type checkDirOutcome struct {
	fs      *source.FileSet
	results []driver.FileResult
	err     error
}

// runCheckDirWithUI runs driver.CheckDir in the background and renders its
// events with the progress model. The returned error is the UI's own; check
// failures travel in the outcome.
func runCheckDirWithUI(ctx context.Context, dir string, opts driver.Options, dirOpts driver.DirOptions) (checkDirOutcome, error) {
	files, err := driver.ListScripts(dir)
	if err != nil {
		return checkDirOutcome{}, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkDirOutcome, 1)

	go func() {
		// CheckDir закрывает канал событий сам
		dirOpts.Events = events
		fs, results, err := driver.CheckDir(ctx, dir, opts, dirOpts)
		outcomeCh <- checkDirOutcome{fs: fs, results: results, err: err}
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// после ctrl+c дочитываем, чтобы CheckDir не застрял на отправке
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	return outcome, uiErr
}
