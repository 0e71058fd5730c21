package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cjsflat/internal/driver"
	"cjsflat/internal/ui"
)

type rewriteOutcome struct {
	result *driver.Result
	err    error
}

// runRewriteWithUI runs the rewrite in the background and renders its
// events until the run finishes.
func runRewriteWithUI(ctx context.Context, title string, files []string, req driver.Request) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan rewriteOutcome, 1)

	go func() {
		req.Observer = ui.ChannelObserver(events)
		res, err := driver.RewriteFiles(ctx, req)
		outcomeCh <- rewriteOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// модель больше не читает канал, дочитываем сами
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil && ctx.Err() == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
