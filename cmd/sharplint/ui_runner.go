package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sharplint/internal/driver"
	"sharplint/internal/ui"
)

// wantUI resolves --ui: auto shows progress only on a terminal.
func wantUI(cmd *cobra.Command, quiet bool) (bool, error) {
	value, err := cmd.Flags().GetString("ui")
	if err != nil {
		return false, fmt.Errorf("failed to get ui flag: %w", err)
	}
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		f, ok := cmd.ErrOrStderr().(*os.File)
		return !quiet && ok && isTerminal(f), nil
	}
	return false, fmt.Errorf("unknown ui value: %s (must be auto, on or off)", value)
}

// runWithUI runs fn while a progress view consumes the phase events of
// opts. The view is drawn on w.
func runWithUI(w io.Writer, title string, files []string, opts driver.Options, fn func(driver.Options) error) error {
	events := make(chan driver.PhaseEvent, 256)
	next := opts.Observer
	opts.Observer = func(ev driver.PhaseEvent) {
		if next != nil {
			next(ev)
		}
		events <- ev
	}

	outcome := make(chan error, 1)
	go func() {
		err := fn(opts)
		close(events)
		outcome <- err
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, files, events), tea.WithOutput(w), tea.WithInput(nil))
	_, uiErr := program.Run()
	// представление могло завершиться раньше времени: не блокируем воркеры
	go func() {
		for range events {
		}
	}()
	err := <-outcome
	if uiErr != nil {
		return uiErr
	}
	return err
}
