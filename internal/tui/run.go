package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"pomodoro/internal/core/timer"
)

const eventBuffer = 64

// Source provides the engine event stream.
type Source interface {
	Controller
	Events(buffer int) (<-chan timer.Event, func())
}

// Run shows the timer screen until the user quits or ctx is done.
func Run(ctx context.Context, engine Source, opts ...tea.ProgramOption) error {
	program := tea.NewProgram(NewModel(engine), append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	events, cancel := engine.Events(eventBuffer)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case event, open := <-events:
				if !open {
					return nil
				}
				program.Send(EventMsg(event))
			}
		}
	})
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
	return g.Wait()
}
