package cli

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pomodoro/internal/core/timer"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/prompt"
	"pomodoro/internal/ui/tray"
)

const (
	trayAppID    = "com.pomodoro.app"
	trayLockName = "pomodoro-tray"
	trayBuffer   = 16
)

// AddTrayCommand adds the tray command to the root command.
func AddTrayCommand(root *cobra.Command) {
	root.AddCommand(&cobra.Command{
		Use:   "tray",
		Short: "Run the timer in the system tray",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTray(cmd)
		},
	})
}

func runTray(cmd *cobra.Command) error {
	logger := GetLogger().With().Str("component", "tray").Logger()

	guard, err := platform.AcquireInstanceLock(trayLockName)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, path, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	fyneApp := app.NewWithID(trayAppID)
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return fmt.Errorf("system tray unsupported on this platform")
	}

	trayWindow := fyneApp.NewWindow("Pomodoro")
	trayWindow.SetContent(widget.NewLabel("Pomodoro is running in the system tray."))
	trayWindow.SetCloseIntercept(trayWindow.Hide)
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	s, err := newSession(settings, tray.NewNotifier(fyneApp), GetLogger())
	if err != nil {
		return err
	}
	defer s.close()
	engine := s.engine

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := storage.SaveFile(path, updated); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("save settings")
			return
		}
		logger.Info().Str("path", path).Msg("settings saved; they apply on next launch")
	})

	manager := tray.New(desktopApp, tray.Callbacks{
		OnStart: engine.Start,
		OnTogglePause: func() {
			if engine.Paused() {
				engine.Resume()
			} else {
				engine.Pause()
			}
		},
		OnTakeBreak:    engine.TakeBreak,
		OnTakeBreakFor: engine.TakeBreakFor,
		OnSkipBreak:    engine.SkipBreak,
		OnStop:         engine.Stop,
		OnReset:        engine.Reset,
		OnPreferences:  prefsWindow.Show,
		OnQuit:         fyneApp.Quit,
	})

	rolloverPrompt := prompt.New(fyneApp, prompt.DefaultConfig(), prompt.Actions{
		OnTakeBreak: engine.TakeBreak,
		OnSkipBreak: engine.SkipBreak,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	s.runBackground(gctx, g)

	events, unsubscribe := engine.Events(trayBuffer)
	defer unsubscribe()
	g.Go(func() error {
		tray.Follow(events, engine.Snapshot, func(state timer.State) {
			fyne.Do(func() {
				manager.Render(state)
				rolloverPrompt.Render(state)
			})
		})
		return nil
	})

	logger.Info().Str("settings", path).Msg("tray started")
	fyneApp.Run()

	cancel()
	unsubscribe()
	return g.Wait()
}
