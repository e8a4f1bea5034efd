package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"pomodoro/internal/core/timer"
)

const (
	menuTitle         = "Pomodoro"
	quickBreakSeconds = 5 * 60
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStart        func()
	OnTogglePause  func()
	OnTakeBreak    func()
	OnTakeBreakFor func(seconds int)
	OnSkipBreak    func()
	OnStop         func()
	OnReset        func()
	OnPreferences  func()
	OnQuit         func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	breakItem  *fyne.MenuItem
	quickItem  *fyne.MenuItem
	skipItem   *fyne.MenuItem
	stopItem   *fyne.MenuItem
	resetItem  *fyne.MenuItem
	prefsItem  *fyne.MenuItem
	quitItem   *fyne.MenuItem
}

// New creates a tray manager with the provided callbacks. A nil app builds the
// menu without installing it.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Starting...", nil)
	manager.statusItem.Disabled = true
	manager.startItem = fyne.NewMenuItem("Start", func() { call(manager.callbacks.OnStart) })
	manager.pauseItem = fyne.NewMenuItem("Pause", func() { call(manager.callbacks.OnTogglePause) })
	manager.breakItem = fyne.NewMenuItem("Take break", func() { call(manager.callbacks.OnTakeBreak) })
	manager.quickItem = fyne.NewMenuItem("Take 5 minutes", func() {
		if manager.callbacks.OnTakeBreakFor != nil {
			manager.callbacks.OnTakeBreakFor(quickBreakSeconds)
		}
	})
	manager.skipItem = fyne.NewMenuItem("Skip break", func() { call(manager.callbacks.OnSkipBreak) })
	manager.stopItem = fyne.NewMenuItem("Stop", func() { call(manager.callbacks.OnStop) })
	manager.resetItem = fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) })
	manager.prefsItem = fyne.NewMenuItem("Preferences", func() { call(manager.callbacks.OnPreferences) })
	manager.quitItem = fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) })
	manager.quitItem.IsQuit = true

	manager.Render(timer.State{Phase: timer.PhaseIdle})
	return manager
}

// Render updates the status line and item availability for state.
// It must run on the fyne main goroutine.
func (manager *Manager) Render(state timer.State) {
	manager.statusItem.Label = Status(state)

	manager.startItem.Disabled = state.Phase != timer.PhaseIdle
	manager.pauseItem.Disabled = state.Phase != timer.PhaseWork
	if state.Paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	inRollover := state.Phase == timer.PhaseRollover
	manager.breakItem.Disabled = !inRollover || state.BreakDeficit == 0
	manager.quickItem.Disabled = !inRollover || state.BreakDeficit == 0
	manager.skipItem.Disabled = !inRollover
	manager.stopItem.Disabled = state.Phase == timer.PhaseIdle

	if manager.app != nil {
		manager.app.SetSystemTrayIcon(Icon(state))
	}
	manager.refreshMenu()
}

// Menu returns the tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.breakItem,
		manager.quickItem,
		manager.skipItem,
		manager.stopItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		manager.prefsItem,
		manager.quitItem,
	)
}

// Status formats the one-line tray summary of state.
func Status(state timer.State) string {
	switch state.Phase {
	case timer.PhaseWork:
		if state.Paused {
			return fmt.Sprintf("Work %s (paused)", state.Clock())
		}
		return fmt.Sprintf("Work %s", state.Clock())
	case timer.PhaseRollover:
		return fmt.Sprintf("Rollover %s · deficit %s", state.Clock(), timer.FormatSeconds(state.BreakDeficit))
	case timer.PhaseBreak:
		return fmt.Sprintf("Break %s", state.Clock())
	default:
		return fmt.Sprintf("Idle · %d done", state.CompletedWorkSessions)
	}
}

// Icon picks the tray icon for state.
func Icon(state timer.State) fyne.Resource {
	switch {
	case state.Paused:
		return theme.MediaPauseIcon()
	case state.Phase == timer.PhaseWork:
		return theme.MediaPlayIcon()
	case state.Phase == timer.PhaseRollover:
		return theme.WarningIcon()
	case state.Phase == timer.PhaseBreak:
		return theme.HistoryIcon()
	default:
		return theme.MediaStopIcon()
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// Follow renders the engine's latest snapshot for every event received until
// events is closed. Events only wake the loop, so a transition dropped from a
// full channel is still shown by the next render.
func Follow(events <-chan timer.Event, snapshot func() timer.State, render func(timer.State)) {
	for range events {
		render(snapshot())
	}
}
