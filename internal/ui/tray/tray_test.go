package tray

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name  string
		state timer.State
		want  string
	}{
		{"work", timer.State{Phase: timer.PhaseWork, RemainingSeconds: 1453}, "Work 24:13"},
		{"paused", timer.State{Phase: timer.PhaseWork, RemainingSeconds: 60, Paused: true}, "Work 01:00 (paused)"},
		{"rollover", timer.State{Phase: timer.PhaseRollover, RemainingSeconds: 42, BreakDeficit: 300}, "Rollover 00:42 · deficit 05:00"},
		{"break", timer.State{Phase: timer.PhaseBreak, RemainingSeconds: 190}, "Break 03:10"},
		{"idle", timer.State{Phase: timer.PhaseIdle, RemainingSeconds: 1500, CompletedWorkSessions: 3}, "Idle · 3 done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.state))
		})
	}
}

func TestManager_RenderEnablesItemsPerPhase(t *testing.T) {
	manager := New(nil, Callbacks{})

	assert.False(t, manager.startItem.Disabled)
	assert.True(t, manager.pauseItem.Disabled)
	assert.True(t, manager.skipItem.Disabled)
	assert.True(t, manager.stopItem.Disabled)
	assert.False(t, manager.resetItem.Disabled)

	manager.Render(timer.State{Phase: timer.PhaseWork, RemainingSeconds: 10, Paused: true})
	assert.True(t, manager.startItem.Disabled)
	assert.False(t, manager.pauseItem.Disabled)
	assert.Equal(t, "Resume", manager.pauseItem.Label)
	assert.False(t, manager.stopItem.Disabled)
	assert.Equal(t, "Work 00:10 (paused)", manager.statusItem.Label)

	manager.Render(timer.State{Phase: timer.PhaseRollover, RemainingSeconds: 10, BreakDeficit: 300})
	assert.True(t, manager.pauseItem.Disabled)
	assert.Equal(t, "Pause", manager.pauseItem.Label)
	assert.False(t, manager.breakItem.Disabled)
	assert.False(t, manager.quickItem.Disabled)
	assert.False(t, manager.skipItem.Disabled)

	manager.Render(timer.State{Phase: timer.PhaseBreak, RemainingSeconds: 10})
	assert.True(t, manager.breakItem.Disabled)
	assert.True(t, manager.skipItem.Disabled)
	assert.False(t, manager.stopItem.Disabled)
}

func TestManager_CallbacksFire(t *testing.T) {
	var calls []string
	var breakSeconds int
	record := func(name string) func() {
		return func() { calls = append(calls, name) }
	}
	manager := New(nil, Callbacks{
		OnStart:        record("start"),
		OnTogglePause:  record("pause"),
		OnTakeBreak:    record("break"),
		OnTakeBreakFor: func(seconds int) { breakSeconds = seconds },
		OnSkipBreak:    record("skip"),
		OnStop:         record("stop"),
		OnReset:        record("reset"),
		OnPreferences:  record("prefs"),
		OnQuit:         record("quit"),
	})

	for _, item := range []*fyne.MenuItem{
		manager.startItem, manager.pauseItem, manager.breakItem, manager.quickItem,
		manager.skipItem, manager.stopItem, manager.resetItem, manager.prefsItem, manager.quitItem,
	} {
		item.Action()
	}

	assert.Equal(t, []string{"start", "pause", "break", "skip", "stop", "reset", "prefs", "quit"}, calls)
	assert.Equal(t, 300, breakSeconds)
}

func TestManager_NilCallbacksAreSafe(t *testing.T) {
	manager := New(nil, Callbacks{})
	assert.NotPanics(t, func() {
		manager.startItem.Action()
		manager.quickItem.Action()
		manager.quitItem.Action()
	})
}

func TestManager_Menu(t *testing.T) {
	menu := New(nil, Callbacks{}).Menu()
	assert.Equal(t, menuTitle, menu.Label)

	var labels []string
	for _, item := range menu.Items {
		if !item.IsSeparator {
			labels = append(labels, item.Label)
		}
	}
	assert.Equal(t, []string{
		"Idle · 0 done", "Start", "Pause", "Take break", "Take 5 minutes",
		"Skip break", "Stop", "Reset", "Preferences", "Quit",
	}, labels)
}

func TestFollow_RendersLatestStateAfterDroppedEvents(t *testing.T) {
	scheduler := timer.NewManualScheduler()
	engine := timer.New(model.TimerConfig{
		Work:              10 * time.Second,
		ShortBreak:        3 * time.Second,
		LongBreak:         7 * time.Second,
		Rollover:          2 * time.Second,
		LongBreakInterval: 2,
	}, timer.Config{Scheduler: scheduler})
	defer engine.Destroy()

	events, cancel := engine.Events(1)

	engine.Start()
	scheduler.Advance(10)
	engine.TakeBreak()
	require.Equal(t, timer.PhaseBreak, engine.Phase())
	scheduler.Advance(3)
	require.Equal(t, timer.PhaseIdle, engine.Phase())

	// Only the subscribe snapshot fit in the channel; the break expiry was dropped.
	cancel()

	var rendered []timer.State
	Follow(events, engine.Snapshot, func(state timer.State) {
		rendered = append(rendered, state)
	})

	require.Len(t, rendered, 1)
	assert.Equal(t, timer.PhaseIdle, rendered[0].Phase)
	assert.Equal(t, "Idle · 1 done", Status(rendered[0]))
}
