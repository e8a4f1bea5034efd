package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
	"pomodoro/internal/metrics"
)

func TestRecorder_FollowsEngine(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)

	scheduler := timer.NewManualScheduler()
	engine := timer.New(model.TimerConfig{
		Work:              3 * time.Second,
		ShortBreak:        5 * time.Second,
		LongBreak:         9 * time.Second,
		Rollover:          2 * time.Second,
		LongBreakInterval: 4,
	}, timer.Config{Scheduler: scheduler})
	defer engine.Destroy()
	engine.SubscribeEvents(recorder.Observe)

	engine.Start()
	scheduler.Advance(3)
	engine.TakeBreakFor(2)
	scheduler.Advance(1)

	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.Completed()))

	expected := `
# HELP pomodoro_timer_break_deficit_seconds Break time currently owed.
# TYPE pomodoro_timer_break_deficit_seconds gauge
pomodoro_timer_break_deficit_seconds 3
# HELP pomodoro_timer_break_seconds_earned_total Break seconds credited by completed work sessions.
# TYPE pomodoro_timer_break_seconds_earned_total counter
pomodoro_timer_break_seconds_earned_total 5
# HELP pomodoro_timer_break_seconds_taken_total Break seconds spent from the deficit.
# TYPE pomodoro_timer_break_seconds_taken_total counter
pomodoro_timer_break_seconds_taken_total 2
# HELP pomodoro_timer_remaining_seconds Countdown of the current phase.
# TYPE pomodoro_timer_remaining_seconds gauge
pomodoro_timer_remaining_seconds 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected),
		"pomodoro_timer_break_deficit_seconds",
		"pomodoro_timer_break_seconds_earned_total",
		"pomodoro_timer_break_seconds_taken_total",
		"pomodoro_timer_remaining_seconds",
	))

	expectedPhase := `
# HELP pomodoro_timer_phase 1 for the current phase, 0 otherwise.
# TYPE pomodoro_timer_phase gauge
pomodoro_timer_phase{phase="break"} 1
pomodoro_timer_phase{phase="idle"} 0
pomodoro_timer_phase{phase="rollover"} 0
pomodoro_timer_phase{phase="work"} 0
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expectedPhase), "pomodoro_timer_phase"))

	expectedTransitions := `
# HELP pomodoro_timer_transitions_total State changes, labelled by phase before and after and by trigger.
# TYPE pomodoro_timer_transitions_total counter
pomodoro_timer_transitions_total{from="idle",to="work",trigger="start"} 1
pomodoro_timer_transitions_total{from="rollover",to="break",trigger="take_break"} 1
pomodoro_timer_transitions_total{from="work",to="rollover",trigger="expiry"} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expectedTransitions), "pomodoro_timer_transitions_total"))
}

func TestRecorder_IgnoresProgressForCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)

	recorder.Observe(timer.Event{
		Type:     timer.EventProgress,
		Trigger:  timer.TriggerTick,
		Previous: timer.State{Phase: timer.PhaseWork, RemainingSeconds: 10},
		State:    timer.State{Phase: timer.PhaseWork, RemainingSeconds: 9},
	})

	count, err := testutil.GatherAndCount(registry, "pomodoro_timer_transitions_total")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, testutil.ToFloat64(recorder.Completed()))
}

func TestNewRecorder_DuplicateRegistrationPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics.NewRecorder(registry)
	assert.Panics(t, func() { metrics.NewRecorder(registry) })
}
