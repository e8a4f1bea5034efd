package timer_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
)

func TestTickerScheduler_FiresUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	handle := timer.TickerScheduler{}.ScheduleRepeating(5*time.Millisecond, func() {
		calls.Add(1)
	})

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

	handle.Cancel()
	handle.Cancel()
	time.Sleep(20 * time.Millisecond)
	stopped := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}

func TestTickerScheduler_DrivesEngine(t *testing.T) {
	engine := timer.New(model.TimerConfig{
		Work:     3 * time.Second,
		Rollover: 2 * time.Second,
	}, timer.Config{TickInterval: 2 * time.Millisecond})
	t.Cleanup(engine.Destroy)

	engine.Start()
	require.Eventually(t, func() bool {
		return engine.Phase() == timer.PhaseRollover || engine.CompletedWorkSessions() > 0
	}, time.Second, time.Millisecond)

	engine.Stop()
	stopped := engine.Snapshot()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, engine.Snapshot())
	assert.Equal(t, timer.PhaseIdle, stopped.Phase)
}

func TestManualScheduler(t *testing.T) {
	scheduler := timer.NewManualScheduler()

	var first, second int
	firstHandle := scheduler.ScheduleRepeating(time.Second, func() { first++ })
	scheduler.ScheduleRepeating(time.Second, func() { second++ })
	assert.Equal(t, 2, scheduler.Active())

	scheduler.Advance(3)
	assert.Equal(t, 3, first)
	assert.Equal(t, 3, second)

	firstHandle.Cancel()
	firstHandle.Cancel()
	scheduler.Advance(2)
	assert.Equal(t, 3, first)
	assert.Equal(t, 5, second)
	assert.Equal(t, 1, scheduler.Active())
	assert.Equal(t, 8, scheduler.Fired())
}

func TestManualScheduler_HandleScheduledDuringStepFiresNextStep(t *testing.T) {
	scheduler := timer.NewManualScheduler()

	var replacement int
	var handle timer.Handle
	handle = scheduler.ScheduleRepeating(time.Second, func() {
		handle.Cancel()
		scheduler.ScheduleRepeating(time.Second, func() { replacement++ })
	})

	scheduler.Advance(1)
	assert.Equal(t, 0, replacement)
	scheduler.Advance(1)
	assert.Equal(t, 1, replacement)
}
