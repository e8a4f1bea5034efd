package timer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/timer"
)

func TestState_Kind(t *testing.T) {
	tests := []struct {
		phase timer.Phase
		want  timer.SessionKind
	}{
		{timer.PhaseIdle, timer.KindWork},
		{timer.PhaseWork, timer.KindWork},
		{timer.PhaseRollover, timer.KindRollover},
		{timer.PhaseBreak, timer.KindBreak},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			assert.Equal(t, tt.want, timer.State{Phase: tt.phase}.Kind())
		})
	}
}

func TestState_Counting(t *testing.T) {
	assert.False(t, timer.State{Phase: timer.PhaseIdle}.Counting())
	assert.True(t, timer.State{Phase: timer.PhaseWork}.Counting())
	assert.False(t, timer.State{Phase: timer.PhaseWork, Paused: true}.Counting())
	assert.True(t, timer.State{Phase: timer.PhaseRollover}.Counting())
	assert.True(t, timer.State{Phase: timer.PhaseBreak}.Counting())
}

func TestState_Durations(t *testing.T) {
	state := timer.State{RemainingSeconds: 90, BreakDeficit: 300}

	assert.Equal(t, 90*time.Second, state.Remaining())
	assert.Equal(t, 5*time.Minute, state.Deficit())
	assert.Equal(t, "01:30", state.Clock())
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "00:00", timer.FormatSeconds(0))
	assert.Equal(t, "00:00", timer.FormatSeconds(-4))
	assert.Equal(t, "00:59", timer.FormatSeconds(59))
	assert.Equal(t, "25:00", timer.FormatSeconds(1500))
	assert.Equal(t, "120:05", timer.FormatSeconds(7205))
}

func TestEvent_Helpers(t *testing.T) {
	rollover := timer.Event{
		Previous: timer.State{Phase: timer.PhaseWork, BreakDeficit: 100},
		State:    timer.State{Phase: timer.PhaseRollover, BreakDeficit: 400},
	}
	assert.True(t, rollover.PhaseChanged())
	assert.Equal(t, 300, rollover.Earned())
	assert.Equal(t, 0, rollover.Taken())

	breakEvent := timer.Event{
		Previous: timer.State{Phase: timer.PhaseRollover, BreakDeficit: 400},
		State:    timer.State{Phase: timer.PhaseBreak, BreakDeficit: 150},
	}
	assert.Equal(t, 250, breakEvent.Taken())
	assert.Equal(t, 0, breakEvent.Earned())

	tick := timer.Event{
		Previous: timer.State{Phase: timer.PhaseWork, RemainingSeconds: 5},
		State:    timer.State{Phase: timer.PhaseWork, RemainingSeconds: 4},
	}
	assert.False(t, tick.PhaseChanged())
}
