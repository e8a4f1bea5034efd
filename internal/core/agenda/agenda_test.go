package agenda_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/agenda"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
)

type countingStarter struct {
	starts int
}

func (s *countingStarter) Start() {
	s.starts++
}

func TestNew_Disabled(t *testing.T) {
	starter := &countingStarter{}
	a, err := agenda.New("  ", starter, zerolog.Nop())
	require.NoError(t, err)

	assert.False(t, a.Enabled())
	assert.True(t, a.Next(time.Now()).IsZero())
	a.Start()
	a.Stop(context.Background())
	assert.Zero(t, starter.starts)
}

func TestNew_InvalidSchedule(t *testing.T) {
	tests := []string{"every morning", "61 * * * *", "* * *"}
	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := agenda.New(expr, &countingStarter{}, zerolog.Nop())
			require.ErrorIs(t, err, agenda.ErrInvalidSchedule)
			assert.Contains(t, err.Error(), expr)
		})
	}
}

func TestNext(t *testing.T) {
	a, err := agenda.New("0 9 * * 1-5", &countingStarter{}, zerolog.Nop())
	require.NoError(t, err)
	require.True(t, a.Enabled())

	friday := time.Date(2026, time.October, 16, 10, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, time.October, 19, 9, 0, 0, 0, time.Local), a.Next(friday))
}

func TestFire_StartsEngineFromIdleOnly(t *testing.T) {
	engine := timer.New(model.DefaultTimerConfig(), timer.Config{Scheduler: timer.NewManualScheduler()})
	defer engine.Destroy()

	a, err := agenda.New("30 8 * * *", engine, zerolog.Nop())
	require.NoError(t, err)

	a.Fire()
	assert.Equal(t, timer.PhaseWork, engine.Phase())

	engine.Pause()
	a.Fire()
	assert.True(t, engine.Paused())
}

func TestStartStop(t *testing.T) {
	a, err := agenda.New("@every 1h", &countingStarter{}, zerolog.Nop())
	require.NoError(t, err)

	a.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	a.Stop(ctx)
	assert.NoError(t, ctx.Err())
}
