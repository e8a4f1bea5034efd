package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTimerConfig(t *testing.T) {
	config := DefaultTimerConfig()

	assert.Equal(t, 1500, config.WorkSeconds())
	assert.Equal(t, 300, config.ShortBreakSeconds())
	assert.Equal(t, 900, config.LongBreakSeconds())
	assert.Equal(t, 60, config.RolloverSeconds())
	assert.Equal(t, 4, config.LongBreakInterval)
	require.NoError(t, config.Validate())
}

func TestTimerConfig_WithDefaults(t *testing.T) {
	config := TimerConfig{
		Work:              50 * time.Minute,
		ShortBreak:        -time.Second,
		LongBreak:         500 * time.Millisecond,
		LongBreakInterval: 0,
	}.WithDefaults()

	assert.Equal(t, 50*time.Minute, config.Work)
	assert.Equal(t, DefaultShortBreak, config.ShortBreak)
	assert.Equal(t, DefaultLongBreak, config.LongBreak)
	assert.Equal(t, DefaultRollover, config.Rollover)
	assert.Equal(t, DefaultLongBreakInterval, config.LongBreakInterval)
}

func TestTimerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TimerConfig)
		wantErr string
	}{
		{name: "work too short", mutate: func(c *TimerConfig) { c.Work = 0 }, wantErr: "work duration"},
		{name: "short break too short", mutate: func(c *TimerConfig) { c.ShortBreak = time.Millisecond }, wantErr: "short break duration"},
		{name: "long break negative", mutate: func(c *TimerConfig) { c.LongBreak = -time.Minute }, wantErr: "long break duration"},
		{name: "rollover zero", mutate: func(c *TimerConfig) { c.Rollover = 0 }, wantErr: "rollover duration"},
		{name: "interval zero", mutate: func(c *TimerConfig) { c.LongBreakInterval = 0 }, wantErr: "long break interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultTimerConfig()
			tt.mutate(&config)

			err := config.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTimerConfig_SecondsTruncate(t *testing.T) {
	config := TimerConfig{Work: 90*time.Second + 900*time.Millisecond}
	assert.Equal(t, 90, config.WorkSeconds())
}
