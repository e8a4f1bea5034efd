package preferences

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	require.NoError(t, settings.Validate())
	assert.Equal(t, model.DefaultTimerConfig(), settings.TimerConfig())
	assert.True(t, settings.Bell)
	assert.True(t, settings.Notifications)
	assert.False(t, settings.IdlePause)
	assert.Empty(t, settings.AutostartSchedule)
	assert.Equal(t, DefaultHTTPAddr, settings.HTTPAddr)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{
			name:    "timer config",
			mutate:  func(s *Settings) { s.Rollover = 0 },
			wantErr: "rollover duration",
		},
		{
			name: "idle threshold",
			mutate: func(s *Settings) {
				s.IdlePause = true
				s.IdlePauseAfter = 30 * time.Second
			},
			wantErr: "idle pause threshold",
		},
		{
			name:    "http address",
			mutate:  func(s *Settings) { s.HTTPAddr = "  " },
			wantErr: "http address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.mutate(&settings)

			err := settings.Validate()
			require.ErrorIs(t, err, ErrInvalidSettings)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettings_ValidateIgnoresIdleThresholdWhenDisabled(t *testing.T) {
	settings := DefaultSettings()
	settings.IdlePauseAfter = 0
	assert.NoError(t, settings.Validate())
}

func TestParsePositiveInt(t *testing.T) {
	value, ok := parsePositiveInt(" 25 ")
	assert.True(t, ok)
	assert.Equal(t, 25, value)

	_, ok = parsePositiveInt("0")
	assert.False(t, ok)
	_, ok = parsePositiveInt("ten")
	assert.False(t, ok)
}
