package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/agenda"
	"pomodoro/internal/ui/preferences"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitError},
		{"output format", fmt.Errorf("%w: xml", ErrInvalidOutputFormat), ExitInvalidInput},
		{"script", fmt.Errorf("%w: bad", ErrInvalidScript), ExitInvalidInput},
		{"settings", fmt.Errorf("load: %w", preferences.ErrInvalidSettings), ExitInvalidInput},
		{"schedule", fmt.Errorf("%w: x", agenda.ErrInvalidSchedule), ExitInvalidInput},
		{"cobra flag", errors.New("unknown flag: --nope"), ExitInvalidInput},
		{"cobra args", errors.New("accepts 1 arg(s), received 0"), ExitInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}

func TestIsValidOutputFormat(t *testing.T) {
	assert.True(t, IsValidOutputFormat(OutputText))
	assert.True(t, IsValidOutputFormat(OutputJSON))
	assert.False(t, IsValidOutputFormat("yaml"))
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "dev (commit: none, built: unknown)", formatVersion(BuildInfo{}))
	assert.Equal(t, "1.0.0 (commit: abc, built: today)", formatVersion(BuildInfo{Version: "1.0.0", Commit: "abc", Date: "today"}))
}

func TestRoot_InvalidOutputFormat(t *testing.T) {
	_, err := executeCommand(t, "--output", "xml", "config", "path", "--settings", tempSettingsPath(t))
	assert.ErrorIs(t, err, ErrInvalidOutputFormat)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRoot_VerboseAndQuietAreExclusive(t *testing.T) {
	_, err := executeCommand(t, "-v", "-q", "config", "path")
	assert.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}
