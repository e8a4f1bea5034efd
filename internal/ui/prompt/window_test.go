package prompt

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/timer"
)

func TestNewView(t *testing.T) {
	tests := []struct {
		name  string
		state timer.State
		want  View
	}{
		{
			name:  "work is hidden",
			state: timer.State{Phase: timer.PhaseWork, RemainingSeconds: 600},
			want:  View{},
		},
		{
			name:  "break is hidden",
			state: timer.State{Phase: timer.PhaseBreak, RemainingSeconds: 300},
			want:  View{},
		},
		{
			name:  "rollover with deficit",
			state: timer.State{Phase: timer.PhaseRollover, RemainingSeconds: 42, BreakDeficit: 300},
			want: View{
				Visible:    true,
				Title:      "Break time",
				Subtitle:   "05:00 of break banked",
				Countdown:  "00:42",
				CanTakeNow: true,
			},
		},
		{
			name:  "rollover without deficit",
			state: timer.State{Phase: timer.PhaseRollover, RemainingSeconds: 5},
			want: View{
				Visible:   true,
				Title:     "Break time",
				Subtitle:  "No break banked",
				Countdown: "00:05",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewView(tt.state))
		})
	}
}

func TestWindow_RenderFollowsRollover(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var took, skipped int
	prompt := New(app, DefaultConfig(), Actions{
		OnTakeBreak: func() { took++ },
		OnSkipBreak: func() { skipped++ },
	})

	prompt.Render(timer.State{Phase: timer.PhaseRollover, RemainingSeconds: 60, BreakDeficit: 300})
	assert.True(t, prompt.visible)
	assert.Equal(t, "01:00", prompt.timerLabel.Text)
	assert.False(t, prompt.breakButton.Disabled())

	test.Tap(prompt.breakButton)
	test.Tap(prompt.skipButton)
	assert.Equal(t, 1, took)
	assert.Equal(t, 1, skipped)

	prompt.Render(timer.State{Phase: timer.PhaseRollover, RemainingSeconds: 59})
	assert.True(t, prompt.breakButton.Disabled())

	prompt.Render(timer.State{Phase: timer.PhaseBreak, RemainingSeconds: 300})
	assert.False(t, prompt.visible)
}
