// Package tui is the terminal host for the timer.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"pomodoro/internal/core/timer"
)

var (
	ColorWork     = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}
	ColorRollover = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}
	ColorBreak    = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}
	ColorMuted    = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	StyleClock  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleNotice = lipgloss.NewStyle().Italic(true)
)

// KindColor returns the accent color for a session kind.
func KindColor(kind timer.SessionKind) lipgloss.AdaptiveColor {
	switch kind {
	case timer.KindBreak:
		return ColorBreak
	case timer.KindRollover:
		return ColorRollover
	default:
		return ColorWork
	}
}

func badgeStyle(state timer.State) lipgloss.Style {
	if state.Phase == timer.PhaseIdle || state.Paused {
		return lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(ColorMuted)
	}
	return lipgloss.NewStyle().Bold(true).Padding(0, 1).Reverse(true).Foreground(KindColor(state.Kind()))
}
