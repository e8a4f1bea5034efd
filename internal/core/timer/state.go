package timer

import (
	"fmt"
	"time"
)

// Phase represents the current Engine mode.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseWork     Phase = "work"
	PhaseRollover Phase = "rollover"
	PhaseBreak    Phase = "break"
)

// Counting reports whether the phase runs a countdown.
func (phase Phase) Counting() bool {
	return phase == PhaseWork || phase == PhaseRollover || phase == PhaseBreak
}

// SessionKind is the simplified phase used for display.
type SessionKind string

const (
	KindWork     SessionKind = "work"
	KindBreak    SessionKind = "break"
	KindRollover SessionKind = "rollover"
)

// State is a snapshot of the Engine.
type State struct {
	Phase                 Phase `json:"phase"`
	RemainingSeconds      int   `json:"remaining_seconds"`
	BreakDeficit          int   `json:"break_deficit"`
	CompletedWorkSessions int   `json:"completed_work_sessions"`
	Paused                bool  `json:"paused"`
}

// Kind maps the phase to a session kind; idle displays as work.
func (state State) Kind() SessionKind {
	switch state.Phase {
	case PhaseBreak:
		return KindBreak
	case PhaseRollover:
		return KindRollover
	default:
		return KindWork
	}
}

// Remaining returns the countdown as a duration.
func (state State) Remaining() time.Duration {
	return time.Duration(state.RemainingSeconds) * time.Second
}

// Deficit returns the break deficit as a duration.
func (state State) Deficit() time.Duration {
	return time.Duration(state.BreakDeficit) * time.Second
}

// Counting reports whether a countdown source should be live for this state.
func (state State) Counting() bool {
	return state.Phase.Counting() && !state.Paused
}

// Clock formats the remaining time as MM:SS.
func (state State) Clock() string {
	return FormatSeconds(state.RemainingSeconds)
}

// FormatSeconds renders seconds as MM:SS; minutes grow past two digits when needed.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
