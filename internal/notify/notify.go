// Package notify turns timer transitions into bells and desktop notifications.
package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"pomodoro/internal/core/timer"
)

// Cue is an audible signal.
type Cue interface {
	Play()
}

// Notifier shows a message to the user.
type Notifier interface {
	Notify(title, body string)
}

// Bell rings the terminal bell.
type Bell struct {
	writer io.Writer
}

// NewBell creates a bell writing to stdout.
func NewBell() *Bell {
	return NewBellWithWriter(os.Stdout)
}

// NewBellWithWriter creates a bell with a custom writer.
func NewBellWithWriter(w io.Writer) *Bell {
	return &Bell{writer: w}
}

// Play writes the BEL character.
func (b *Bell) Play() {
	_, _ = fmt.Fprint(b.writer, "\a")
}

// LogNotifier writes notifications to a logger. Headless hosts use it.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "notify").Logger()}
}

// Notify logs the message at info level.
func (n *LogNotifier) Notify(title, body string) {
	n.logger.Info().Str("title", title).Msg(body)
}

// Dispatcher plays the cue and sends a notification for expiry-driven transitions.
// A nil Cue or Notifier disables that sink.
type Dispatcher struct {
	cue      Cue
	notifier Notifier
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(cue Cue, notifier Notifier) *Dispatcher {
	return &Dispatcher{cue: cue, notifier: notifier}
}

// Handle is subscribed through Engine.SubscribeEvents.
func (d *Dispatcher) Handle(event timer.Event) {
	title, body, ok := Message(event)
	if !ok {
		return
	}
	if d.cue != nil {
		d.cue.Play()
	}
	if d.notifier != nil {
		d.notifier.Notify(title, body)
	}
}

// Message returns the notification text for event. Only transitions caused by a
// countdown running out produce one.
func Message(event timer.Event) (title, body string, ok bool) {
	if event.Type != timer.EventStateChange || event.Trigger != timer.TriggerExpiry {
		return "", "", false
	}

	switch {
	case event.Previous.Phase == timer.PhaseWork && event.State.Phase == timer.PhaseRollover:
		return "Work session complete",
			fmt.Sprintf("You earned %s of break (deficit %s). Take it now or keep working.",
				timer.FormatSeconds(event.Earned()), timer.FormatSeconds(event.State.BreakDeficit)),
			true
	case event.Previous.Phase == timer.PhaseRollover && event.State.Phase == timer.PhaseWork:
		return "Back to work",
			fmt.Sprintf("Break window closed; a new %s session started.", timer.FormatSeconds(event.State.RemainingSeconds)),
			true
	case event.Previous.Phase == timer.PhaseBreak && event.State.Phase == timer.PhaseIdle:
		return "Break over", "Start a new session when you are ready.", true
	}
	return "", "", false
}
