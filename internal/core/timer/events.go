package timer

import "time"

// EventType defines the type of Engine event.
type EventType string

const (
	EventSnapshot    EventType = "snapshot"
	EventProgress    EventType = "progress"
	EventStateChange EventType = "state_change"
)

// Trigger names what caused an event.
type Trigger string

const (
	TriggerSubscribe Trigger = "subscribe"
	TriggerTick      Trigger = "tick"
	TriggerExpiry    Trigger = "expiry"
	TriggerStart     Trigger = "start"
	TriggerPause     Trigger = "pause"
	TriggerResume    Trigger = "resume"
	TriggerStop      Trigger = "stop"
	TriggerReset     Trigger = "reset"
	TriggerSkipBreak Trigger = "skip_break"
	TriggerTakeBreak Trigger = "take_break"
)

// Event represents an Engine update for observers.
type Event struct {
	Type     EventType `json:"type"`
	Trigger  Trigger   `json:"trigger"`
	Previous State     `json:"previous"`
	State    State     `json:"state"`
	At       time.Time `json:"at"`
}

// PhaseChanged reports whether the event moved the engine to another phase.
func (event Event) PhaseChanged() bool {
	return event.Previous.Phase != event.State.Phase
}

// Earned returns the break seconds credited by a Work to Rollover transition.
func (event Event) Earned() int {
	if event.Previous.Phase != PhaseWork || event.State.Phase != PhaseRollover {
		return 0
	}
	return event.State.BreakDeficit - event.Previous.BreakDeficit
}

// Taken returns the break seconds consumed by a Rollover to Break transition.
func (event Event) Taken() int {
	if event.Previous.Phase != PhaseRollover || event.State.Phase != PhaseBreak {
		return 0
	}
	return event.Previous.BreakDeficit - event.State.BreakDeficit
}
