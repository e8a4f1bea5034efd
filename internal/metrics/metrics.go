// Package metrics exports timer activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pomodoro/internal/core/timer"
)

const (
	namespace = "pomodoro"
	subsystem = "timer"
)

var phases = []timer.Phase{timer.PhaseIdle, timer.PhaseWork, timer.PhaseRollover, timer.PhaseBreak}

// Recorder updates metrics from engine events.
type Recorder struct {
	transitions  *prometheus.CounterVec
	completed    prometheus.Counter
	earned       prometheus.Counter
	taken        prometheus.Counter
	deficit      prometheus.Gauge
	remaining    prometheus.Gauge
	currentPhase *prometheus.GaugeVec
}

// NewRecorder registers the timer metrics on reg. It panics if they are already registered.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "transitions_total",
			Help:      "State changes, labelled by phase before and after and by trigger.",
		}, []string{"from", "to", "trigger"}),
		completed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "work_sessions_completed_total",
			Help:      "Work sessions that ran to completion.",
		}),
		earned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "break_seconds_earned_total",
			Help:      "Break seconds credited by completed work sessions.",
		}),
		taken: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "break_seconds_taken_total",
			Help:      "Break seconds spent from the deficit.",
		}),
		deficit: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "break_deficit_seconds",
			Help:      "Break time currently owed.",
		}),
		remaining: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "remaining_seconds",
			Help:      "Countdown of the current phase.",
		}),
		currentPhase: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "phase",
			Help:      "1 for the current phase, 0 otherwise.",
		}, []string{"phase"}),
	}
}

// Observe is subscribed through Engine.SubscribeEvents.
func (recorder *Recorder) Observe(event timer.Event) {
	recorder.deficit.Set(float64(event.State.BreakDeficit))
	recorder.remaining.Set(float64(event.State.RemainingSeconds))
	for _, phase := range phases {
		value := 0.0
		if phase == event.State.Phase {
			value = 1
		}
		recorder.currentPhase.WithLabelValues(string(phase)).Set(value)
	}

	if event.Type != timer.EventStateChange {
		return
	}
	recorder.transitions.WithLabelValues(string(event.Previous.Phase), string(event.State.Phase), string(event.Trigger)).Inc()

	if earned := event.Earned(); earned > 0 {
		recorder.completed.Inc()
		recorder.earned.Add(float64(earned))
	}
	if taken := event.Taken(); taken > 0 {
		recorder.taken.Add(float64(taken))
	}
}

// Completed exposes the completed work sessions counter.
func (recorder *Recorder) Completed() prometheus.Counter {
	return recorder.completed
}
