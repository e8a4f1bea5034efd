// Package agenda starts work sessions on a cron schedule.
package agenda

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// ErrInvalidSchedule indicates a cron expression that cannot be parsed.
var ErrInvalidSchedule = errors.New("invalid schedule")

// Starter is started at every scheduled time. Starting outside Idle is a no-op
// on the engine side.
type Starter interface {
	Start()
}

// Agenda wraps a cron runner with a single job.
type Agenda struct {
	expr     string
	schedule cron.Schedule
	cron     *cron.Cron
	target   Starter
	logger   zerolog.Logger
}

// Parse validates a standard five-field cron expression.
func Parse(expr string) (cron.Schedule, error) {
	schedule, err := cron.ParseStandard(strings.TrimSpace(expr))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSchedule, expr, err)
	}
	return schedule, nil
}

// New creates an Agenda. An empty expression yields a disabled agenda whose
// Start and Stop do nothing.
func New(expr string, target Starter, logger zerolog.Logger) (*Agenda, error) {
	agenda := &Agenda{
		expr:   strings.TrimSpace(expr),
		target: target,
		logger: logger.With().Str("component", "agenda").Logger(),
	}
	if agenda.expr == "" {
		return agenda, nil
	}

	schedule, err := Parse(agenda.expr)
	if err != nil {
		return nil, err
	}
	agenda.schedule = schedule
	agenda.cron = cron.New()
	agenda.cron.Schedule(schedule, cron.FuncJob(agenda.Fire))
	return agenda, nil
}

// Enabled reports whether a schedule is configured.
func (agenda *Agenda) Enabled() bool {
	return agenda.schedule != nil
}

// Next returns the first activation after now, or the zero time when disabled.
func (agenda *Agenda) Next(now time.Time) time.Time {
	if agenda.schedule == nil {
		return time.Time{}
	}
	return agenda.schedule.Next(now)
}

// Fire starts the target immediately.
func (agenda *Agenda) Fire() {
	agenda.logger.Info().Str("schedule", agenda.expr).Msg("scheduled start")
	agenda.target.Start()
}

// Start runs the cron loop in the background.
func (agenda *Agenda) Start() {
	if agenda.cron == nil {
		return
	}
	agenda.cron.Start()
	agenda.logger.Info().Str("schedule", agenda.expr).Time("next", agenda.Next(time.Now())).Msg("agenda started")
}

// Stop halts scheduling and waits for a running job until ctx is done.
func (agenda *Agenda) Stop(ctx context.Context) {
	if agenda.cron == nil {
		return
	}
	select {
	case <-agenda.cron.Stop().Done():
	case <-ctx.Done():
	}
}
