package cli

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"pomodoro/internal/core/agenda"
	"pomodoro/internal/core/autopause"
	"pomodoro/internal/core/timer"
	"pomodoro/internal/notify"
	"pomodoro/internal/platform"
	"pomodoro/internal/ui/preferences"
)

// session bundles an engine with the background helpers enabled by settings.
type session struct {
	engine  *timer.Engine
	agenda  *agenda.Agenda
	watcher *autopause.Watcher
	logger  zerolog.Logger
}

// newSession builds the engine, subscribes the notification dispatcher, and
// prepares the agenda and idle watcher. A nil notifier leaves notifications
// to the host.
func newSession(settings preferences.Settings, notifier notify.Notifier, logger zerolog.Logger) (*session, error) {
	engine := timer.New(settings.TimerConfig(), timer.Config{Logger: logger})

	schedule, err := agenda.New(settings.AutostartSchedule, engine, logger)
	if err != nil {
		engine.Destroy()
		return nil, err
	}

	var cue notify.Cue
	if settings.Bell {
		cue = notify.NewBell()
	}
	if !settings.Notifications {
		notifier = nil
	}
	if cue != nil || notifier != nil {
		engine.SubscribeEvents(notify.NewDispatcher(cue, notifier).Handle)
	}

	s := &session{
		engine: engine,
		agenda: schedule,
		logger: logger,
	}
	if settings.IdlePause {
		s.watcher = autopause.New(engine, platform.NewIdleProvider(), autopause.Config{
			After: settings.IdlePauseAfter,
		}, logger)
	}
	return s, nil
}

// runBackground starts the agenda and idle watcher on g; both stop with ctx.
func (s *session) runBackground(ctx context.Context, g *errgroup.Group) {
	s.agenda.Start()
	g.Go(func() error {
		<-ctx.Done()
		s.agenda.Stop(context.Background())
		return nil
	})
	if s.watcher != nil {
		g.Go(func() error {
			return s.watcher.Run(ctx)
		})
	}
}

func (s *session) close() {
	s.engine.Destroy()
}
