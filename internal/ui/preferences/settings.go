package preferences

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pomodoro/internal/core/model"
)

// ErrInvalidSettings indicates settings that cannot be applied.
var ErrInvalidSettings = errors.New("invalid settings")

// DefaultHTTPAddr is where the serve command listens unless configured otherwise.
const DefaultHTTPAddr = "127.0.0.1:8425"

// Settings defines editable user preferences.
type Settings struct {
	Work              time.Duration
	ShortBreak        time.Duration
	LongBreak         time.Duration
	Rollover          time.Duration
	LongBreakInterval int

	Bell          bool
	Notifications bool

	IdlePause      bool
	IdlePauseAfter time.Duration

	// AutostartSchedule is a standard cron expression; empty disables it.
	AutostartSchedule string
	HTTPAddr          string
}

// DefaultSettings returns default settings.
func DefaultSettings() Settings {
	timer := model.DefaultTimerConfig()
	return Settings{
		Work:              timer.Work,
		ShortBreak:        timer.ShortBreak,
		LongBreak:         timer.LongBreak,
		Rollover:          timer.Rollover,
		LongBreakInterval: timer.LongBreakInterval,
		Bell:              true,
		Notifications:     true,
		IdlePause:         false,
		IdlePauseAfter:    5 * time.Minute,
		HTTPAddr:          DefaultHTTPAddr,
	}
}

// TimerConfig converts settings to the engine configuration.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		Work:              settings.Work,
		ShortBreak:        settings.ShortBreak,
		LongBreak:         settings.LongBreak,
		Rollover:          settings.Rollover,
		LongBreakInterval: settings.LongBreakInterval,
	}
}

// Validate reports settings that cannot be applied.
func (settings Settings) Validate() error {
	if err := settings.TimerConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if settings.IdlePause && settings.IdlePauseAfter < time.Minute {
		return fmt.Errorf("%w: idle pause threshold %s is shorter than one minute", ErrInvalidSettings, settings.IdlePauseAfter)
	}
	if strings.TrimSpace(settings.HTTPAddr) == "" {
		return fmt.Errorf("%w: http address is empty", ErrInvalidSettings)
	}
	return nil
}
