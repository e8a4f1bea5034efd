package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig indicates a TimerConfig value outside its allowed range.
var ErrInvalidConfig = errors.New("invalid timer config")

// Default durations of the work/break cycle.
const (
	DefaultWork              = 25 * time.Minute
	DefaultShortBreak        = 5 * time.Minute
	DefaultLongBreak         = 15 * time.Minute
	DefaultRollover          = time.Minute
	DefaultLongBreakInterval = 4
)

// TimerConfig contains the fixed durations of the work/break cycle.
type TimerConfig struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
	Rollover   time.Duration

	// LongBreakInterval makes every Nth completed work session earn a long break.
	LongBreakInterval int
}

// DefaultTimerConfig returns the classic 25/5/15 cycle with a one minute rollover window.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Work:              DefaultWork,
		ShortBreak:        DefaultShortBreak,
		LongBreak:         DefaultLongBreak,
		Rollover:          DefaultRollover,
		LongBreakInterval: DefaultLongBreakInterval,
	}
}

// WithDefaults replaces zero, negative and sub-second values with the defaults.
func (config TimerConfig) WithDefaults() TimerConfig {
	defaults := DefaultTimerConfig()
	if config.Work < time.Second {
		config.Work = defaults.Work
	}
	if config.ShortBreak < time.Second {
		config.ShortBreak = defaults.ShortBreak
	}
	if config.LongBreak < time.Second {
		config.LongBreak = defaults.LongBreak
	}
	if config.Rollover < time.Second {
		config.Rollover = defaults.Rollover
	}
	if config.LongBreakInterval <= 0 {
		config.LongBreakInterval = defaults.LongBreakInterval
	}
	return config
}

// Validate reports the first field that cannot be used as-is.
func (config TimerConfig) Validate() error {
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"work", config.Work},
		{"short break", config.ShortBreak},
		{"long break", config.LongBreak},
		{"rollover", config.Rollover},
	}
	for _, field := range durations {
		if field.value < time.Second {
			return fmt.Errorf("%w: %s duration %s is shorter than one second", ErrInvalidConfig, field.name, field.value)
		}
	}
	if config.LongBreakInterval <= 0 {
		return fmt.Errorf("%w: long break interval %d must be positive", ErrInvalidConfig, config.LongBreakInterval)
	}
	return nil
}

// WorkSeconds returns the work duration in whole seconds.
func (config TimerConfig) WorkSeconds() int { return seconds(config.Work) }

// ShortBreakSeconds returns the short break duration in whole seconds.
func (config TimerConfig) ShortBreakSeconds() int { return seconds(config.ShortBreak) }

// LongBreakSeconds returns the long break duration in whole seconds.
func (config TimerConfig) LongBreakSeconds() int { return seconds(config.LongBreak) }

// RolloverSeconds returns the rollover window in whole seconds.
func (config TimerConfig) RolloverSeconds() int { return seconds(config.Rollover) }

func seconds(duration time.Duration) int {
	return int(duration / time.Second)
}
