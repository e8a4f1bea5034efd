// Package autopause suspends a running work session while the user is away.
package autopause

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pomodoro/internal/core/timer"
	"pomodoro/internal/platform"
)

const (
	DefaultCheckInterval = 5 * time.Second
	DefaultAfter         = 5 * time.Minute
)

// Target is the part of the engine the watcher drives.
type Target interface {
	Snapshot() timer.State
	Pause()
}

// Config controls idle polling.
type Config struct {
	CheckInterval time.Duration
	After         time.Duration
}

// Watcher pauses Target once the idle duration reaches After.
// Resuming is left to the user.
type Watcher struct {
	mu       sync.Mutex
	target   Target
	provider platform.IdleProvider
	config   Config
	logger   zerolog.Logger
	disabled bool
}

// New creates a Watcher. Zero config values fall back to the defaults.
func New(target Target, provider platform.IdleProvider, config Config, logger zerolog.Logger) *Watcher {
	if config.CheckInterval <= 0 {
		config.CheckInterval = DefaultCheckInterval
	}
	if config.After <= 0 {
		config.After = DefaultAfter
	}
	return &Watcher{
		target:   target,
		provider: provider,
		config:   config,
		logger:   logger.With().Str("component", "autopause").Logger(),
	}
}

// Disabled reports whether idle detection turned out to be unsupported.
func (watcher *Watcher) Disabled() bool {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	return watcher.disabled
}

// Check polls the idle provider once and pauses a running work session when the
// user has been idle long enough. It reports whether it paused.
func (watcher *Watcher) Check() (bool, error) {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()

	if watcher.disabled || watcher.provider == nil {
		return false, nil
	}

	state := watcher.target.Snapshot()
	if state.Phase != timer.PhaseWork || state.Paused {
		return false, nil
	}

	idle, err := watcher.provider.IdleDuration()
	if err != nil {
		if errors.Is(err, platform.ErrIdleUnsupported) {
			watcher.disabled = true
			watcher.logger.Warn().Err(err).Msg("idle pause disabled")
		}
		return false, err
	}
	if idle < watcher.config.After {
		return false, nil
	}

	watcher.logger.Info().Dur("idle", idle).Msg("pausing work session while away")
	watcher.target.Pause()
	return true, nil
}

// Run polls until ctx is done or idle detection is found to be unsupported.
func (watcher *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(watcher.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := watcher.Check(); err != nil {
				if errors.Is(err, platform.ErrIdleUnsupported) {
					return nil
				}
				watcher.logger.Debug().Err(err).Msg("idle check failed")
			}
		}
	}
}
