package timer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pomodoro/internal/core/model"
)

// Config contains runtime options for Engine.
type Config struct {
	TickInterval time.Duration
	Scheduler    Scheduler
	// Logger receives debug output for every phase change. The zero value discards.
	Logger zerolog.Logger
}

// Engine is the work/break state machine.
//
// Commands and ticks are serialized by a single mutex. Events are queued in
// mutation order and delivered with the mutex released, so listeners may call
// back into the engine; a nested command's event is delivered after the one
// being dispatched.
type Engine struct {
	mu          sync.Mutex
	id          string
	config      model.TimerConfig
	options     Config
	logger      zerolog.Logger
	state       State
	countdown   Handle
	generation  uint64
	destroyed   bool
	subscribers []*subscriber
	outbox      []delivery
	dispatching bool
}

type subscriber struct {
	fn      func(Event)
	release func()
	active  atomic.Bool
}

type delivery struct {
	event   Event
	targets []*subscriber
}

// New creates an idle Engine with the provided configuration.
func New(config model.TimerConfig, options Config) *Engine {
	config = config.WithDefaults()
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Scheduler == nil {
		options.Scheduler = TickerScheduler{}
	}

	id := uuid.NewString()
	engine := &Engine{
		id:      id,
		config:  config,
		options: options,
		logger:  options.Logger.With().Str("component", "timer").Str("engine_id", id).Logger(),
	}
	engine.state = State{
		Phase:            PhaseIdle,
		RemainingSeconds: config.WorkSeconds(),
	}
	return engine
}

// ID returns the instance identifier used in logs and API responses.
func (engine *Engine) ID() string {
	return engine.id
}

// Config returns the effective (defaulted) configuration.
func (engine *Engine) Config() model.TimerConfig {
	return engine.config
}

// Snapshot returns the current state.
func (engine *Engine) Snapshot() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state
}

// Phase returns the current phase.
func (engine *Engine) Phase() Phase {
	return engine.Snapshot().Phase
}

// RemainingSeconds returns the countdown of the current phase.
func (engine *Engine) RemainingSeconds() int {
	return engine.Snapshot().RemainingSeconds
}

// BreakDeficit returns the break time owed, in seconds.
func (engine *Engine) BreakDeficit() int {
	return engine.Snapshot().BreakDeficit
}

// CompletedWorkSessions returns the number of finished work sessions.
func (engine *Engine) CompletedWorkSessions() int {
	return engine.Snapshot().CompletedWorkSessions
}

// Paused reports whether a work session is suspended.
func (engine *Engine) Paused() bool {
	return engine.Snapshot().Paused
}

// Kind returns the display session kind.
func (engine *Engine) Kind() SessionKind {
	return engine.Snapshot().Kind()
}

// Start begins a work session from Idle.
func (engine *Engine) Start() {
	engine.command(TriggerStart, func() bool {
		if engine.state.Phase != PhaseIdle {
			return false
		}
		engine.enterWorkLocked()
		return true
	})
}

// Pause suspends a running work session.
func (engine *Engine) Pause() {
	engine.command(TriggerPause, func() bool {
		if engine.state.Phase != PhaseWork || engine.state.Paused {
			return false
		}
		engine.cancelCountdownLocked()
		engine.state.Paused = true
		return true
	})
}

// Resume continues a paused work session from the remaining time.
func (engine *Engine) Resume() {
	engine.command(TriggerResume, func() bool {
		if engine.state.Phase != PhaseWork || !engine.state.Paused {
			return false
		}
		engine.state.Paused = false
		engine.startCountdownLocked()
		return true
	})
}

// Stop returns to Idle keeping the deficit and completed sessions.
func (engine *Engine) Stop() {
	engine.command(TriggerStop, func() bool {
		engine.enterIdleLocked()
		return true
	})
}

// Reset returns to Idle and clears all progress.
func (engine *Engine) Reset() {
	engine.command(TriggerReset, func() bool {
		engine.enterIdleLocked()
		engine.state.BreakDeficit = 0
		engine.state.CompletedWorkSessions = 0
		return true
	})
}

// SkipBreak leaves the rollover window and starts the next work session now.
func (engine *Engine) SkipBreak() {
	engine.command(TriggerSkipBreak, func() bool {
		if engine.state.Phase != PhaseRollover {
			return false
		}
		engine.enterWorkLocked()
		return true
	})
}

// TakeBreak spends the whole break deficit during the rollover window.
func (engine *Engine) TakeBreak() {
	engine.takeBreak(0, false)
}

// TakeBreakFor spends up to seconds of the break deficit during the rollover window.
// The request is clamped to [0, deficit]; a zero-length break returns to Idle.
func (engine *Engine) TakeBreakFor(seconds int) {
	engine.takeBreak(seconds, true)
}

func (engine *Engine) takeBreak(requested int, explicit bool) {
	engine.command(TriggerTakeBreak, func() bool {
		if engine.state.Phase != PhaseRollover {
			return false
		}
		if !explicit {
			requested = engine.state.BreakDeficit
		}
		duration := clamp(requested, 0, engine.state.BreakDeficit)
		if duration == 0 {
			engine.enterIdleLocked()
			return true
		}
		engine.enterBreakLocked(duration)
		return true
	})
}

// Destroy releases the countdown and detaches all observers.
// Every later command is a no-op.
func (engine *Engine) Destroy() {
	engine.mu.Lock()
	if engine.destroyed {
		engine.mu.Unlock()
		return
	}
	engine.destroyed = true
	engine.cancelCountdownLocked()
	subscribers := engine.subscribers
	engine.subscribers = nil
	engine.outbox = nil
	engine.mu.Unlock()

	engine.logger.Debug().Msg("timer destroyed")
	for _, sub := range subscribers {
		sub.active.Store(false)
		if sub.release != nil {
			sub.release()
		}
	}
}

// Subscribe registers a listener for state snapshots. It is called once with the
// current state and then after every mutation. The first call happens before
// Subscribe returns only when no other delivery is in progress; subscribing from
// a listener or while another goroutine dispatches queues it behind that delivery.
func (engine *Engine) Subscribe(listener func(State)) (unsubscribe func()) {
	return engine.SubscribeEvents(func(event Event) {
		listener(event.State)
	})
}

// SubscribeEvents registers a listener for events, starting with an EventSnapshot.
func (engine *Engine) SubscribeEvents(listener func(Event)) (unsubscribe func()) {
	return engine.subscribe(&subscriber{fn: listener})
}

// Events registers an observer channel. Delivery never blocks the engine: when
// the buffer is full the event is dropped for this channel. The channel is
// closed by the returned cancel function or by Destroy.
func (engine *Engine) Events(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	var (
		mu     sync.Mutex
		closed bool
	)
	closeChannel := func() {
		mu.Lock()
		defer mu.Unlock()
		if !closed {
			closed = true
			close(ch)
		}
	}

	sub := &subscriber{
		fn: func(event Event) {
			mu.Lock()
			defer mu.Unlock()
			if closed {
				return
			}
			select {
			case ch <- event:
			default:
			}
		},
		release: closeChannel,
	}
	unsubscribe := engine.subscribe(sub)
	return ch, func() {
		unsubscribe()
		closeChannel()
	}
}

func (engine *Engine) subscribe(sub *subscriber) func() {
	sub.active.Store(true)

	engine.mu.Lock()
	destroyed := engine.destroyed
	if !destroyed {
		engine.subscribers = append(engine.subscribers, sub)
	}
	engine.outbox = append(engine.outbox, delivery{
		event: Event{
			Type:     EventSnapshot,
			Trigger:  TriggerSubscribe,
			Previous: engine.state,
			State:    engine.state,
			At:       time.Now(),
		},
		targets: []*subscriber{sub},
	})
	engine.mu.Unlock()
	engine.dispatch()

	if destroyed {
		sub.active.Store(false)
		if sub.release != nil {
			sub.release()
		}
	}
	return func() {
		engine.unsubscribe(sub)
	}
}

func (engine *Engine) unsubscribe(sub *subscriber) {
	sub.active.Store(false)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	for index, candidate := range engine.subscribers {
		if candidate == sub {
			engine.subscribers = append(engine.subscribers[:index], engine.subscribers[index+1:]...)
			return
		}
	}
}

// command runs apply under the lock and publishes a state change when it reports a mutation.
func (engine *Engine) command(trigger Trigger, apply func() bool) {
	engine.mu.Lock()
	if engine.destroyed {
		engine.mu.Unlock()
		return
	}
	previous := engine.state
	if !apply() {
		engine.mu.Unlock()
		return
	}
	engine.publishLocked(EventStateChange, trigger, previous)
	engine.mu.Unlock()
	engine.dispatch()
}

func (engine *Engine) tick(generation uint64) {
	engine.mu.Lock()
	if engine.destroyed || generation != engine.generation || engine.countdown == nil || !engine.state.Counting() {
		engine.mu.Unlock()
		return
	}

	previous := engine.state
	engine.state.RemainingSeconds--
	if engine.state.RemainingSeconds > 0 {
		engine.publishLocked(EventProgress, TriggerTick, previous)
	} else {
		engine.expireLocked()
		engine.publishLocked(EventStateChange, TriggerExpiry, previous)
	}
	engine.mu.Unlock()
	engine.dispatch()
}

func (engine *Engine) expireLocked() {
	switch engine.state.Phase {
	case PhaseWork:
		engine.enterRolloverLocked()
	case PhaseRollover:
		engine.enterWorkLocked()
	case PhaseBreak:
		engine.enterIdleLocked()
	default:
		engine.cancelCountdownLocked()
	}
}

func (engine *Engine) enterIdleLocked() {
	engine.cancelCountdownLocked()
	engine.state.Phase = PhaseIdle
	engine.state.RemainingSeconds = engine.config.WorkSeconds()
	engine.state.Paused = false
}

func (engine *Engine) enterWorkLocked() {
	engine.state.Phase = PhaseWork
	engine.state.RemainingSeconds = engine.config.WorkSeconds()
	engine.state.Paused = false
	engine.startCountdownLocked()
}

func (engine *Engine) enterRolloverLocked() {
	engine.state.CompletedWorkSessions++
	earned := engine.config.ShortBreakSeconds()
	if engine.state.CompletedWorkSessions%engine.config.LongBreakInterval == 0 {
		earned = engine.config.LongBreakSeconds()
	}
	engine.state.BreakDeficit += earned
	engine.state.Phase = PhaseRollover
	engine.state.RemainingSeconds = engine.config.RolloverSeconds()
	engine.state.Paused = false
	engine.startCountdownLocked()
}

func (engine *Engine) enterBreakLocked(seconds int) {
	engine.state.BreakDeficit -= seconds
	engine.state.Phase = PhaseBreak
	engine.state.RemainingSeconds = seconds
	engine.state.Paused = false
	engine.startCountdownLocked()
}

// startCountdownLocked replaces any live countdown with a fresh one.
func (engine *Engine) startCountdownLocked() {
	engine.cancelCountdownLocked()
	generation := engine.generation
	engine.countdown = engine.options.Scheduler.ScheduleRepeating(engine.options.TickInterval, func() {
		engine.tick(generation)
	})
}

// cancelCountdownLocked stops the live countdown; ticks already in flight are
// discarded by the generation check in tick.
func (engine *Engine) cancelCountdownLocked() {
	engine.generation++
	if engine.countdown != nil {
		engine.countdown.Cancel()
		engine.countdown = nil
	}
}

func (engine *Engine) publishLocked(eventType EventType, trigger Trigger, previous State) {
	event := Event{
		Type:     eventType,
		Trigger:  trigger,
		Previous: previous,
		State:    engine.state,
		At:       time.Now(),
	}
	if event.PhaseChanged() {
		engine.logger.Debug().
			Str("trigger", string(trigger)).
			Str("from", string(previous.Phase)).
			Str("to", string(engine.state.Phase)).
			Int("remaining", engine.state.RemainingSeconds).
			Int("deficit", engine.state.BreakDeficit).
			Int("completed", engine.state.CompletedWorkSessions).
			Msg("timer transition")
	}
	engine.outbox = append(engine.outbox, delivery{
		event:   event,
		targets: append([]*subscriber(nil), engine.subscribers...),
	})
}

// dispatch drains the outbox unless another call is already draining it.
func (engine *Engine) dispatch() {
	engine.mu.Lock()
	if engine.dispatching {
		engine.mu.Unlock()
		return
	}
	engine.dispatching = true
	for len(engine.outbox) > 0 {
		next := engine.outbox[0]
		engine.outbox = engine.outbox[1:]
		engine.mu.Unlock()

		for _, sub := range next.targets {
			if sub.active.Load() {
				sub.fn(next.event)
			}
		}

		engine.mu.Lock()
	}
	engine.dispatching = false
	engine.mu.Unlock()
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
