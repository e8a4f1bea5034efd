package timer

import (
	"sync"
	"time"
)

// Handle cancels a repeating callback.
// Cancel must not block and must be safe to call more than once.
type Handle interface {
	Cancel()
}

// Scheduler is the periodic tick source the Engine drives its countdown from.
// Implementations must invoke the callback of a handle serially.
type Scheduler interface {
	ScheduleRepeating(interval time.Duration, fn func()) Handle
}

// TickerScheduler schedules callbacks on a time.Ticker, one goroutine per handle.
type TickerScheduler struct{}

// ScheduleRepeating starts a ticker goroutine that calls fn every interval.
func (TickerScheduler) ScheduleRepeating(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Second
	}
	handle := &tickerHandle{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go handle.run(fn)
	return handle
}

type tickerHandle struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (handle *tickerHandle) run(fn func()) {
	defer handle.ticker.Stop()
	for {
		select {
		case <-handle.done:
			return
		case <-handle.ticker.C:
			select {
			case <-handle.done:
				return
			default:
			}
			fn()
		}
	}
}

func (handle *tickerHandle) Cancel() {
	handle.once.Do(func() {
		close(handle.done)
	})
}

// ManualScheduler fires callbacks only when advanced explicitly.
// It makes countdowns deterministic for tests and simulations.
type ManualScheduler struct {
	mu      sync.Mutex
	handles []*manualHandle
	fired   int
}

// NewManualScheduler creates an empty ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// ScheduleRepeating registers fn; it runs once per Advance step until cancelled.
func (scheduler *ManualScheduler) ScheduleRepeating(_ time.Duration, fn func()) Handle {
	handle := &manualHandle{scheduler: scheduler, fn: fn}
	scheduler.mu.Lock()
	scheduler.handles = append(scheduler.handles, handle)
	scheduler.mu.Unlock()
	return handle
}

// Advance performs steps rounds; each round fires every handle that was live at
// its start and is still live when its turn comes.
func (scheduler *ManualScheduler) Advance(steps int) {
	for step := 0; step < steps; step++ {
		scheduler.mu.Lock()
		live := append([]*manualHandle(nil), scheduler.handles...)
		scheduler.mu.Unlock()

		for _, handle := range live {
			if !handle.live() {
				continue
			}
			scheduler.mu.Lock()
			scheduler.fired++
			scheduler.mu.Unlock()
			handle.fn()
		}
	}
}

// Active returns the number of live handles.
func (scheduler *ManualScheduler) Active() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.handles)
}

// Fired returns the number of callbacks invoked so far.
func (scheduler *ManualScheduler) Fired() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.fired
}

type manualHandle struct {
	scheduler *ManualScheduler
	fn        func()
}

func (handle *manualHandle) live() bool {
	handle.scheduler.mu.Lock()
	defer handle.scheduler.mu.Unlock()
	for _, candidate := range handle.scheduler.handles {
		if candidate == handle {
			return true
		}
	}
	return false
}

func (handle *manualHandle) Cancel() {
	scheduler := handle.scheduler
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	for index, candidate := range scheduler.handles {
		if candidate == handle {
			scheduler.handles = append(scheduler.handles[:index], scheduler.handles[index+1:]...)
			return
		}
	}
}
