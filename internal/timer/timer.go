// Package timer measures how long the learner takes to answer a question.
package timer

import (
	"sync"
	"time"
)

// DefaultInterval is how often a running timer refreshes its reading.
const DefaultInterval = 100 * time.Millisecond

// Timer tracks whole seconds elapsed since Start. At most one refresh
// goroutine is active at a time; restarting cancels the previous one.
type Timer struct {
	mu       sync.Mutex
	now      func() time.Time
	interval time.Duration
	onTick   func(elapsed int)

	start   time.Time
	started bool
	running bool
	elapsed int
	cancel  chan struct{}
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// WithInterval sets the refresh interval.
func WithInterval(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithOnTick registers a callback invoked from the refresh goroutine after
// every refresh.
func WithOnTick(fn func(elapsed int)) Option {
	return func(t *Timer) { t.onTick = fn }
}

// New creates a stopped Timer.
func New(opts ...Option) *Timer {
	t := &Timer{
		now:      time.Now,
		interval: DefaultInterval,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Start resets the reading to zero and begins timing. Any refresh goroutine
// from a previous Start is cancelled first.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancelLocked()
	t.start = t.now()
	t.started = true
	t.running = true
	t.elapsed = 0

	done := make(chan struct{})
	t.cancel = done
	go t.loop(done)
}

// Stop halts timing and returns the final whole seconds since Start. A timer
// that was never started returns 0.
func (t *Timer) Stop() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return 0
	}
	if t.running {
		t.elapsed = t.secondsLocked()
		t.running = false
	}
	t.cancelLocked()
	return t.elapsed
}

// Elapsed returns the current reading. While running it is recomputed from
// the clock so callers never see a value older than one interval.
func (t *Timer) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		t.elapsed = t.secondsLocked()
	}
	return t.elapsed
}

// Running reports whether the timer is currently timing.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Close cancels the refresh goroutine without resetting the reading.
func (t *Timer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		t.elapsed = t.secondsLocked()
		t.running = false
	}
	t.cancelLocked()
}

func (t *Timer) loop(done chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
		}

		t.mu.Lock()
		// A newer Start owns the timer now.
		if t.cancel != done {
			t.mu.Unlock()
			return
		}
		t.elapsed = t.secondsLocked()
		elapsed := t.elapsed
		onTick := t.onTick
		t.mu.Unlock()

		if onTick != nil {
			onTick(elapsed)
		}
	}
}

func (t *Timer) secondsLocked() int {
	d := t.now().Sub(t.start)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

func (t *Timer) cancelLocked() {
	if t.cancel != nil {
		close(t.cancel)
		t.cancel = nil
	}
}
