// Package clock provides the time source and timer scheduling used by the
// alert engine, so timing policy can be driven by a virtual clock in tests.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// Timer is the cancellation handle of a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped the
	// timer; false means it already fired or was stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	Clock
	Schedule(delay time.Duration, fn func()) Timer
}

// Real is the wall-clock Scheduler backed by time.AfterFunc.
type Real struct{}

// NewReal returns the wall-clock scheduler.
func NewReal() Real {
	return Real{}
}

// Now returns time.Now().
func (Real) Now() time.Time {
	return time.Now()
}

// Schedule runs fn on its own goroutine after delay.
func (Real) Schedule(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, fn)
}

// Every schedules fn repeatedly every interval until the returned Timer is
// stopped. The next run is scheduled after fn returns.
func Every(s Scheduler, interval time.Duration, fn func()) Timer {
	r := &repeating{s: s, interval: interval, fn: fn}
	r.mu.Lock()
	r.current = s.Schedule(interval, r.fire)
	r.mu.Unlock()
	return r
}

type repeating struct {
	mu       sync.Mutex
	s        Scheduler
	interval time.Duration
	fn       func()
	current  Timer
	stopped  bool
}

func (r *repeating) fire() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	r.fn()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.stopped {
		r.current = r.s.Schedule(r.interval, r.fire)
	}
}

func (r *repeating) Stop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return false
	}
	r.stopped = true
	if r.current != nil {
		r.current.Stop()
	}
	return true
}
