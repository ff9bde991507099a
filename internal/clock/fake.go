package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a virtual Scheduler. Time only moves through Set and Advance,
// which run due callbacks synchronously on the caller's goroutine.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	nextID  uint64
	pending map[uint64]*fakeTimer
}

type fakeTimer struct {
	f   *Fake
	id  uint64
	at  time.Time
	fn  func()
	seq uint64
}

// NewFake returns a Fake starting at now.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now, pending: make(map[uint64]*fakeTimer)}
}

// Now returns the virtual time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Schedule registers fn to run once the virtual time reaches now+delay.
func (f *Fake) Schedule(delay time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t := &fakeTimer{f: f, id: f.nextID, at: f.now.Add(delay), fn: fn, seq: f.nextID}
	f.pending[t.id] = t
	return t
}

func (t *fakeTimer) Stop() bool {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if _, ok := t.f.pending[t.id]; !ok {
		return false
	}
	delete(t.f.pending, t.id)
	return true
}

// Pending returns the number of scheduled callbacks that have not fired.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Advance moves the virtual time forward by d, firing due callbacks in
// deadline order. Callbacks scheduled by a firing callback run too if they
// fall due within the window.
func (f *Fake) Advance(d time.Duration) {
	f.Set(f.Now().Add(d))
}

// Set moves the virtual time to target, firing due callbacks in order. Moving
// backwards only changes the reported time.
func (f *Fake) Set(target time.Time) {
	for {
		f.mu.Lock()
		next := f.nextDue(target)
		if next == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		delete(f.pending, next.id)
		if next.at.After(f.now) {
			f.now = next.at
		}
		f.mu.Unlock()

		next.fn()
	}
}

// nextDue returns the earliest pending timer due at or before target.
// Callers must hold f.mu.
func (f *Fake) nextDue(target time.Time) *fakeTimer {
	due := make([]*fakeTimer, 0, len(f.pending))
	for _, t := range f.pending {
		if !t.at.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}
