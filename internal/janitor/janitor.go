// Package janitor periodically purges stale, inert notifications.
package janitor

import (
	"sync"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/clock"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/logging"
)

// Defaults for the sweep schedule.
const (
	DefaultInterval  = time.Hour
	DefaultRetention = 24 * time.Hour
)

// Target is the collection swept by the janitor.
type Target interface {
	RemoveWhere(pred func(n domain.Notification) bool) []string
}

// Options configures a Janitor.
type Options struct {
	Scheduler clock.Scheduler
	Interval  time.Duration
	Retention time.Duration
	Logger    logging.Logger
}

// Janitor removes records older than the retention period that are read or
// dismissed. Unread records are never purged.
type Janitor struct {
	target    Target
	sched     clock.Scheduler
	interval  time.Duration
	retention time.Duration
	log       logging.Logger

	mu    sync.Mutex
	timer clock.Timer
}

// New returns a stopped janitor.
func New(target Target, opts Options) *Janitor {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Retention <= 0 {
		opts.Retention = DefaultRetention
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	return &Janitor{
		target:    target,
		sched:     opts.Scheduler,
		interval:  opts.Interval,
		retention: opts.Retention,
		log:       opts.Logger.With("component", "janitor"),
	}
}

// Start schedules a sweep every interval. Starting a running janitor is a
// no-op.
func (j *Janitor) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.timer != nil {
		return
	}
	j.timer = clock.Every(j.sched, j.interval, func() { j.Sweep() })
	j.log.Debug("janitor started", "interval", j.interval, "retention", j.retention)
}

// Stop cancels the periodic sweep. It reports whether the janitor was running.
func (j *Janitor) Stop() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.timer == nil {
		return false
	}
	j.timer.Stop()
	j.timer = nil
	j.log.Debug("janitor stopped")
	return true
}

// Running reports whether periodic sweeps are scheduled.
func (j *Janitor) Running() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.timer != nil
}

// Sweep removes every eligible record now and returns their ids.
func (j *Janitor) Sweep() []string {
	now := j.sched.Now()
	removed := j.target.RemoveWhere(func(n domain.Notification) bool {
		return Eligible(n, now, j.retention)
	})
	if len(removed) > 0 {
		j.log.Info("janitor sweep", "removed", len(removed))
	}
	return removed
}

// Eligible reports whether n is older than retention at now and inert.
func Eligible(n domain.Notification, now time.Time, retention time.Duration) bool {
	return n.Inert() && now.Sub(n.Timestamp) > retention
}
