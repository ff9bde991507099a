package popup

import (
	"fmt"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/clock"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/logging"
)

// DefaultCriticalTimeout is how long a critical interrupt stays up unattended.
const DefaultCriticalTimeout = 10 * time.Second

// State of the critical slot.
type State int

const (
	Idle State = iota
	Showing
)

func (s State) String() string {
	if s == Showing {
		return "showing"
	}
	return "idle"
}

// Outcome records how a critical interrupt closed.
type Outcome string

const (
	OutcomeDismissed Outcome = "dismissed"
	OutcomeAction    Outcome = "action"
	OutcomeTimeout   Outcome = "timeout"
	OutcomeDropped   Outcome = "dropped"
)

// QueueOptions configures a CriticalQueue.
type QueueOptions struct {
	Scheduler clock.Scheduler
	// Timeout closes an unattended interrupt. Zero uses DefaultCriticalTimeout.
	Timeout time.Duration
	// OnTimeout runs on the timer goroutine when an interrupt times out.
	// The owner serializes access and calls Expire. When nil the queue calls
	// Expire itself, which is only safe with a single-goroutine scheduler.
	OnTimeout func(id string)
	Logger    logging.Logger
}

// CriticalQueue is the single-slot presentation queue for critical
// interrupts. At most one alert is showing; later admissions wait in a FIFO
// backlog. CriticalQueue is not safe for concurrent use.
type CriticalQueue struct {
	sched     clock.Scheduler
	timeout   time.Duration
	onTimeout func(id string)
	log       logging.Logger

	current *domain.Notification
	timer   clock.Timer
	backlog []domain.Notification
}

// NewCriticalQueue returns an idle queue.
func NewCriticalQueue(opts QueueOptions) *CriticalQueue {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultCriticalTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	q := &CriticalQueue{
		sched:     opts.Scheduler,
		timeout:   opts.Timeout,
		onTimeout: opts.OnTimeout,
		log:       opts.Logger.With("component", "critical_queue"),
	}
	if q.onTimeout == nil {
		q.onTimeout = func(id string) { q.Expire(id) }
	}
	return q
}

// State returns Showing while an interrupt is visible.
func (q *CriticalQueue) State() State {
	if q.current != nil {
		return Showing
	}
	return Idle
}

// Current returns the visible interrupt.
func (q *CriticalQueue) Current() (domain.Notification, bool) {
	if q.current == nil {
		return domain.Notification{}, false
	}
	return q.current.Clone(), true
}

// Backlog returns the waiting alerts in presentation order.
func (q *CriticalQueue) Backlog() []domain.Notification {
	out := make([]domain.Notification, len(q.backlog))
	for i := range q.backlog {
		out[i] = q.backlog[i].Clone()
	}
	return out
}

// Len returns the visible interrupt plus the backlog.
func (q *CriticalQueue) Len() int {
	if q.current == nil {
		return len(q.backlog)
	}
	return len(q.backlog) + 1
}

// Contains reports whether id is showing or waiting.
func (q *CriticalQueue) Contains(id string) bool {
	if q.current != nil && q.current.ID == id {
		return true
	}
	for i := range q.backlog {
		if q.backlog[i].ID == id {
			return true
		}
	}
	return false
}

// Enqueue presents n immediately when idle, otherwise appends it to the
// backlog. It reports whether n is now showing. An id already queued is
// ignored.
func (q *CriticalQueue) Enqueue(n domain.Notification) bool {
	if q.Contains(n.ID) {
		return false
	}
	if q.current == nil {
		q.show(n.Clone())
		return true
	}
	q.backlog = append(q.backlog, n.Clone())
	q.log.Debug("critical alert queued", "id", n.ID, "backlog", len(q.backlog))
	return false
}

// Dismiss closes the visible interrupt and advances the backlog.
func (q *CriticalQueue) Dismiss() (domain.Notification, bool) {
	return q.close(OutcomeDismissed)
}

// TakeAction closes the visible interrupt through the action with the given
// label and returns both. The caller runs the action effect.
func (q *CriticalQueue) TakeAction(label string) (domain.Notification, domain.Action, error) {
	if q.current == nil {
		return domain.Notification{}, domain.Action{}, fmt.Errorf("no critical alert showing: %w", domain.ErrNotificationNotFound)
	}
	action, ok := q.current.FindAction(label)
	if !ok {
		return domain.Notification{}, domain.Action{}, fmt.Errorf("%w: %q", domain.ErrActionNotFound, label)
	}
	n, _ := q.close(OutcomeAction)
	return n, action, nil
}

// Expire handles the auto-timeout of id. It is a no-op unless id is the
// visible interrupt, so a stale timer can never close another alert.
func (q *CriticalQueue) Expire(id string) (domain.Notification, bool) {
	if q.current == nil || q.current.ID != id {
		return domain.Notification{}, false
	}
	return q.close(OutcomeTimeout)
}

// Drop removes id from the slot or the backlog without reporting it as
// dismissed. Used when the store no longer has the record.
func (q *CriticalQueue) Drop(id string) bool {
	if q.current != nil && q.current.ID == id {
		q.close(OutcomeDropped)
		return true
	}
	for i := range q.backlog {
		if q.backlog[i].ID == id {
			q.backlog = append(q.backlog[:i:i], q.backlog[i+1:]...)
			return true
		}
	}
	return false
}

// Reset cancels the timer and empties the slot and backlog.
func (q *CriticalQueue) Reset() {
	q.stopTimer()
	q.current = nil
	q.backlog = nil
}

func (q *CriticalQueue) show(n domain.Notification) {
	q.current = &n
	id := n.ID
	q.timer = q.sched.Schedule(q.timeout, func() { q.onTimeout(id) })
	q.log.Info("critical alert shown", "id", id, "risk", n.RiskLevel())
}

func (q *CriticalQueue) close(outcome Outcome) (domain.Notification, bool) {
	if q.current == nil {
		return domain.Notification{}, false
	}
	q.stopTimer()
	closed := *q.current
	q.current = nil
	q.log.Info("critical alert closed", "id", closed.ID, "outcome", string(outcome))

	if len(q.backlog) > 0 {
		next := q.backlog[0]
		q.backlog = q.backlog[1:]
		q.show(next)
	}
	return closed, true
}

func (q *CriticalQueue) stopTimer() {
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
}
