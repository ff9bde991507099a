// Package toast manages the stack of transient toast notifications.
//
// Each entry owns one countdown timer. Every path that removes an entry
// stops its timer, and timer callbacks are matched by id, so a late timer
// never removes a different toast.
package toast

import (
	"time"

	"github.com/cristianoliveira/alertdeck/internal/clock"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/logging"
)

// DefaultMaxVisible caps the stack when no limit is configured.
const DefaultMaxVisible = 5

// Direction is the way the stack grows from its anchor.
type Direction string

const (
	// StackDown places new toasts below the older ones.
	StackDown Direction = "down"
	// StackUp places new toasts above the older ones.
	StackUp Direction = "up"
)

// Position anchors the stack on screen. It is passed through to renderers.
type Position string

const (
	TopRight     Position = "top-right"
	TopLeft      Position = "top-left"
	TopCenter    Position = "top-center"
	BottomRight  Position = "bottom-right"
	BottomLeft   Position = "bottom-left"
	BottomCenter Position = "bottom-center"
)

// Entry is a visible toast.
type Entry struct {
	Notification domain.Notification
	// Remaining is the countdown left. It is frozen while Paused and
	// meaningless for persistent entries.
	Remaining  time.Duration
	Paused     bool
	Persistent bool
	ShownAt    time.Time
}

// ID returns the notification id of the entry.
func (e Entry) ID() string {
	return e.Notification.ID
}

type entry struct {
	n         domain.Notification
	remaining time.Duration
	deadline  time.Time
	paused    bool
	shownAt   time.Time
	timer     clock.Timer
}

func (e *entry) persistent() bool {
	return e.n.Duration <= 0
}

// Options configures a Scheduler.
type Options struct {
	Scheduler  clock.Scheduler
	MaxVisible int
	Direction  Direction
	Position   Position
	// OnExpire runs on the timer goroutine when a countdown ends. The owner
	// serializes access and calls Expire. When nil the scheduler calls Expire
	// itself, which is only safe with a single-goroutine scheduler.
	OnExpire func(id string)
	Logger   logging.Logger
}

// Scheduler is the bounded toast stack. It is not safe for concurrent use.
type Scheduler struct {
	sched      clock.Scheduler
	maxVisible int
	direction  Direction
	position   Position
	onExpire   func(id string)
	log        logging.Logger

	// entries are kept oldest first.
	entries []*entry
}

// New returns an empty toast stack.
func New(opts Options) *Scheduler {
	if opts.MaxVisible <= 0 {
		opts.MaxVisible = DefaultMaxVisible
	}
	if opts.Direction != StackUp {
		opts.Direction = StackDown
	}
	if opts.Position == "" {
		opts.Position = TopRight
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	s := &Scheduler{
		sched:      opts.Scheduler,
		maxVisible: opts.MaxVisible,
		direction:  opts.Direction,
		position:   opts.Position,
		onExpire:   opts.OnExpire,
		log:        opts.Logger.With("component", "toast"),
	}
	if s.onExpire == nil {
		s.onExpire = func(id string) { s.Expire(id) }
	}
	return s
}

// Position returns the configured anchor.
func (s *Scheduler) Position() Position {
	return s.position
}

// Direction returns the configured stack direction.
func (s *Scheduler) Direction() Direction {
	return s.direction
}

// MaxVisible returns the stack cap.
func (s *Scheduler) MaxVisible() int {
	return s.maxVisible
}

// Len returns the number of visible toasts.
func (s *Scheduler) Len() int {
	return len(s.entries)
}

// Push shows n as a toast and returns the ids evicted to respect the cap,
// oldest first. A notification already on the stack is left as is.
func (s *Scheduler) Push(n domain.Notification) (evicted []string) {
	if s.index(n.ID) >= 0 {
		return nil
	}
	e := &entry{n: n.Clone(), remaining: n.Duration, shownAt: s.sched.Now()}
	s.entries = append(s.entries, e)
	s.start(e)

	for len(s.entries) > s.maxVisible {
		oldest := s.entries[0]
		s.stop(oldest)
		s.entries = s.entries[1:]
		evicted = append(evicted, oldest.n.ID)
	}
	s.log.Debug("toast pushed", "id", n.ID, "duration", n.Duration, "evicted", len(evicted))
	return evicted
}

// Dismiss removes the toast. It reports whether it was visible.
func (s *Scheduler) Dismiss(id string) bool {
	return s.remove(id, "dismissed")
}

// Drop removes a toast whose record left the store.
func (s *Scheduler) Drop(id string) bool {
	return s.remove(id, "dropped")
}

// Expire handles the end of a countdown. It is a no-op for unknown,
// paused or persistent entries.
func (s *Scheduler) Expire(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	e := s.entries[i]
	if e.paused || e.persistent() {
		return false
	}
	return s.remove(id, "expired")
}

// DismissAll removes every toast and returns how many were visible.
func (s *Scheduler) DismissAll() int {
	n := len(s.entries)
	for _, e := range s.entries {
		s.stop(e)
	}
	s.entries = nil
	return n
}

// Pause freezes the countdown of id, keeping the remaining time.
func (s *Scheduler) Pause(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	return s.pause(s.entries[i])
}

// Resume restarts the countdown of id from the remaining time.
func (s *Scheduler) Resume(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	return s.resume(s.entries[i])
}

// PauseAll freezes every countdown and returns how many changed.
func (s *Scheduler) PauseAll() int {
	changed := 0
	for _, e := range s.entries {
		if s.pause(e) {
			changed++
		}
	}
	return changed
}

// ResumeAll resumes every paused countdown and returns how many changed.
func (s *Scheduler) ResumeAll() int {
	changed := 0
	for _, e := range s.entries {
		if s.resume(e) {
			changed++
		}
	}
	return changed
}

// Visible returns the toasts top to bottom. With StackDown the newest toast
// is last; with StackUp it is first.
func (s *Scheduler) Visible() []Entry {
	now := s.sched.Now()
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, s.view(e, now))
	}
	if s.direction == StackUp {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// IDs returns the visible ids oldest first.
func (s *Scheduler) IDs() []string {
	ids := make([]string, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.n.ID
	}
	return ids
}

func (s *Scheduler) view(e *entry, now time.Time) Entry {
	remaining := e.remaining
	if !e.paused && !e.persistent() {
		remaining = e.deadline.Sub(now)
		if remaining < 0 {
			remaining = 0
		}
	}
	return Entry{
		Notification: e.n.Clone(),
		Remaining:    remaining,
		Paused:       e.paused,
		Persistent:   e.persistent(),
		ShownAt:      e.shownAt,
	}
}

func (s *Scheduler) start(e *entry) {
	if e.persistent() {
		return
	}
	e.deadline = s.sched.Now().Add(e.remaining)
	id := e.n.ID
	e.timer = s.sched.Schedule(e.remaining, func() { s.onExpire(id) })
}

func (s *Scheduler) stop(e *entry) {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (s *Scheduler) pause(e *entry) bool {
	if e.paused || e.persistent() {
		return false
	}
	s.stop(e)
	e.remaining = e.deadline.Sub(s.sched.Now())
	if e.remaining < 0 {
		e.remaining = 0
	}
	e.paused = true
	return true
}

func (s *Scheduler) resume(e *entry) bool {
	if !e.paused {
		return false
	}
	e.paused = false
	s.start(e)
	return true
}

func (s *Scheduler) remove(id, why string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.stop(s.entries[i])
	s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
	s.log.Debug("toast removed", "id", id, "reason", why)
	return true
}

func (s *Scheduler) index(id string) int {
	for i, e := range s.entries {
		if e.n.ID == id {
			return i
		}
	}
	return -1
}
