// Package store holds the canonical, ordered collection of notifications.
//
// Every mutation replaces the backing slice (copy on write), so published
// snapshots stay valid after later mutations. No-op mutations publish
// nothing.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/clock"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/eventbus"
	"github.com/cristianoliveira/alertdeck/internal/logging"
	"github.com/google/uuid"
)

// Options configures a Store.
type Options struct {
	// Clock stamps new records. Defaults to the wall clock.
	Clock clock.Clock
	// DefaultDuration is the toast duration for inputs that set none.
	DefaultDuration time.Duration
	// NewID generates record ids. Defaults to random UUIDs.
	NewID func() string
	// Logger receives mutation traces.
	Logger logging.Logger
}

// Store is the notification store. It is safe for concurrent use.
// Subscribers are called outside the store lock but must not mutate the
// store from the callback.
type Store struct {
	mu      sync.Mutex
	clock   clock.Clock
	defDur  time.Duration
	newID   func() string
	log     logging.Logger
	items   []domain.Notification
	unread  int
	issued  map[string]struct{}
	seq     uint64
	version uint64
	bus     *eventbus.Bus[Snapshot]
}

// New creates an empty store.
func New(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = clock.NewReal()
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.NewString() }
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.DefaultDuration < 0 {
		opts.DefaultDuration = domain.DefaultToastDuration
	}
	s := &Store{
		clock:  opts.Clock,
		defDur: opts.DefaultDuration,
		newID:  opts.NewID,
		log:    opts.Logger.With("component", "store"),
		issued: make(map[string]struct{}),
		bus:    eventbus.New[Snapshot](),
	}
	s.bus.OnPanic(func(r any) { s.log.Error("subscriber panicked", "panic", r) })
	return s
}

// Subscribe registers fn for every future snapshot.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.bus.Subscribe(fn)
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(Change{})
}

// UnreadCount returns the number of unread records.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (domain.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.items[i].Clone(), true
	}
	return domain.Notification{}, false
}

// Add validates in, stores it at the front and returns the new id.
func (s *Store) Add(in domain.NotificationInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	n := in.Build(s.defDur)

	s.mu.Lock()
	id, err := s.uniqueIDLocked()
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	s.seq++
	n.ID = id
	n.Seq = s.seq
	n.Timestamp = s.clock.Now()
	n.Read = false
	n.Dismissed = false

	next := make([]domain.Notification, 0, len(s.items)+1)
	next = append(next, n)
	next = append(next, s.items...)
	s.items = next
	s.unread++
	s.publishLocked(ChangeAdded, id)
	s.mu.Unlock()

	s.bus.Drain()
	s.log.Debug("notification added", "id", id, "priority", string(n.Priority), "type", string(n.Type))
	return id, nil
}

// uniqueIDLocked draws ids until one was never issued by this store.
func (s *Store) uniqueIDLocked() (string, error) {
	for attempt := 0; attempt < 8; attempt++ {
		id := s.newID()
		if id == "" {
			continue
		}
		if _, dup := s.issued[id]; dup {
			continue
		}
		s.issued[id] = struct{}{}
		return id, nil
	}
	return "", fmt.Errorf("unable to generate a unique notification id")
}

// Remove deletes the record. It reports whether anything was removed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.removeIndexesLocked(map[int]bool{i: true})
	s.publishLocked(ChangeRemoved, id)
	s.mu.Unlock()

	s.bus.Drain()
	return true
}

// RemoveWhere deletes every record matching pred and returns their ids.
func (s *Store) RemoveWhere(pred func(n domain.Notification) bool) []string {
	s.mu.Lock()
	drop := make(map[int]bool)
	var ids []string
	for i := range s.items {
		if pred(s.items[i].Clone()) {
			drop[i] = true
			ids = append(ids, s.items[i].ID)
		}
	}
	if len(ids) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.removeIndexesLocked(drop)
	s.publishLocked(ChangeRemoved, ids...)
	s.mu.Unlock()

	s.bus.Drain()
	return ids
}

func (s *Store) removeIndexesLocked(drop map[int]bool) {
	next := make([]domain.Notification, 0, len(s.items)-len(drop))
	for i := range s.items {
		if drop[i] {
			if !s.items[i].Read {
				s.unread--
			}
			continue
		}
		next = append(next, s.items[i])
	}
	s.items = next
}

// MarkRead marks one record read. It reports whether the record changed.
func (s *Store) MarkRead(id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 || s.items[i].Read {
		s.mu.Unlock()
		return false
	}
	s.updateLocked(i, func(n *domain.Notification) { n.Read = true })
	s.publishLocked(ChangeRead, id)
	s.mu.Unlock()

	s.bus.Drain()
	return true
}

// Dismiss marks a record dismissed, which also marks it read. Dismissal is
// terminal. It reports whether the record changed.
func (s *Store) Dismiss(id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 || s.items[i].Dismissed {
		s.mu.Unlock()
		return false
	}
	s.updateLocked(i, func(n *domain.Notification) {
		n.Read = true
		n.Dismissed = true
	})
	s.publishLocked(ChangeDismissed, id)
	s.mu.Unlock()

	s.bus.Drain()
	return true
}

// MarkAllRead marks every record read in one update and returns how many
// changed.
func (s *Store) MarkAllRead() int {
	s.mu.Lock()
	if s.unread == 0 {
		s.mu.Unlock()
		return 0
	}
	changed := s.unread
	ids := make([]string, 0, changed)
	next := make([]domain.Notification, len(s.items))
	for i, n := range s.items {
		if !n.Read {
			n.Read = true
			ids = append(ids, n.ID)
		}
		next[i] = n
	}
	s.items = next
	s.unread = 0
	s.publishLocked(ChangeReadAll, ids...)
	s.mu.Unlock()

	s.bus.Drain()
	return changed
}

// ClearAll removes every record and returns how many were removed.
func (s *Store) ClearAll() int {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return 0
	}
	ids := make([]string, len(s.items))
	for i := range s.items {
		ids[i] = s.items[i].ID
	}
	s.items = nil
	s.unread = 0
	s.publishLocked(ChangeCleared, ids...)
	s.mu.Unlock()

	s.bus.Drain()
	return len(ids)
}

// Restore replaces the contents with items, typically loaded from a cache.
// Records are ordered newest first; duplicate ids keep the first occurrence.
func (s *Store) Restore(items []domain.Notification) {
	s.mu.Lock()
	seen := make(map[string]struct{}, len(items))
	next := make([]domain.Notification, 0, len(items))
	unread := 0
	for _, n := range items {
		if n.ID == "" {
			continue
		}
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		s.issued[n.ID] = struct{}{}
		if n.Seq > s.seq {
			s.seq = n.Seq
		}
		if !n.Read {
			unread++
		}
		next = append(next, n.Clone())
	}
	s.items = domain.SortNotifications(next, domain.DefaultSortOptions())
	s.unread = unread
	s.publishLocked(ChangeRestored)
	s.mu.Unlock()

	s.bus.Drain()
	s.log.Info("store restored", "count", len(next), "unread", unread)
}

// updateLocked applies fn to a copy of item i in a fresh backing slice and
// keeps the unread counter in step.
func (s *Store) updateLocked(i int, fn func(n *domain.Notification)) {
	next := make([]domain.Notification, len(s.items))
	copy(next, s.items)
	wasRead := next[i].Read
	fn(&next[i])
	if !wasRead && next[i].Read {
		s.unread--
	}
	s.items = next
}

func (s *Store) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked(change Change) Snapshot {
	return Snapshot{Version: s.version, Change: change, items: s.items, unread: s.unread}
}

// publishLocked bumps the version and queues the snapshot. Callers drain the
// bus after releasing the lock.
func (s *Store) publishLocked(kind ChangeKind, ids ...string) {
	s.version++
	s.bus.Enqueue(s.snapshotLocked(Change{Kind: kind, IDs: ids}))
}
