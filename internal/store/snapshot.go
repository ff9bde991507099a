package store

import "github.com/cristianoliveira/alertdeck/internal/domain"

// ChangeKind names the mutation that produced a snapshot.
type ChangeKind string

const (
	ChangeAdded     ChangeKind = "added"
	ChangeRemoved   ChangeKind = "removed"
	ChangeRead      ChangeKind = "read"
	ChangeReadAll   ChangeKind = "read_all"
	ChangeDismissed ChangeKind = "dismissed"
	ChangeCleared   ChangeKind = "cleared"
	ChangeRestored  ChangeKind = "restored"
)

// Change describes one applied mutation.
type Change struct {
	Kind ChangeKind
	IDs  []string
}

// Snapshot is an immutable view of the store after a mutation. Records are
// ordered newest first. The backing slice is shared between snapshots and
// must not be modified; use Items for a private copy.
type Snapshot struct {
	Version uint64
	Change  Change
	items   []domain.Notification
	unread  int
}

// Len returns the number of records.
func (s Snapshot) Len() int {
	return len(s.items)
}

// Unread returns the number of unread records.
func (s Snapshot) Unread() int {
	return s.unread
}

// Items returns deep copies of the records, newest first.
func (s Snapshot) Items() []domain.Notification {
	out := make([]domain.Notification, len(s.items))
	for i := range s.items {
		out[i] = s.items[i].Clone()
	}
	return out
}

// Each calls fn for every record, newest first, until fn returns false.
// The record passed to fn must not be retained or modified.
func (s Snapshot) Each(fn func(n *domain.Notification) bool) {
	for i := range s.items {
		if !fn(&s.items[i]) {
			return
		}
	}
}

// Get returns a copy of the record with the given id.
func (s Snapshot) Get(id string) (domain.Notification, bool) {
	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i].Clone(), true
		}
	}
	return domain.Notification{}, false
}

// Has reports whether a record with the given id exists.
func (s Snapshot) Has(id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			return true
		}
	}
	return false
}
