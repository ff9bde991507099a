package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/clock"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(t0)
	n := 0
	s := New(Options{
		Clock:           fake,
		DefaultDuration: 5 * time.Second,
		NewID: func() string {
			n++
			return fmt.Sprintf("n-%d", n)
		},
	})
	return s, fake
}

func add(t *testing.T, s *Store, title string) string {
	t.Helper()
	id, err := s.Add(domain.NotificationInput{Title: title})
	require.NoError(t, err)
	return id
}

func countUnread(snap Snapshot) int {
	c := 0
	snap.Each(func(n *domain.Notification) bool {
		if !n.Read {
			c++
		}
		return true
	})
	return c
}

func TestAddAssignsIdentityAndPrepends(t *testing.T) {
	s, fake := newTestStore(t)

	first := add(t, s, "first")
	fake.Advance(time.Second)
	second := add(t, s, "  second  ")

	items := s.Snapshot().Items()
	require.Len(t, items, 2)
	assert.Equal(t, second, items[0].ID)
	assert.Equal(t, first, items[1].ID)
	assert.Equal(t, "second", items[0].Title)
	assert.Equal(t, t0.Add(time.Second), items[0].Timestamp)
	assert.Equal(t, uint64(2), items[0].Seq)
	assert.Equal(t, domain.TypeInfo, items[0].Type)
	assert.Equal(t, domain.PriorityNormal, items[0].Priority)
	assert.Equal(t, 5*time.Second, items[0].Duration)
	assert.True(t, items[0].Dismissible)
	assert.False(t, items[0].Read)
	assert.Equal(t, 2, s.UnreadCount())
}

func TestAddRejectsInvalidInput(t *testing.T) {
	s, _ := newTestStore(t)
	var published int
	s.Subscribe(func(Snapshot) { published++ })

	_, err := s.Add(domain.NotificationInput{Title: "   "})
	require.ErrorIs(t, err, domain.ErrTitleRequired)
	_, err = s.Add(domain.NotificationInput{Title: "x", Priority: "urgent"})
	require.ErrorIs(t, err, domain.ErrInvalidPriority)

	assert.Zero(t, s.Len())
	assert.Zero(t, published)
}

func TestIDsAreNeverReused(t *testing.T) {
	fake := clock.NewFake(t0)
	ids := []string{"a", "a", "b", "a", "b", "c"}
	s := New(Options{Clock: fake, NewID: func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}})

	a := add(t, s, "one")
	require.True(t, s.Remove(a))
	b := add(t, s, "two")
	c := add(t, s, "three")

	assert.Equal(t, "a", a)
	assert.Equal(t, "b", b)
	assert.Equal(t, "c", c)
}

func TestDefaultIDsAreUnique(t *testing.T) {
	s := New(Options{})
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id := add(t, s, "same tick")
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	id := add(t, s, "a")
	var snaps []Snapshot
	s.Subscribe(func(snap Snapshot) { snaps = append(snaps, snap) })

	assert.True(t, s.MarkRead(id))
	assert.False(t, s.MarkRead(id))
	assert.False(t, s.MarkRead("missing"))

	require.Len(t, snaps, 1)
	assert.Equal(t, ChangeRead, snaps[0].Change.Kind)
	assert.Equal(t, []string{id}, snaps[0].Change.IDs)
	assert.Zero(t, s.UnreadCount())
}

func TestDismissMarksReadAndIsTerminal(t *testing.T) {
	s, _ := newTestStore(t)
	id := add(t, s, "a")

	assert.True(t, s.Dismiss(id))
	assert.False(t, s.Dismiss(id))

	n, ok := s.Get(id)
	require.True(t, ok)
	assert.True(t, n.Read)
	assert.True(t, n.Dismissed)
	assert.Zero(t, s.UnreadCount())
}

func TestRemoveIsNoOpWhenAbsent(t *testing.T) {
	s, _ := newTestStore(t)
	id := add(t, s, "a")
	var published int
	s.Subscribe(func(Snapshot) { published++ })

	assert.True(t, s.Remove(id))
	assert.False(t, s.Remove(id))
	assert.Equal(t, 1, published)
	assert.Zero(t, s.UnreadCount())
}

func TestMarkAllReadAndClearAll(t *testing.T) {
	s, _ := newTestStore(t)
	a := add(t, s, "a")
	add(t, s, "b")
	add(t, s, "c")
	s.MarkRead(a)

	var snaps []Snapshot
	s.Subscribe(func(snap Snapshot) { snaps = append(snaps, snap) })

	assert.Equal(t, 2, s.MarkAllRead())
	assert.Zero(t, s.MarkAllRead())
	assert.Equal(t, 3, s.ClearAll())
	assert.Zero(t, s.ClearAll())

	require.Len(t, snaps, 2)
	assert.Equal(t, ChangeReadAll, snaps[0].Change.Kind)
	assert.Len(t, snaps[0].Change.IDs, 2)
	assert.Equal(t, ChangeCleared, snaps[1].Change.Kind)
	assert.Zero(t, s.UnreadCount())
	assert.Zero(t, s.Len())
}

func TestRemoveWhere(t *testing.T) {
	s, _ := newTestStore(t)
	keep := add(t, s, "keep")
	drop := add(t, s, "drop")
	s.MarkRead(keep)

	removed := s.RemoveWhere(func(n domain.Notification) bool { return n.Title == "drop" })
	assert.Equal(t, []string{drop}, removed)
	assert.Nil(t, s.RemoveWhere(func(domain.Notification) bool { return false }))
	assert.Equal(t, 1, s.Len())
	assert.Zero(t, s.UnreadCount())
}

func TestSnapshotsAreImmutable(t *testing.T) {
	s, _ := newTestStore(t)
	id := add(t, s, "a")
	before := s.Snapshot()

	s.MarkRead(id)
	add(t, s, "b")

	n, ok := before.Get(id)
	require.True(t, ok)
	assert.False(t, n.Read)
	assert.Equal(t, 1, before.Len())
	assert.Equal(t, 1, before.Unread())

	items := before.Items()
	items[0].Title = "mutated"
	again, _ := before.Get(id)
	assert.Equal(t, "a", again.Title)
}

func TestRestore(t *testing.T) {
	s, _ := newTestStore(t)
	older := domain.Notification{ID: "x", Seq: 4, Title: "older", Timestamp: t0.Add(-time.Hour), Read: true}
	newer := domain.Notification{ID: "y", Seq: 7, Title: "newer", Timestamp: t0}
	s.Restore([]domain.Notification{older, newer, older})

	items := s.Snapshot().Items()
	require.Len(t, items, 2)
	assert.Equal(t, "y", items[0].ID)
	assert.Equal(t, 1, s.UnreadCount())

	id := add(t, s, "after restore")
	n, _ := s.Get(id)
	assert.Equal(t, uint64(8), n.Seq)
}

// Walks a mixed mutation sequence and checks the store invariants after
// every published snapshot.
func TestInvariantsHoldAcrossMutations(t *testing.T) {
	s, fake := newTestStore(t)
	readOnce := make(map[string]bool)
	s.Subscribe(func(snap Snapshot) {
		seen := make(map[string]int)
		snap.Each(func(n *domain.Notification) bool {
			seen[n.ID]++
			if readOnce[n.ID] {
				assert.True(t, n.Read, "read reverted for %s", n.ID)
			}
			if n.Read {
				readOnce[n.ID] = true
			}
			return true
		})
		for id, c := range seen {
			assert.Equal(t, 1, c, "duplicate id %s", id)
		}
		assert.Equal(t, countUnread(snap), snap.Unread())
	})

	var ids []string
	for i := 0; i < 20; i++ {
		fake.Advance(time.Millisecond)
		ids = append(ids, add(t, s, fmt.Sprintf("n%d", i)))
		switch i % 5 {
		case 1:
			s.MarkRead(ids[i-1])
		case 2:
			s.Dismiss(ids[i])
		case 3:
			s.Remove(ids[i-3])
		case 4:
			s.MarkRead(ids[i-1])
			s.MarkRead(ids[i-1])
		}
	}
	s.MarkAllRead()
	s.RemoveWhere(func(n domain.Notification) bool { return n.Dismissed })
	assert.Equal(t, countUnread(s.Snapshot()), s.UnreadCount())
}

func TestSubscribersSeeMutationOrder(t *testing.T) {
	s, _ := newTestStore(t)
	var versions []uint64
	unsubscribe := s.Subscribe(func(snap Snapshot) { versions = append(versions, snap.Version) })

	id := add(t, s, "a")
	s.MarkRead(id)
	s.Remove(id)
	unsubscribe()
	add(t, s, "b")

	assert.Equal(t, []uint64{1, 2, 3}, versions)
}
