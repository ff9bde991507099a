package toast

import (
	"fmt"
	"testing"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/clock"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func note(id string, d time.Duration) domain.Notification {
	return domain.Notification{ID: id, Title: id, Priority: domain.PriorityNormal, Duration: d}
}

func newScheduler(t *testing.T, opts Options) (*Scheduler, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(t0)
	opts.Scheduler = fake
	return New(opts), fake
}

func visibleIDs(s *Scheduler) []string {
	var ids []string
	for _, e := range s.Visible() {
		ids = append(ids, e.ID())
	}
	return ids
}

func TestDefaults(t *testing.T) {
	s, _ := newScheduler(t, Options{})
	assert.Equal(t, DefaultMaxVisible, s.MaxVisible())
	assert.Equal(t, StackDown, s.Direction())
	assert.Equal(t, TopRight, s.Position())
}

func TestCapEvictsOldest(t *testing.T) {
	s, fake := newScheduler(t, Options{MaxVisible: 5})

	var evicted []string
	for i := 1; i <= 8; i++ {
		evicted = append(evicted, s.Push(note(fmt.Sprintf("t%d", i), 5*time.Second))...)
		assert.LessOrEqual(t, s.Len(), 5)
	}

	assert.Equal(t, []string{"t1", "t2", "t3"}, evicted)
	assert.Equal(t, []string{"t4", "t5", "t6", "t7", "t8"}, s.IDs())
	assert.Equal(t, 5, fake.Pending(), "evicted toasts keep no timer")
}

func TestStackDirection(t *testing.T) {
	down, _ := newScheduler(t, Options{Direction: StackDown})
	up, _ := newScheduler(t, Options{Direction: StackUp, Position: BottomLeft})
	for _, id := range []string{"a", "b", "c"} {
		down.Push(note(id, time.Second))
		up.Push(note(id, time.Second))
	}

	assert.Equal(t, []string{"a", "b", "c"}, visibleIDs(down))
	assert.Equal(t, []string{"c", "b", "a"}, visibleIDs(up))
	assert.Equal(t, BottomLeft, up.Position())
}

func TestAutoExpiry(t *testing.T) {
	s, fake := newScheduler(t, Options{})
	s.Push(note("short", 2*time.Second))
	s.Push(note("long", 5*time.Second))
	s.Push(note("sticky", 0))

	fake.Advance(2 * time.Second)
	assert.Equal(t, []string{"long", "sticky"}, s.IDs())

	fake.Advance(3 * time.Second)
	assert.Equal(t, []string{"sticky"}, s.IDs())

	fake.Advance(24 * time.Hour)
	assert.Equal(t, []string{"sticky"}, s.IDs(), "duration 0 never expires")
	assert.Zero(t, fake.Pending())

	entries := s.Visible()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Persistent)
	assert.True(t, s.Dismiss("sticky"))
}

func TestPauseResumeKeepsRemainingTime(t *testing.T) {
	s, fake := newScheduler(t, Options{})
	s.Push(note("a", 5*time.Second))

	fake.Advance(2 * time.Second)
	require.True(t, s.Pause("a"))
	assert.False(t, s.Pause("a"))
	assert.Zero(t, fake.Pending(), "paused toast holds no timer")

	fake.Advance(time.Minute)
	entries := s.Visible()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Paused)
	assert.Equal(t, 3*time.Second, entries[0].Remaining)

	require.True(t, s.Resume("a"))
	assert.False(t, s.Resume("a"))
	fake.Advance(2999 * time.Millisecond)
	assert.Equal(t, 1, s.Len())
	fake.Advance(time.Millisecond)
	assert.Zero(t, s.Len())
}

func TestPauseAllResumeAll(t *testing.T) {
	s, fake := newScheduler(t, Options{})
	s.Push(note("a", time.Second))
	s.Push(note("b", 2*time.Second))
	s.Push(note("sticky", 0))

	assert.Equal(t, 2, s.PauseAll())
	fake.Advance(time.Hour)
	assert.Equal(t, 3, s.Len())

	assert.Equal(t, 2, s.ResumeAll())
	fake.Advance(time.Second)
	assert.Equal(t, []string{"b", "sticky"}, s.IDs())
}

func TestDismissCancelsTimer(t *testing.T) {
	s, fake := newScheduler(t, Options{})
	s.Push(note("a", time.Second))
	s.Push(note("b", time.Second))

	assert.True(t, s.Dismiss("a"))
	assert.False(t, s.Dismiss("a"))
	assert.True(t, s.Drop("b"))
	assert.Zero(t, fake.Pending())
	assert.Zero(t, s.Len())
}

func TestDismissAll(t *testing.T) {
	s, fake := newScheduler(t, Options{})
	s.Push(note("a", time.Second))
	s.Push(note("b", 0))

	assert.Equal(t, 2, s.DismissAll())
	assert.Zero(t, fake.Pending())
	assert.Zero(t, s.DismissAll())
}

func TestPushIgnoresVisibleID(t *testing.T) {
	s, fake := newScheduler(t, Options{})
	s.Push(note("a", time.Second))
	assert.Nil(t, s.Push(note("a", time.Second)))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, fake.Pending())
}

func TestExpireHookAndStaleCallbacks(t *testing.T) {
	var s *Scheduler
	var fired []string
	s, fake := newScheduler(t, Options{OnExpire: func(id string) {
		fired = append(fired, id)
		s.Expire(id)
	}})
	s.Push(note("a", time.Second))

	assert.False(t, s.Expire("missing"))
	fake.Advance(time.Second)
	assert.Equal(t, []string{"a"}, fired)
	assert.Zero(t, s.Len())

	s.Push(note("b", time.Second))
	s.Pause("b")
	assert.False(t, s.Expire("b"), "a paused toast does not expire")
}

func TestRemainingCountsDown(t *testing.T) {
	s, fake := newScheduler(t, Options{})
	s.Push(note("a", 5*time.Second))
	fake.Advance(1500 * time.Millisecond)

	entries := s.Visible()
	require.Len(t, entries, 1)
	assert.Equal(t, 3500*time.Millisecond, entries[0].Remaining)
	assert.Equal(t, t0, entries[0].ShownAt)
}
