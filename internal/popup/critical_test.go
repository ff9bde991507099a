package popup

import (
	"testing"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/clock"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueue(t *testing.T) (*CriticalQueue, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(noon)
	return NewCriticalQueue(QueueOptions{Scheduler: fake}), fake
}

func currentID(q *CriticalQueue) string {
	n, ok := q.Current()
	if !ok {
		return ""
	}
	return n.ID
}

func TestCriticalQueueSingleSlotFIFO(t *testing.T) {
	q, _ := newQueue(t)

	assert.Equal(t, Idle, q.State())
	assert.True(t, q.Enqueue(alert("a", 10)))
	assert.False(t, q.Enqueue(alert("b", 10)))
	assert.False(t, q.Enqueue(alert("c", 10)))

	assert.Equal(t, Showing, q.State())
	assert.Equal(t, "a", currentID(q))
	assert.Equal(t, 3, q.Len())
	backlog := q.Backlog()
	require.Len(t, backlog, 2)
	assert.Equal(t, "b", backlog[0].ID)

	closed, ok := q.Dismiss()
	require.True(t, ok)
	assert.Equal(t, "a", closed.ID)
	assert.Equal(t, "b", currentID(q))

	q.Dismiss()
	assert.Equal(t, "c", currentID(q))
	q.Dismiss()
	assert.Equal(t, Idle, q.State())

	_, ok = q.Dismiss()
	assert.False(t, ok)
}

func TestCriticalQueueIgnoresDuplicates(t *testing.T) {
	q, _ := newQueue(t)
	q.Enqueue(alert("a", 10))
	q.Enqueue(alert("b", 10))

	assert.False(t, q.Enqueue(alert("a", 10)))
	assert.False(t, q.Enqueue(alert("b", 10)))
	assert.Equal(t, 2, q.Len())
}

func TestCriticalQueueAutoTimeoutAdvances(t *testing.T) {
	q, fake := newQueue(t)
	q.Enqueue(alert("a", 10))
	q.Enqueue(alert("b", 10))

	fake.Advance(9 * time.Second)
	assert.Equal(t, "a", currentID(q))

	fake.Advance(time.Second)
	assert.Equal(t, "b", currentID(q), "timeout behaves as dismiss")

	fake.Advance(10 * time.Second)
	assert.Equal(t, Idle, q.State())
	assert.Zero(t, fake.Pending())
}

func TestCriticalQueueDismissCancelsTimer(t *testing.T) {
	q, fake := newQueue(t)
	q.Enqueue(alert("a", 10))
	require.Equal(t, 1, fake.Pending())

	q.Dismiss()
	assert.Zero(t, fake.Pending())
}

func TestCriticalQueueTimeoutHook(t *testing.T) {
	fake := clock.NewFake(noon)
	var fired []string
	var q *CriticalQueue
	q = NewCriticalQueue(QueueOptions{
		Scheduler: fake,
		Timeout:   time.Second,
		OnTimeout: func(id string) {
			fired = append(fired, id)
			q.Expire(id)
		},
	})
	q.Enqueue(alert("a", 10))

	fake.Advance(time.Second)
	assert.Equal(t, []string{"a"}, fired)
	assert.Equal(t, Idle, q.State())
}

func TestCriticalQueueExpireIgnoresStaleIDs(t *testing.T) {
	q, _ := newQueue(t)
	q.Enqueue(alert("a", 10))
	q.Enqueue(alert("b", 10))

	_, ok := q.Expire("b")
	assert.False(t, ok, "only the visible alert can time out")
	assert.Equal(t, "a", currentID(q))
}

func TestCriticalQueueTakeAction(t *testing.T) {
	q, fake := newQueue(t)
	n := alert("a", 10)
	n.Actions = []domain.Action{{Label: "Evacuate", Intent: "open-map"}}
	q.Enqueue(n)
	q.Enqueue(alert("b", 10))

	_, _, err := q.TakeAction("Ignore")
	require.ErrorIs(t, err, domain.ErrActionNotFound)
	assert.Equal(t, "a", currentID(q))

	closed, action, err := q.TakeAction("Evacuate")
	require.NoError(t, err)
	assert.Equal(t, "a", closed.ID)
	assert.Equal(t, "open-map", action.Intent)
	assert.Equal(t, "b", currentID(q))
	assert.Equal(t, 1, fake.Pending())

	q.Dismiss()
	_, _, err = q.TakeAction("Evacuate")
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}

func TestCriticalQueueDrop(t *testing.T) {
	q, fake := newQueue(t)
	q.Enqueue(alert("a", 10))
	q.Enqueue(alert("b", 10))
	q.Enqueue(alert("c", 10))

	assert.True(t, q.Drop("b"))
	assert.False(t, q.Drop("b"))
	assert.True(t, q.Drop("a"))
	assert.Equal(t, "c", currentID(q))
	assert.Empty(t, q.Backlog())
	assert.Equal(t, 1, fake.Pending())

	q.Reset()
	assert.Equal(t, Idle, q.State())
	assert.Zero(t, fake.Pending())
}
