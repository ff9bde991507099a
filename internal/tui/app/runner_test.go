package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/alertdeck/internal/clock"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/engine"
	"github.com/cristianoliveira/alertdeck/internal/storage"
	"github.com/cristianoliveira/alertdeck/internal/tui/state"
)

type fakeRunner struct {
	run func(m tea.Model) error
}

func (f *fakeRunner) Run(m tea.Model) error {
	return f.run(m)
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	next := 0
	e, err := engine.New(context.Background(), engine.Options{
		Scheduler: clock.NewFake(time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)),
		Cache:     storage.NewMemory(),
		NewID: func() string {
			next++
			return fmt.Sprintf("n-%d", next)
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestRunPassesWatchModel(t *testing.T) {
	e := newEngine(t)
	_, err := e.AddNotification(context.Background(), domain.NotificationInput{Title: "hello"})
	require.NoError(t, err)

	var got *state.Model
	client := NewClient(&fakeRunner{run: func(m tea.Model) error {
		got = m.(*state.Model)
		return nil
	}})

	require.NoError(t, client.Run(context.Background(), e))
	require.NotNil(t, got)
	assert.Len(t, got.Items(), 1)
}

func TestRunForwardsEngineChanges(t *testing.T) {
	e := newEngine(t)
	var model *state.Model
	client := NewClient(&fakeRunner{run: func(m tea.Model) error {
		model = m.(*state.Model)
		_, err := e.AddNotification(context.Background(), domain.NotificationInput{Title: "fresh"})
		require.NoError(t, err)

		batch, ok := model.Init()().(tea.BatchMsg)
		require.True(t, ok)
		model.Update(batch[0]())
		return nil
	}})

	require.NoError(t, client.Run(context.Background(), e))
	require.Len(t, model.Items(), 1)
	assert.Equal(t, "fresh", model.Items()[0].Title)
}

func TestLatestKeepsNewestState(t *testing.T) {
	l := newLatest()
	l.offer(engine.State{Version: 1})
	l.offer(engine.State{Version: 2})

	st := <-l.ch
	assert.Equal(t, uint64(2), st.Version)

	l.close()
	l.offer(engine.State{Version: 3})
	_, ok := <-l.ch
	assert.False(t, ok)
	l.close()
}

func TestErrorsFromRunnerPropagate(t *testing.T) {
	e := newEngine(t)
	client := NewClient(&fakeRunner{run: func(tea.Model) error {
		return fmt.Errorf("no tty")
	}})
	assert.EqualError(t, client.Run(context.Background(), e), "no tty")
}
