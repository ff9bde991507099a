// Package app wires the watch view to a running engine.
package app

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/alertdeck/internal/engine"
	"github.com/cristianoliveira/alertdeck/internal/tui/state"
)

// ProgramRunner defines the interface for running a bubbletea program.
type ProgramRunner interface {
	Run(model tea.Model) error
}

// DefaultProgramRunner runs programs on the alternate screen.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a new DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts a bubbletea program with the given model.
func (r *DefaultProgramRunner) Run(model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Engine is what the watch view needs from the engine, plus change
// subscriptions.
type Engine interface {
	state.Engine
	Subscribe(fn func(engine.State)) (unsubscribe func())
}

// Client runs the watch view.
type Client struct {
	runner ProgramRunner
}

// NewClient creates a Client. A nil runner uses DefaultProgramRunner.
func NewClient(runner ProgramRunner) *Client {
	if runner == nil {
		runner = NewDefaultProgramRunner()
	}
	return &Client{runner: runner}
}

// Run shows the watch view until the user quits or ctx is done.
func (c *Client) Run(ctx context.Context, eng Engine) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates := newLatest()
	unsubscribe := eng.Subscribe(updates.offer)
	defer unsubscribe()
	go func() {
		<-ctx.Done()
		updates.close()
	}()

	model := state.NewModel(state.Options{
		Engine:  eng,
		Updates: updates.ch,
		Context: ctx,
	})
	return c.runner.Run(model)
}

// latest is a one-slot channel where a newer state replaces an unread one,
// so a slow renderer never blocks the engine.
type latest struct {
	mu     sync.Mutex
	ch     chan engine.State
	closed bool
}

func newLatest() *latest {
	return &latest{ch: make(chan engine.State, 1)}
}

func (l *latest) offer(st engine.State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	select {
	case <-l.ch:
	default:
	}
	l.ch <- st
}

func (l *latest) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.ch)
	}
}
