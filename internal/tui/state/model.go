package state

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/engine"
	"github.com/cristianoliveira/alertdeck/internal/errors"
	"github.com/cristianoliveira/alertdeck/internal/query"
)

const (
	defaultViewportWidth  = 80
	defaultViewportHeight = 22
	statusClearDuration   = 5 * time.Second
	tickInterval          = time.Second
)

// Engine is the part of the notification engine the watch view drives.
type Engine interface {
	State() engine.State
	List(q query.Query) []domain.Notification
	MarkAsRead(id string)
	MarkAllAsRead() int
	Dismiss(id string) error
	ClearAll() int
	DismissCritical(id string) error
	TakeCriticalAction(ctx context.Context, id, label string) (domain.Notification, error)
	DismissAllToasts() int
	PauseToasts() int
	ResumeToasts() int
	HoverToast(id string) bool
	UnhoverToast(id string) bool
}

// Options configures a Model.
type Options struct {
	Engine Engine
	// Updates delivers engine states. A closed channel quits the program.
	Updates <-chan engine.State
	Context context.Context
	Now     func() time.Time
}

// Model is the bubbletea model of the watch view.
type Model struct {
	engine  Engine
	updates <-chan engine.State
	ctx     context.Context
	now     func() time.Time

	keys    KeyMap
	help    help.Model
	ui      *UIState
	status  *errors.TUIHandler
	state   engine.State
	items   []domain.Notification
	stopped bool
}

// NewModel builds a Model seeded with the engine's current state.
func NewModel(opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := &Model{
		engine:  opts.Engine,
		updates: opts.Updates,
		ctx:     opts.Context,
		now:     opts.Now,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		ui:      NewUIState(),
		status:  errors.NewTUIHandler(nil).WithClock(opts.Now),
	}
	m.applyState(opts.Engine.State())
	return m
}

// Init starts listening for engine updates.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForState(), tick())
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.ui.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.refreshViewport()
		return m, nil
	case StateMsg:
		m.applyState(msg.State)
		return m, m.waitForState()
	case updatesClosedMsg:
		m.stopped = true
		return m, tea.Quit
	case tickMsg:
		m.refreshViewport()
		return m, tick()
	case actionDoneMsg:
		if msg.err != nil {
			m.status.Error(errors.Describe(msg.err))
		} else {
			m.status.Success("Ran " + msg.label + " on " + msg.title)
		}
		return m, m.clearStatusLater()
	case clearStatusMsg:
		if latest, ok := m.status.GetLatest(); ok && !latest.Timestamp.After(msg.at) {
			m.status.Clear()
		}
		return m, nil
	}
	return m, nil
}

// Items returns the rows currently listed.
func (m *Model) Items() []domain.Notification {
	return m.items
}

// State returns the last engine state applied.
func (m *Model) State() engine.State {
	return m.state
}

// UI exposes the view state.
func (m *Model) UI() *UIState {
	return m.ui
}

// Selected returns the notification under the cursor.
func (m *Model) Selected() (domain.Notification, bool) {
	if len(m.items) == 0 {
		return domain.Notification{}, false
	}
	return m.items[m.ui.cursor], true
}

// StatusMessage returns the latest transient status line.
func (m *Model) StatusMessage() (errors.Message, bool) {
	return m.status.GetLatest()
}

func (m *Model) applyState(st engine.State) {
	m.state = st
	if len(st.Toasts) == 0 {
		m.ui.toastsPaused = false
	}
	if m.ui.hoveredToast != "" && !hasToast(st, m.ui.hoveredToast) {
		m.ui.hoveredToast = ""
	}
	m.reload()
}

// reload re-runs the list query and keeps the cursor on the same record.
func (m *Model) reload() {
	var selectedID string
	if n, ok := m.Selected(); ok {
		selectedID = n.ID
	}
	m.items = m.engine.List(query.Query{
		Filter: domain.Filter{HideDismissed: m.ui.hideDismissed},
		Search: m.ui.searchQuery,
	})
	if selectedID != "" {
		for i, n := range m.items {
			if n.ID == selectedID {
				m.ui.cursor = i
				break
			}
		}
	}
	m.ui.ClampCursor(len(m.items))
	m.refreshViewport()
}

func (m *Model) waitForState() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	ch := m.updates
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return updatesClosedMsg{}
		}
		return StateMsg{State: st}
	}
}

func (m *Model) clearStatusLater() tea.Cmd {
	at := m.now()
	return tea.Tick(statusClearDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{at: at}
	})
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func hasToast(st engine.State, id string) bool {
	for _, e := range st.Toasts {
		if e.ID() == id {
			return true
		}
	}
	return false
}
