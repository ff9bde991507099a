package state

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/alertdeck/internal/errors"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.ui.searchMode {
		return m.handleSearchKey(msg)
	}
	if m.ui.confirmClear {
		return m.handleConfirmKey(msg)
	}

	// The critical interrupt takes the keys it needs before the list.
	if m.state.Critical != nil {
		switch {
		case key.Matches(msg, m.keys.DismissCritical):
			return m, m.reportErr(m.engine.DismissCritical(m.state.Critical.ID))
		case key.Matches(msg, m.keys.CriticalAction):
			return m, m.takeCriticalAction(msg.String())
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.ui.MoveCursor(-1, len(m.items))
		m.refreshViewport()
	case key.Matches(msg, m.keys.Down):
		m.ui.MoveCursor(1, len(m.items))
		m.refreshViewport()
	case key.Matches(msg, m.keys.MarkRead):
		if n, ok := m.Selected(); ok {
			m.engine.MarkAsRead(n.ID)
		}
	case key.Matches(msg, m.keys.MarkAllRead):
		count := m.engine.MarkAllAsRead()
		m.status.Info(fmt.Sprintf("Marked %d as read", count))
		return m, m.clearStatusLater()
	case key.Matches(msg, m.keys.Dismiss):
		if n, ok := m.Selected(); ok {
			return m, m.reportErr(m.engine.Dismiss(n.ID))
		}
	case key.Matches(msg, m.keys.Clear):
		if len(m.items) > 0 {
			m.ui.confirmClear = true
		}
	case key.Matches(msg, m.keys.Search):
		m.ui.searchMode = true
		m.ui.search.SetValue(m.ui.searchQuery)
		return m, m.ui.search.Focus()
	case key.Matches(msg, m.keys.HideDismissed):
		m.ui.hideDismissed = !m.ui.hideDismissed
		m.reload()
	case key.Matches(msg, m.keys.DismissToasts):
		m.engine.DismissAllToasts()
	case key.Matches(msg, m.keys.PauseToasts):
		m.toggleToastPause()
	case key.Matches(msg, m.keys.HoverToast):
		m.toggleHover()
	case key.Matches(msg, m.keys.Help):
		m.ui.showHelp = !m.ui.showHelp
		m.help.ShowAll = m.ui.showHelp
		m.refreshViewport()
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.ui.searchMode = false
		m.ui.search.Blur()
		m.ui.searchQuery = ""
		m.ui.search.SetValue("")
		m.reload()
		return m, nil
	case tea.KeyEnter:
		m.ui.searchMode = false
		m.ui.search.Blur()
		m.ui.searchQuery = m.ui.search.Value()
		m.ui.cursor = 0
		m.reload()
		return m, nil
	}
	var cmd tea.Cmd
	m.ui.search, cmd = m.ui.search.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.ui.confirmClear = false
	if msg.String() != "y" {
		return m, nil
	}
	count := m.engine.ClearAll()
	m.status.Info(fmt.Sprintf("Cleared %d notifications", count))
	return m, m.clearStatusLater()
}

// reportErr puts err on the status line and schedules its removal.
func (m *Model) reportErr(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	m.status.Error(errors.Describe(err))
	return m.clearStatusLater()
}

func (m *Model) toggleToastPause() {
	if m.ui.toastsPaused {
		m.engine.ResumeToasts()
		m.ui.toastsPaused = false
		return
	}
	if m.engine.PauseToasts() > 0 {
		m.ui.toastsPaused = true
	}
}

func (m *Model) toggleHover() {
	if m.ui.hoveredToast != "" {
		m.engine.UnhoverToast(m.ui.hoveredToast)
		m.ui.hoveredToast = ""
		return
	}
	if len(m.state.Toasts) == 0 {
		return
	}
	id := m.state.Toasts[0].ID()
	if m.engine.HoverToast(id) {
		m.ui.hoveredToast = id
	}
}

// takeCriticalAction runs the n-th action of the critical interrupt off the
// update loop, since effects may block.
func (m *Model) takeCriticalAction(digit string) tea.Cmd {
	n := m.state.Critical
	idx, err := strconv.Atoi(digit)
	if err != nil || idx < 1 || idx > len(n.Actions) {
		return nil
	}
	id, label := n.ID, n.Actions[idx-1].Label
	title := n.Title
	eng, ctx := m.engine, m.ctx
	return func() tea.Msg {
		_, err := eng.TakeCriticalAction(ctx, id, label)
		return actionDoneMsg{label: label, title: title, err: err}
	}
}
