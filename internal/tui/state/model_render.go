package state

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cristianoliveira/alertdeck/internal/errors"
	"github.com/cristianoliveira/alertdeck/internal/popup"
	"github.com/cristianoliveira/alertdeck/internal/tui/render"
)

// View renders the watch view.
func (m *Model) View() string {
	top, bottom := m.chrome()
	sections := append(top, m.ui.viewport.View())
	sections = append(sections, bottom...)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// chrome renders everything around the list.
func (m *Model) chrome() (top, bottom []string) {
	now := m.now()
	top = append(top, render.TitleBar(render.HeaderState{
		Unread:        m.state.Unread,
		Total:         len(m.state.Items),
		Quiet:         popup.InQuietHours(m.state.Settings, now),
		ToastsPaused:  m.ui.toastsPaused,
		HideDismissed: m.ui.hideDismissed,
		SearchQuery:   m.ui.searchQuery,
	}))
	if m.state.Critical != nil {
		top = append(top, render.Critical(render.CriticalState{
			Notification: *m.state.Critical,
			Backlog:      len(m.state.Backlog),
			Width:        m.ui.width,
			Now:          now,
		}))
	}

	toasts := render.Toasts(render.ToastState{
		Entries:  m.state.Toasts,
		Position: m.state.ToastPosition,
		Width:    m.ui.width,
	})
	onTop := render.ToastsOnTop(m.state.ToastPosition)
	if toasts != "" && onTop {
		top = append(top, toasts)
	}
	top = append(top, render.Header(m.ui.width))

	if toasts != "" && !onTop {
		bottom = append(bottom, toasts)
	}
	bottom = append(bottom, m.footer())
	return top, bottom
}

func (m *Model) footer() string {
	var lines []string
	switch {
	case m.ui.searchMode:
		lines = append(lines, m.ui.search.View())
	case m.ui.confirmClear:
		lines = append(lines, render.Status("Clear all notifications? (y/n)", true))
	}
	if msg, ok := m.status.GetLatest(); ok {
		lines = append(lines, render.Status(msg.Text, msg.Type == errors.MessageTypeError))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

// refreshViewport sizes the list to the space left by the chrome and
// re-renders its rows.
func (m *Model) refreshViewport() {
	top, bottom := m.chrome()
	used := 0
	for _, s := range append(top, bottom...) {
		used += lipgloss.Height(s)
	}
	h := m.ui.height - used
	if h < 1 {
		h = 1
	}
	m.ui.viewport.Height = h

	if len(m.items) == 0 {
		m.ui.viewport.SetContent(render.Empty(m.ui.searchQuery != ""))
		m.ui.viewport.SetYOffset(0)
		return
	}
	now := m.now()
	rows := make([]string, len(m.items))
	for i, n := range m.items {
		rows[i] = render.Row(render.RowState{
			Notification: n,
			Width:        m.ui.width,
			Selected:     i == m.ui.cursor,
			Now:          now,
		})
	}
	m.ui.viewport.SetContent(strings.Join(rows, "\n"))
	m.ui.EnsureCursorVisible()
}
