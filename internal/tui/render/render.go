// Package render draws the watch UI pieces with lipgloss. It holds no state.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/cristianoliveira/alertdeck/internal/colors"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/toast"
)

const (
	priorityWidth        = 8
	stateWidth           = 2
	sourceWidth          = 12
	ageWidth             = 5
	spacesBetweenColumns = 8
	defaultTitleWidth    = 50
	minTitleWidth        = 10
	toastWidth           = 44
	criticalWidth        = 60
)

// HeaderState defines the inputs needed to render the title bar.
type HeaderState struct {
	Unread        int
	Total         int
	Quiet         bool
	ToastsPaused  bool
	HideDismissed bool
	SearchQuery   string
}

// RowState defines the inputs needed to render a notification row.
type RowState struct {
	Notification domain.Notification
	Width        int
	Selected     bool
	Now          time.Time
}

// CriticalState defines the inputs needed to render the critical interrupt.
type CriticalState struct {
	Notification domain.Notification
	Backlog      int
	Width        int
	Now          time.Time
}

// ToastState defines the inputs needed to render the toast stack.
type ToastState struct {
	Entries  []toast.Entry
	Position toast.Position
	Width    int
}

// TitleBar renders the application title and counters.
func TitleBar(state HeaderState) string {
	title := lipgloss.NewStyle().Bold(true).Render("alertdeck")
	parts := []string{title, fmt.Sprintf("%d unread / %d", state.Unread, state.Total)}
	if state.Quiet {
		parts = append(parts, badge("quiet hours", "241"))
	}
	if state.ToastsPaused {
		parts = append(parts, badge("toasts paused", ansiColorNumber(colors.Yellow)))
	}
	if state.HideDismissed {
		parts = append(parts, badge("hiding dismissed", "241"))
	}
	if state.SearchQuery != "" {
		parts = append(parts, badge("search: "+state.SearchQuery, ansiColorNumber(colors.Cyan)))
	}
	return strings.Join(parts, "  ")
}

// Header renders the list header.
func Header(width int) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))

	header := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %*s",
		stateWidth, "",
		priorityWidth, "PRIORITY",
		titleWidth(width), "TITLE",
		sourceWidth, "SOURCE",
		ageWidth, "AGE",
	)
	return headerStyle.Render(header)
}

// Row renders a single notification row.
func Row(state RowState) string {
	n := state.Notification
	rowStyle := lipgloss.NewStyle()
	switch {
	case state.Selected:
		rowStyle = rowStyle.Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	case n.Dismissed:
		rowStyle = rowStyle.Foreground(lipgloss.Color("241"))
	case !n.Read:
		rowStyle = rowStyle.Bold(true)
	}

	title := n.Title
	if n.IsAlert() {
		title = fmt.Sprintf("[%.1f] %s", n.RiskLevel(), title)
	}

	row := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %*s",
		stateWidth, stateIcon(n),
		priorityWidth, n.Priority.String(),
		titleWidth(state.Width), truncate(title, titleWidth(state.Width)),
		sourceWidth, truncate(n.Source, sourceWidth),
		ageWidth, Age(n.Timestamp, state.Now),
	)
	return rowStyle.Render(row)
}

// Critical renders the critical interrupt panel.
func Critical(state CriticalState) string {
	n := state.Notification
	width := criticalWidth
	if state.Width > 0 && state.Width-4 < width {
		width = state.Width - 4
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("!! " + n.Title))
	if n.Message != "" {
		b.WriteString("\n" + n.Message)
	}
	if n.Alert != nil {
		line := fmt.Sprintf("risk %.1f", n.Alert.RiskLevel)
		if n.Alert.Location != "" {
			line += " at " + n.Alert.Location
		}
		if len(n.Alert.AffectedAreas) > 0 {
			line += " (" + strings.Join(n.Alert.AffectedAreas, ", ") + ")"
		}
		if !n.Alert.ExpiresAt.IsZero() {
			line += " until " + n.Alert.ExpiresAt.Local().Format("15:04")
		}
		b.WriteString("\n" + line)
	}
	if len(n.Actions) > 0 {
		labels := make([]string, len(n.Actions))
		for i, a := range n.Actions {
			labels[i] = fmt.Sprintf("[%d] %s", i+1, a.Label)
		}
		b.WriteString("\n\n" + strings.Join(labels, "  "))
	}
	footer := "esc: dismiss"
	if state.Backlog > 0 {
		footer += fmt.Sprintf("  |  %d more waiting", state.Backlog)
	}
	b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(footer))

	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(ansiColorNumber(colors.Magenta))).
		Padding(0, 1).
		Width(width).
		Render(b.String())
}

// Toasts renders the toast stack aligned to its position.
func Toasts(state ToastState) string {
	if len(state.Entries) == 0 {
		return ""
	}
	boxes := make([]string, 0, len(state.Entries))
	for _, e := range state.Entries {
		boxes = append(boxes, toastBox(e))
	}
	stack := lipgloss.JoinVertical(lipgloss.Left, boxes...)
	if state.Width <= 0 {
		return stack
	}
	return lipgloss.PlaceHorizontal(state.Width, horizontal(state.Position), stack)
}

func toastBox(e toast.Entry) string {
	n := e.Notification
	color := ansiColorNumber(colors.ForType(n.Type.String()))
	if color == "" {
		color = "241"
	}
	meta := "pinned"
	switch {
	case e.Paused:
		meta = "paused"
	case !e.Persistent:
		meta = fmt.Sprintf("%ds", int(e.Remaining.Round(time.Second).Seconds()))
	}
	body := truncate(n.Title, toastWidth-12) + "  " + lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(meta)
	if n.Message != "" {
		body += "\n" + truncate(n.Message, toastWidth-4)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Width(toastWidth).
		Render(body)
}

func horizontal(p toast.Position) lipgloss.Position {
	switch p {
	case toast.TopLeft, toast.BottomLeft:
		return lipgloss.Left
	case toast.TopCenter, toast.BottomCenter:
		return lipgloss.Center
	default:
		return lipgloss.Right
	}
}

// ToastsOnTop reports whether the stack renders above the list.
func ToastsOnTop(p toast.Position) bool {
	return strings.HasPrefix(string(p), "top")
}

// Status renders a transient status message.
func Status(text string, isError bool) string {
	if text == "" {
		return ""
	}
	color := colors.Green
	if isError {
		color = colors.Red
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(color))).Render(text)
}

// Empty renders the placeholder for an empty list.
func Empty(searching bool) string {
	msg := "No notifications"
	if searching {
		msg = "No notifications match the search"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(msg)
}

func badge(text, color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("[" + text + "]")
}

func stateIcon(n domain.Notification) string {
	switch {
	case n.Dismissed:
		return "○"
	case !n.Read:
		return "●"
	default:
		return " "
	}
}

func titleWidth(width int) int {
	w := width - priorityWidth - stateWidth - sourceWidth - ageWidth - spacesBetweenColumns
	if width == 0 || w < minTitleWidth {
		return defaultTitleWidth
	}
	return w
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-3]) + "..."
}

// Age renders the time since t in a compact unit.
func Age(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	if now.IsZero() {
		now = time.Now()
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return fmt.Sprintf("%dd", int(d.Hours()/24))
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
