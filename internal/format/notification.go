package format

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/colors"
	"github.com/cristianoliveira/alertdeck/internal/dedup"
	"github.com/cristianoliveira/alertdeck/internal/domain"
)

// TimeLayout is the timestamp layout used by the text formatters.
const TimeLayout = "2006-01-02 15:04:05"

// SimpleFormatter formats notifications as id, time, priority and title.
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatNotifications formats notifications in simple format.
func (f *SimpleFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	for _, n := range notifications {
		_, err := fmt.Fprintf(writer, "%-8s  %s  %-8s  %s%s\n",
			n.ID, n.Timestamp.Local().Format(TimeLayout), n.Priority, stateMarker(n), ellipsize(n.Title, 50))
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatGroups formats groups in simple format.
func (f *SimpleFormatter) FormatGroups(groups []dedup.Group, writer io.Writer) error {
	return formatGroupsWith(f, groups, writer)
}

// TitlesFormatter prints titles only, one per line.
type TitlesFormatter struct{}

// NewTitlesFormatter creates a new TitlesFormatter.
func NewTitlesFormatter() *TitlesFormatter {
	return &TitlesFormatter{}
}

// FormatNotifications writes each title on its own line.
func (f *TitlesFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	for _, n := range notifications {
		if _, err := fmt.Fprintln(writer, n.Title); err != nil {
			return err
		}
	}
	return nil
}

// FormatGroups formats groups in titles format.
func (f *TitlesFormatter) FormatGroups(groups []dedup.Group, writer io.Writer) error {
	return formatGroupsWith(f, groups, writer)
}

// CompactFormatter prints a colored marker and a truncated title.
type CompactFormatter struct{}

// NewCompactFormatter creates a new CompactFormatter.
func NewCompactFormatter() *CompactFormatter {
	return &CompactFormatter{}
}

// FormatNotifications formats notifications in compact format.
func (f *CompactFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	for _, n := range notifications {
		marker := colors.Paint(colors.ForPriority(n.Priority.String()), priorityGlyph(n.Priority))
		if _, err := fmt.Fprintf(writer, "%s %s\n", marker, ellipsize(n.Title, 60)); err != nil {
			return err
		}
	}
	return nil
}

// FormatGroups formats groups in compact format, one line per group.
func (f *CompactFormatter) FormatGroups(groups []dedup.Group, writer io.Writer) error {
	for _, g := range groups {
		latest := g.Latest()
		marker := colors.Paint(colors.ForPriority(latest.Priority.String()), priorityGlyph(latest.Priority))
		if _, err := fmt.Fprintf(writer, "%s %s (x%d)\n", marker, ellipsize(latest.Title, 55), g.Count()); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter formats notifications as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatNotifications formats notifications as JSON.
func (f *JSONFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return writeJSON(writer, notifications)
}

// jsonGroup is the JSON shape of a dedup group.
type jsonGroup struct {
	Key    string                `json:"key"`
	Count  int                   `json:"count"`
	Unread int                   `json:"unread"`
	Latest time.Time             `json:"latest"`
	Items  []domain.Notification `json:"items"`
}

// FormatGroups formats groups as JSON.
func (f *JSONFormatter) FormatGroups(groups []dedup.Group, writer io.Writer) error {
	out := make([]jsonGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, jsonGroup{
			Key:    g.Key,
			Count:  g.Count(),
			Unread: g.Unread,
			Latest: g.Latest().Timestamp,
			Items:  g.Items,
		})
	}
	return writeJSON(writer, out)
}

func writeJSON(writer io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer)
	return err
}

// GroupCountFormatter formats only group counts.
type GroupCountFormatter struct {
	formatter Formatter
}

// NewGroupCountFormatter creates a new GroupCountFormatter.
func NewGroupCountFormatter(formatter Formatter) *GroupCountFormatter {
	return &GroupCountFormatter{formatter: formatter}
}

// FormatNotifications is not applicable for GroupCountFormatter.
func (f *GroupCountFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	return fmt.Errorf("formatNotifications not supported for GroupCountFormatter")
}

// FormatGroups formats only group counts.
func (f *GroupCountFormatter) FormatGroups(groups []dedup.Group, writer io.Writer) error {
	if _, ok := f.formatter.(*JSONFormatter); ok {
		counts := make(map[string]int, len(groups))
		for _, g := range groups {
			counts[g.Key] += g.Count()
		}
		return writeJSON(writer, counts)
	}
	for _, g := range groups {
		if _, err := fmt.Fprintf(writer, "Group: %s (%d)\n", g.Latest().Title, g.Count()); err != nil {
			return err
		}
	}
	return nil
}

// formatGroupsWith prints a header per group followed by its items.
func formatGroupsWith(f Formatter, groups []dedup.Group, writer io.Writer) error {
	for _, g := range groups {
		_, err := fmt.Fprintf(writer, "=== %s (%d, %d unread) ===\n", g.Latest().Title, g.Count(), g.Unread)
		if err != nil {
			return err
		}
		if err := f.FormatNotifications(g.Items, writer); err != nil {
			return err
		}
	}
	return nil
}

// stateMarker flags unread and dismissed records.
func stateMarker(n domain.Notification) string {
	switch {
	case n.Dismissed:
		return "- "
	case !n.Read:
		return "* "
	default:
		return "  "
	}
}

func priorityGlyph(p domain.Priority) string {
	switch p {
	case domain.PriorityCritical:
		return "!!"
	case domain.PriorityHigh:
		return "! "
	case domain.PriorityNormal:
		return "* "
	default:
		return ". "
	}
}

// ellipsize shortens s to width runes, ending with "...".
func ellipsize(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
