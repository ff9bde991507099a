package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/alertdeck/internal/colors"
	"github.com/cristianoliveira/alertdeck/internal/dedup"
	"github.com/cristianoliveira/alertdeck/internal/domain"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string

	// ColorPriority paints the priority column.
	ColorPriority bool
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders:   true,
		HeaderColor:   colors.Blue,
		ColorPriority: true,
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Alignment is the text alignment (left, right, center).
	Alignment string

	// Extractor extracts the value from a notification.
	Extractor func(domain.Notification) string
}

// TableFormatter formats notifications as a table with headers.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a table with the default columns.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		config: DefaultTableConfig(),
		columns: []TableColumn{
			{Name: "ID", Width: 8, Extractor: func(n domain.Notification) string { return n.ID }},
			{Name: "TIME", Width: 19, Extractor: func(n domain.Notification) string {
				return n.Timestamp.Local().Format(TimeLayout)
			}},
			{Name: "PRIORITY", Width: 8, Extractor: func(n domain.Notification) string { return n.Priority.String() }},
			{Name: "TYPE", Width: 7, Extractor: func(n domain.Notification) string { return n.Type.String() }},
			{Name: "STATE", Width: 9, Extractor: stateLabel},
			{Name: "TITLE", Width: 40, Extractor: func(n domain.Notification) string { return n.Title }},
		},
	}
}

// NewAlertTableFormatter adds risk and location columns to the default table.
func NewAlertTableFormatter() *TableFormatter {
	return NewTableFormatter().WithColumns(
		TableColumn{Name: "RISK", Width: 4, Alignment: "right", Extractor: func(n domain.Notification) string {
			if !n.IsAlert() {
				return "-"
			}
			return fmt.Sprintf("%.1f", n.RiskLevel())
		}},
		TableColumn{Name: "LOCATION", Width: 16, Extractor: func(n domain.Notification) string {
			if n.Alert == nil {
				return ""
			}
			return n.Alert.Location
		}},
	)
}

// WithConfig replaces the table configuration.
func (f *TableFormatter) WithConfig(config *TableConfig) *TableFormatter {
	f.config = config
	return f
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatNotifications formats notifications as a table.
func (f *TableFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	if len(notifications) == 0 {
		return nil
	}
	if f.config.ShowHeaders {
		if err := f.writeLine(writer, f.headerCells(), f.config.HeaderColor); err != nil {
			return err
		}
		if err := f.writeLine(writer, f.separatorCells(), f.config.HeaderColor); err != nil {
			return err
		}
	}
	for _, n := range notifications {
		if err := f.writeRow(n, writer); err != nil {
			return err
		}
	}
	return nil
}

// FormatGroups formats groups as a table per group.
func (f *TableFormatter) FormatGroups(groups []dedup.Group, writer io.Writer) error {
	return formatGroupsWith(f, groups, writer)
}

func (f *TableFormatter) headerCells() []string {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = formatString(col.Name, col.Width, "left")
	}
	return cells
}

func (f *TableFormatter) separatorCells() []string {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = strings.Repeat("-", col.Width)
	}
	return cells
}

func (f *TableFormatter) writeLine(writer io.Writer, cells []string, color string) error {
	line := strings.TrimRight(strings.Join(cells, "  "), " ")
	_, err := fmt.Fprintln(writer, colors.Paint(color, line))
	return err
}

func (f *TableFormatter) writeRow(n domain.Notification, writer io.Writer) error {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cell := formatString(col.Extractor(n), col.Width, col.Alignment)
		if col.Name == "PRIORITY" && f.config.ColorPriority {
			cell = colors.Paint(colors.ForPriority(n.Priority.String()), cell)
		}
		cells[i] = cell
	}
	return f.writeLine(writer, cells, "")
}

func stateLabel(n domain.Notification) string {
	switch {
	case n.Dismissed:
		return "dismissed"
	case n.Read:
		return "read"
	default:
		return "unread"
	}
}

// formatString pads or truncates s to width with the given alignment.
func formatString(s string, width int, alignment string) string {
	r := []rune(s)
	if len(r) > width {
		return ellipsize(s, width)
	}
	pad := width - len(r)
	switch alignment {
	case "right":
		return strings.Repeat(" ", pad) + s
	case "center":
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
