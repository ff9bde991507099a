// Package format provides output formatting functionality for CLI commands.
// It includes formatters for different output styles and notification display.
package format

import (
	"io"

	"github.com/cristianoliveira/alertdeck/internal/dedup"
	"github.com/cristianoliveira/alertdeck/internal/domain"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// FormatNotifications formats a slice of notifications and writes to the writer.
	FormatNotifications(notifications []domain.Notification, writer io.Writer) error

	// FormatGroups formats deduplicated groups and writes to the writer.
	FormatGroups(groups []dedup.Group, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple displays id, time, priority and title.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTitles displays only titles, one per line.
	FormatterTypeTitles FormatterType = "titles"

	// FormatterTypeTable displays notifications in a table with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeCompact displays a marker and the title on one short line.
	FormatterTypeCompact FormatterType = "compact"

	// FormatterTypeJSON displays notifications in JSON format.
	FormatterTypeJSON FormatterType = "json"
)

// Types lists the supported formatter types.
func Types() []FormatterType {
	return []FormatterType{
		FormatterTypeSimple,
		FormatterTypeTitles,
		FormatterTypeTable,
		FormatterTypeCompact,
		FormatterTypeJSON,
	}
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeSimple:
		return NewSimpleFormatter()
	case FormatterTypeTitles:
		return NewTitlesFormatter()
	case FormatterTypeTable:
		return NewTableFormatter()
	case FormatterTypeCompact:
		return NewCompactFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewSimpleFormatter()
	}
}

// GetFormatter returns the formatter for format, falling back to simple for
// unknown names. groupCount wraps it so groups print as counts only.
func GetFormatter(format string, groupCount bool) Formatter {
	formatterType := FormatterTypeSimple
	for _, ft := range Types() {
		if string(ft) == format {
			formatterType = ft
			break
		}
	}
	if groupCount {
		return NewGroupCountFormatter(NewFormatter(formatterType))
	}
	return NewFormatter(formatterType)
}
