package app

import (
	"fmt"
	"io"

	"github.com/cristianoliveira/alertdeck/internal/format"
	"github.com/cristianoliveira/alertdeck/internal/ports"
	"github.com/cristianoliveira/alertdeck/internal/query"
)

// StatusUseCase coordinates status behavior.
type StatusUseCase struct {
	client ports.NotificationReader
}

// NewStatusUseCase creates a status use-case.
func NewStatusUseCase(client ports.NotificationReader) *StatusUseCase {
	if client == nil {
		panic("NewStatusUseCase: client dependency cannot be nil")
	}
	return &StatusUseCase{client: client}
}

// DetermineStatusFormat resolves effective format preserving CLI precedence.
func DetermineStatusFormat(formatFlag, envFormat string, flagChanged bool) string {
	result := formatFlag
	if !flagChanged && envFormat != "" {
		result = envFormat
	}
	if result == "" {
		result = "summary"
	}
	return result
}

// ValidateStatusFormat validates status output format.
func ValidateStatusFormat(formatValue string) error {
	switch formatValue {
	case "summary", "priorities", "sources", "json":
		return nil
	}
	return fmt.Errorf("status: unknown format: %s", formatValue)
}

// Execute runs status behavior for a validated format.
func (u *StatusUseCase) Execute(formatValue string, w io.Writer) error {
	counts := format.CountNotifications(u.client.Query(query.Query{}).Items)
	switch formatValue {
	case "summary":
		return format.FormatSummary(w, counts)
	case "priorities":
		return format.FormatPriorities(w, counts)
	case "sources":
		return format.FormatSources(w, counts)
	case "json":
		return format.FormatJSON(w, counts)
	default:
		return fmt.Errorf("status: unknown format: %s", formatValue)
	}
}
