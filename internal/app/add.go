// Package app holds the command use-cases. Each use-case takes the narrow
// engine surface it needs, so commands can be tested without a terminal.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/feed"
	"github.com/cristianoliveira/alertdeck/internal/ports"
)

// AddInput represents add and alert command inputs after flag parsing.
type AddInput struct {
	Title       string
	Message     string
	Type        string
	Priority    string
	Source      string
	Duration    time.Duration
	Persistent  bool
	Dismissible *bool
	// Actions are "label" or "label=intent".
	Actions []string

	RiskLevel     *float64
	Location      string
	AffectedAreas []string
	ExpiresIn     time.Duration
	Now           func() time.Time
}

// AddUseCase coordinates add notification behavior.
type AddUseCase struct {
	client ports.NotificationWriter
}

// NewAddUseCase creates a new add use-case.
func NewAddUseCase(client ports.NotificationWriter) *AddUseCase {
	if client == nil {
		panic("NewAddUseCase: client dependency cannot be nil")
	}
	return &AddUseCase{client: client}
}

// Execute admits the input and returns the new record id. Inputs with a risk
// level go through the alert path.
func (u *AddUseCase) Execute(ctx context.Context, in AddInput) (string, error) {
	ev, err := in.Record().Event()
	if err != nil {
		return "", err
	}
	return feed.Ingest(ctx, u.client, ev)
}

// Record converts the input to the wire record shared with the feed and the
// HTTP API.
func (in AddInput) Record() feed.Record {
	r := feed.Record{
		Type:          in.Type,
		Title:         in.Title,
		Message:       in.Message,
		Priority:      in.Priority,
		Source:        in.Source,
		Dismissible:   in.Dismissible,
		RiskLevel:     in.RiskLevel,
		Location:      in.Location,
		AffectedAreas: in.AffectedAreas,
	}
	switch {
	case in.Persistent:
		zero := int64(0)
		r.DurationMs = &zero
	case in.Duration > 0:
		ms := in.Duration.Milliseconds()
		r.DurationMs = &ms
	}
	for _, a := range in.Actions {
		label, intent, _ := strings.Cut(a, "=")
		r.Actions = append(r.Actions, feed.ActionRecord{
			Label:  strings.TrimSpace(label),
			Intent: strings.TrimSpace(intent),
		})
	}
	if in.ExpiresIn > 0 {
		now := time.Now
		if in.Now != nil {
			now = in.Now
		}
		r.ExpiresAt = now().Add(in.ExpiresIn).UTC().Format(time.RFC3339)
	}
	return r
}

// ParseAreas splits a comma separated list of affected areas.
func ParseAreas(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// FormatAdded renders the confirmation line of an admitted record.
func FormatAdded(id string, alert bool) string {
	if alert {
		return fmt.Sprintf("Alert %s added", id)
	}
	return fmt.Sprintf("Notification %s added", id)
}
