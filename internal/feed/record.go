// Package feed decodes producer events from JSON lines and replays them
// into the engine.
package feed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/domain"
)

// Kinds of event.
const (
	KindNotification = "notification"
	KindAlert        = "alert"
)

// ErrUnknownKind is returned for a record whose kind is neither
// notification nor alert.
var ErrUnknownKind = errors.New("unknown event kind")

// ActionRecord is the wire form of an action. Effects cannot travel on the
// wire; only the label and intent do.
type ActionRecord struct {
	Label  string `json:"label"`
	Intent string `json:"intent,omitempty"`
}

// Record is the wire form of one producer event. It is shared by the JSONL
// feed and the HTTP API.
type Record struct {
	Kind        string         `json:"kind,omitempty"`
	DelayMs     int64          `json:"delay_ms,omitempty"`
	Type        string         `json:"type,omitempty"`
	Title       string         `json:"title"`
	Message     string         `json:"message,omitempty"`
	Priority    string         `json:"priority,omitempty"`
	Source      string         `json:"source,omitempty"`
	DurationMs  *int64         `json:"duration_ms,omitempty"`
	Dismissible *bool          `json:"dismissible,omitempty"`
	Actions     []ActionRecord `json:"actions,omitempty"`

	RiskLevel     *float64 `json:"risk_level,omitempty"`
	Location      string   `json:"location,omitempty"`
	AffectedAreas []string `json:"affected_areas,omitempty"`
	ExpiresAt     string   `json:"expires_at,omitempty"`
}

// Event is a decoded record ready for ingestion.
type Event struct {
	Kind         string
	Delay        time.Duration
	Notification domain.NotificationInput
	Alert        domain.AlertInput
}

// IsAlert reports whether the event goes through AddAlert.
func (e Event) IsAlert() bool {
	return e.Kind == KindAlert
}

// Title returns the event title for logs.
func (e Event) Title() string {
	if e.IsAlert() {
		return e.Alert.Title
	}
	return e.Notification.Title
}

// Event converts r. An empty kind is an alert when a risk level is set.
func (r Record) Event() (Event, error) {
	kind := strings.ToLower(strings.TrimSpace(r.Kind))
	if kind == "" {
		kind = KindNotification
		if r.RiskLevel != nil {
			kind = KindAlert
		}
	}
	if r.DelayMs < 0 {
		return Event{}, fmt.Errorf("delay_ms must not be negative: %d", r.DelayMs)
	}

	in, err := r.notificationInput()
	if err != nil {
		return Event{}, err
	}
	ev := Event{Kind: kind, Delay: time.Duration(r.DelayMs) * time.Millisecond}

	switch kind {
	case KindNotification:
		if r.RiskLevel != nil {
			in.Alert = &domain.AlertDetails{
				RiskLevel:     *r.RiskLevel,
				Location:      r.Location,
				AffectedAreas: r.AffectedAreas,
			}
		}
		ev.Notification = in
	case KindAlert:
		if r.RiskLevel == nil {
			return Event{}, fmt.Errorf("alert requires risk_level: %w", domain.ErrInvalidRiskLevel)
		}
		ev.Alert = domain.AlertInput{
			NotificationInput: in,
			RiskLevel:         *r.RiskLevel,
			Location:          r.Location,
			AffectedAreas:     r.AffectedAreas,
		}
		if r.ExpiresAt != "" {
			exp, err := time.Parse(time.RFC3339, r.ExpiresAt)
			if err != nil {
				return Event{}, fmt.Errorf("invalid expires_at %q: expected RFC3339", r.ExpiresAt)
			}
			ev.Alert.ExpiresAt = exp
		}
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}
	return ev, nil
}

func (r Record) notificationInput() (domain.NotificationInput, error) {
	in := domain.NotificationInput{
		Title:       r.Title,
		Message:     r.Message,
		Source:      r.Source,
		Dismissible: r.Dismissible,
	}
	if r.Type != "" {
		t, err := domain.ParseType(strings.ToLower(r.Type))
		if err != nil {
			return in, err
		}
		in.Type = t
	}
	if r.Priority != "" {
		p, err := domain.ParsePriority(strings.ToLower(r.Priority))
		if err != nil {
			return in, err
		}
		in.Priority = p
	}
	if r.DurationMs != nil {
		in.Duration = domain.DurationOf(time.Duration(*r.DurationMs) * time.Millisecond)
	}
	for _, a := range r.Actions {
		if strings.TrimSpace(a.Label) == "" {
			return in, fmt.Errorf("action label cannot be empty")
		}
		in.Actions = append(in.Actions, domain.Action{Label: a.Label, Intent: a.Intent})
	}
	return in, nil
}
