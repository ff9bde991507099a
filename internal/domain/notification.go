// Package domain provides the domain layer for alert notifications.
// It contains the record types, value objects and validation rules shared by
// the store, the presentation queues and the query view.
package domain

import (
	"context"
	"fmt"
	"time"
)

// Type is the semantic category of a notification. It drives the default
// icon and color, never the delivery channel.
type Type string

const (
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
)

// IsValid checks if the notification type is valid.
func (t Type) IsValid() bool {
	switch t {
	case TypeSuccess, TypeWarning, TypeError, TypeInfo:
		return true
	default:
		return false
	}
}

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}

// Priority drives delivery-channel eligibility.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// IsValid checks if the priority is valid.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// Rank orders priorities from low (0) to critical (3). Unknown values rank -1.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityNormal:
		return 1
	case PriorityHigh:
		return 2
	case PriorityCritical:
		return 3
	default:
		return -1
	}
}

// AtLeast reports whether p ranks at or above other.
func (p Priority) AtLeast(other Priority) bool {
	return p.Rank() >= other.Rank()
}

// Effect is the side effect behind an action. It is owned by the producer
// and never inspected by the engine.
type Effect interface {
	Run(ctx context.Context) error
}

// EffectFunc adapts a plain function to an Effect.
type EffectFunc func(ctx context.Context) error

// Run calls f(ctx).
func (f EffectFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Action is a named intent attached to a notification. Intent is a
// serializable name for the effect; Effect may be nil for records restored
// from the local cache.
type Action struct {
	Label  string `json:"label" toml:"label"`
	Intent string `json:"intent,omitempty" toml:"intent"`
	Effect Effect `json:"-" toml:"-"`
}

// AlertDetails carries the disaster-specific fields of a risk-driven alert.
type AlertDetails struct {
	RiskLevel     float64   `json:"risk_level"`
	Location      string    `json:"location,omitempty"`
	AffectedAreas []string  `json:"affected_areas,omitempty"`
	ExpiresAt     time.Time `json:"expires_at,omitzero"`
}

// Notification is a single record of the store. Records are values: the
// store hands out copies and mutates only its own.
type Notification struct {
	ID          string        `json:"id"`
	Seq         uint64        `json:"seq"`
	Type        Type          `json:"type"`
	Title       string        `json:"title"`
	Message     string        `json:"message,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
	Priority    Priority      `json:"priority"`
	Source      string        `json:"source,omitempty"`
	Actions     []Action      `json:"actions,omitempty"`
	Duration    time.Duration `json:"duration"`
	Dismissible bool          `json:"dismissible"`
	Read        bool          `json:"read"`
	Dismissed   bool          `json:"dismissed"`
	Alert       *AlertDetails `json:"alert,omitempty"`
}

// IsRead reports whether the notification has been read.
func (n *Notification) IsRead() bool {
	return n.Read
}

// IsAlert reports whether the notification is a disaster alert.
func (n *Notification) IsAlert() bool {
	return n.Alert != nil
}

// IsPersistent reports whether a toast for n never auto-expires.
func (n *Notification) IsPersistent() bool {
	return n.Duration <= 0
}

// Inert reports whether nothing is pending on the record: it was read or
// dismissed and may be purged once it ages out.
func (n *Notification) Inert() bool {
	return n.Read || n.Dismissed
}

// RiskLevel returns the alert risk level, or 0 for plain notifications.
func (n *Notification) RiskLevel() float64 {
	if n.Alert == nil {
		return 0
	}
	return n.Alert.RiskLevel
}

// ExpiredAt reports whether the alert carried an expiry that has passed at now.
func (n *Notification) ExpiredAt(now time.Time) bool {
	if n.Alert == nil || n.Alert.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(n.Alert.ExpiresAt)
}

// FindAction returns the action with the given label.
func (n *Notification) FindAction(label string) (Action, bool) {
	for _, a := range n.Actions {
		if a.Label == label {
			return a, true
		}
	}
	return Action{}, false
}

// Clone returns a deep copy of the notification.
func (n Notification) Clone() Notification {
	if n.Actions != nil {
		actions := make([]Action, len(n.Actions))
		copy(actions, n.Actions)
		n.Actions = actions
	}
	if n.Alert != nil {
		alert := *n.Alert
		if alert.AffectedAreas != nil {
			areas := make([]string, len(alert.AffectedAreas))
			copy(areas, alert.AffectedAreas)
			alert.AffectedAreas = areas
		}
		n.Alert = &alert
	}
	return n
}

// ParseType parses a string into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidType, s)
	}
	return t, nil
}

// ParsePriority parses a string into a Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidPriority, s)
	}
	return p, nil
}
