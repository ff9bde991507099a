package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Input limits.
const (
	MaxTitleLength   = 200
	MaxMessageLength = 1000
	MaxRiskLevel     = 10.0
)

// DefaultToastDuration is the auto-dismiss delay applied when an input does
// not set one.
const DefaultToastDuration = 5 * time.Second

// NotificationInput is the producer-supplied data for a new notification.
// Nil pointer fields take their defaults at ingestion.
type NotificationInput struct {
	Type        Type
	Title       string
	Message     string
	Priority    Priority
	Source      string
	Actions     []Action
	Duration    *time.Duration
	Dismissible *bool
	Alert       *AlertDetails
}

// AlertInput is the producer-supplied data for a disaster alert.
// Type and Priority default from the risk level when left empty.
type AlertInput struct {
	NotificationInput
	RiskLevel     float64
	Location      string
	AffectedAreas []string
	ExpiresAt     time.Time
}

// Validate checks the input and returns the first violation.
func (in NotificationInput) Validate() error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return ErrTitleRequired
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w (max %d characters)", ErrTitleTooLong, MaxTitleLength)
	}
	if len(in.Message) > MaxMessageLength {
		return fmt.Errorf("%w (max %d characters)", ErrMessageTooLong, MaxMessageLength)
	}
	if in.Type != "" && !in.Type.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidType, in.Type)
	}
	if in.Priority != "" && !in.Priority.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidPriority, in.Priority)
	}
	if in.Duration != nil && *in.Duration < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDuration, *in.Duration)
	}
	if in.Alert != nil {
		if err := ValidateRiskLevel(in.Alert.RiskLevel); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRiskLevel checks that r lies on the 0-10 scale.
func ValidateRiskLevel(r float64) error {
	if math.IsNaN(r) || r < 0 || r > MaxRiskLevel {
		return fmt.Errorf("%w: %v (must be between 0 and %v)", ErrInvalidRiskLevel, r, MaxRiskLevel)
	}
	return nil
}

// ToNotificationInput folds the alert fields into a NotificationInput,
// deriving type and priority from the risk level where unset.
func (in AlertInput) ToNotificationInput() NotificationInput {
	out := in.NotificationInput
	if out.Type == "" {
		out.Type = TypeForRisk(in.RiskLevel)
	}
	if out.Priority == "" {
		out.Priority = PriorityForRisk(in.RiskLevel)
	}
	var areas []string
	if len(in.AffectedAreas) > 0 {
		areas = make([]string, len(in.AffectedAreas))
		copy(areas, in.AffectedAreas)
	}
	out.Alert = &AlertDetails{
		RiskLevel:     in.RiskLevel,
		Location:      in.Location,
		AffectedAreas: areas,
		ExpiresAt:     in.ExpiresAt,
	}
	return out
}

// Build turns a validated input into a record without identity. The store
// assigns ID, Seq and Timestamp.
func (in NotificationInput) Build(defaultDuration time.Duration) Notification {
	n := Notification{
		Type:        in.Type,
		Title:       strings.TrimSpace(in.Title),
		Message:     in.Message,
		Priority:    in.Priority,
		Source:      in.Source,
		Dismissible: true,
	}
	if n.Type == "" {
		n.Type = TypeInfo
	}
	if n.Priority == "" {
		n.Priority = PriorityNormal
	}
	if in.Actions != nil {
		n.Actions = make([]Action, len(in.Actions))
		copy(n.Actions, in.Actions)
	}
	switch {
	case in.Duration != nil:
		n.Duration = *in.Duration
	case n.Priority == PriorityCritical:
		n.Duration = 0
	default:
		n.Duration = defaultDuration
	}
	if in.Dismissible != nil {
		n.Dismissible = *in.Dismissible
	}
	if in.Alert != nil {
		alert := *in.Alert
		n.Alert = &alert
	}
	return n.Clone()
}

// PriorityForRisk maps a 0-10 risk level to a priority.
func PriorityForRisk(r float64) Priority {
	switch {
	case r >= 9:
		return PriorityCritical
	case r >= 7:
		return PriorityHigh
	case r >= 4:
		return PriorityNormal
	default:
		return PriorityLow
	}
}

// TypeForRisk maps a 0-10 risk level to a notification type.
func TypeForRisk(r float64) Type {
	switch {
	case r >= 7:
		return TypeError
	case r >= 4:
		return TypeWarning
	default:
		return TypeInfo
	}
}

// DurationOf returns a pointer to d, for NotificationInput.Duration.
func DurationOf(d time.Duration) *time.Duration {
	return &d
}

// BoolOf returns a pointer to b, for NotificationInput.Dismissible.
func BoolOf(b bool) *bool {
	return &b
}
