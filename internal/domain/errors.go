package domain

import "errors"

var (
	// ErrTitleRequired is returned when an input has no title.
	ErrTitleRequired = errors.New("notification title is required")

	// ErrTitleTooLong is returned when a title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("notification title too long")

	// ErrMessageTooLong is returned when a message exceeds MaxMessageLength.
	ErrMessageTooLong = errors.New("notification message too long")

	// ErrInvalidType is returned for an unknown notification type.
	ErrInvalidType = errors.New("invalid notification type")

	// ErrInvalidPriority is returned for an unknown priority.
	ErrInvalidPriority = errors.New("invalid notification priority")

	// ErrInvalidRiskLevel is returned when a risk level is outside 0-10.
	ErrInvalidRiskLevel = errors.New("invalid risk level")

	// ErrInvalidDuration is returned for a negative toast duration.
	ErrInvalidDuration = errors.New("invalid notification duration")

	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrActionNotFound is returned when an action label does not exist.
	ErrActionNotFound = errors.New("action not found")

	// ErrNotDismissible is returned when a user tries to close a
	// notification created with Dismissible set to false.
	ErrNotDismissible = errors.New("notification cannot be dismissed")
)
