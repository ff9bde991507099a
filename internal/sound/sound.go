// Package sound plays best-effort audio cues for notifications.
package sound

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/logging"
)

// Advisor performs an audio cue for a severity label.
type Advisor interface {
	Cue(ctx context.Context, severity string) error
}

// AdvisorFunc adapts a function to Advisor.
type AdvisorFunc func(ctx context.Context, severity string) error

// Cue calls f.
func (f AdvisorFunc) Cue(ctx context.Context, severity string) error {
	return f(ctx, severity)
}

// Nop is an Advisor that plays nothing.
type Nop struct{}

// Cue does nothing.
func (Nop) Cue(context.Context, string) error { return nil }

// Severity returns the cue label for n: its priority name.
func Severity(n domain.Notification) string {
	return string(n.Priority)
}

// Wants reports whether n deserves an audible cue.
func Wants(n domain.Notification) bool {
	return n.Priority.AtLeast(domain.PriorityHigh)
}

// Safe wraps an Advisor so that errors and panics are logged and swallowed.
type Safe struct {
	next Advisor
	log  logging.Logger
}

// NewSafe wraps next. A nil next plays nothing.
func NewSafe(next Advisor, log logging.Logger) *Safe {
	if next == nil {
		next = Nop{}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Safe{next: next, log: log.With("component", "sound")}
}

// Cue forwards to the wrapped advisor and always returns nil.
func (s *Safe) Cue(ctx context.Context, severity string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("sound cue panicked", "severity", severity, "panic", fmt.Sprint(r))
		}
	}()
	if cueErr := s.next.Cue(ctx, severity); cueErr != nil {
		s.log.Warn("sound cue failed", "severity", severity, "error", cueErr)
	}
	return nil
}
