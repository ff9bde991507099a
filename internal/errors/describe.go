package errors

import (
	stderrors "errors"
	"strings"

	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/engine"
	"github.com/cristianoliveira/alertdeck/internal/settings"
)

var prefixes = []struct {
	err    error
	prefix string
}{
	{domain.ErrNotificationNotFound, "Not found"},
	{domain.ErrActionNotFound, "No such action"},
	{domain.ErrInvalidRiskLevel, "Invalid risk level"},
	{domain.ErrNotDismissible, "Cannot dismiss"},
	{settings.ErrInvalidSettings, "Invalid settings"},
	{engine.ErrEffectFailed, "Action failed"},
	{engine.ErrClosed, "Engine stopped"},
}

var hints = []struct {
	err  error
	hint string
}{
	{domain.ErrNotificationNotFound, "Run 'alertdeck list' to see notification ids"},
	{domain.ErrActionNotFound, "Run 'alertdeck list --format json' to see the actions of a record"},
	{domain.ErrInvalidRiskLevel, "Risk levels range from 0 to 10"},
	{domain.ErrNotDismissible, "Take one of its actions or wait for it to time out"},
	{settings.ErrInvalidSettings, "Run 'alertdeck settings show' for the current values"},
	{engine.ErrClosed, "Restart the command; the engine was shut down"},
}

// Hint returns what the user can do about err, or "" when nothing helps.
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.err) {
			return h.hint
		}
	}
	return ""
}

// IsNotFound reports whether err is a missing notification or action.
func IsNotFound(err error) bool {
	return stderrors.Is(err, domain.ErrNotificationNotFound) || stderrors.Is(err, domain.ErrActionNotFound)
}

// Describe returns a one-line message for err, prefixed by its kind when
// the kind is known.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, p := range prefixes {
		if stderrors.Is(err, p.err) {
			detail := strings.Trim(strings.Replace(msg, p.err.Error(), "", 1), ": ")
			if detail == "" {
				return p.prefix
			}
			return p.prefix + ": " + detail
		}
	}
	return msg
}
