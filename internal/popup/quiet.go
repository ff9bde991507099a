package popup

import (
	"time"

	"github.com/cristianoliveira/alertdeck/internal/settings"
)

// QuietHours is a parsed wall-clock window. Both ends are inclusive at
// minute resolution; a window whose start is after its end wraps midnight.
type QuietHours struct {
	start int
	end   int
}

// ParseQuietHours parses a settings window.
func ParseQuietHours(q settings.QuietHours) (QuietHours, error) {
	start, err := settings.ParseClock(q.Start)
	if err != nil {
		return QuietHours{}, err
	}
	end, err := settings.ParseClock(q.End)
	if err != nil {
		return QuietHours{}, err
	}
	return QuietHours{start: start, end: end}, nil
}

// Wraps reports whether the window crosses midnight.
func (q QuietHours) Wraps() bool {
	return q.start > q.end
}

// Contains reports whether t, read on its own location's wall clock, falls
// inside the window.
func (q QuietHours) Contains(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	if q.start <= q.end {
		return m >= q.start && m <= q.end
	}
	return m >= q.start || m <= q.end
}

// InQuietHours reports whether s has quiet hours configured and t falls
// inside them. Unparseable windows count as not quiet.
func InQuietHours(s settings.NotificationSettings, t time.Time) bool {
	if s.QuietHours == nil {
		return false
	}
	q, err := ParseQuietHours(*s.QuietHours)
	if err != nil {
		return false
	}
	return q.Contains(t)
}
