package domain

import (
	"fmt"
	"strings"
	"time"
)

// Read filter constants.
const (
	ReadFilterRead   = "read"
	ReadFilterUnread = "unread"
)

// Filter holds filter criteria for notifications. Zero values mean
// "no constraint".
type Filter struct {
	Types         []Type
	Priorities    []Priority
	ReadFilter    string // "read", "unread", or "" (no filter)
	Source        string
	AlertsOnly    bool
	HideDismissed bool
	OlderThan     time.Time // timestamp <= OlderThan
	NewerThan     time.Time // timestamp >= NewerThan
}

// FilterOptions holds filter parameters as they arrive from the CLI or the
// HTTP query string. Lists are comma separated.
type FilterOptions struct {
	Types         string
	Priorities    string
	ReadFilter    string
	Source        string
	AlertsOnly    bool
	HideDismissed bool
	OlderThan     time.Duration // age
	NewerThan     time.Duration // age
}

// ToFilter converts FilterOptions to a Filter, validating every value.
func (fo FilterOptions) ToFilter(now time.Time) (Filter, error) {
	f := Filter{
		Source:        strings.TrimSpace(fo.Source),
		AlertsOnly:    fo.AlertsOnly,
		HideDismissed: fo.HideDismissed,
	}

	for _, raw := range splitList(fo.Types) {
		t, err := ParseType(raw)
		if err != nil {
			return Filter{}, err
		}
		f.Types = append(f.Types, t)
	}

	for _, raw := range splitList(fo.Priorities) {
		p, err := ParsePriority(raw)
		if err != nil {
			return Filter{}, err
		}
		f.Priorities = append(f.Priorities, p)
	}

	switch fo.ReadFilter {
	case "", ReadFilterRead, ReadFilterUnread:
		f.ReadFilter = fo.ReadFilter
	default:
		return Filter{}, fmt.Errorf("invalid read filter: %s", fo.ReadFilter)
	}

	if fo.OlderThan > 0 {
		f.OlderThan = now.Add(-fo.OlderThan)
	}
	if fo.NewerThan > 0 {
		f.NewerThan = now.Add(-fo.NewerThan)
	}

	return f, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsEmpty returns true if the filter has no criteria set.
func (f Filter) IsEmpty() bool {
	return len(f.Types) == 0 &&
		len(f.Priorities) == 0 &&
		f.ReadFilter == "" &&
		f.Source == "" &&
		!f.AlertsOnly &&
		!f.HideDismissed &&
		f.OlderThan.IsZero() &&
		f.NewerThan.IsZero()
}

// MatchesFilter checks if the notification matches the given filter criteria.
func (n *Notification) MatchesFilter(filter Filter) bool {
	if len(filter.Types) > 0 && !containsType(filter.Types, n.Type) {
		return false
	}
	if len(filter.Priorities) > 0 && !containsPriority(filter.Priorities, n.Priority) {
		return false
	}
	if filter.Source != "" && !strings.EqualFold(n.Source, filter.Source) {
		return false
	}
	if filter.AlertsOnly && !n.IsAlert() {
		return false
	}
	if filter.HideDismissed && n.Dismissed {
		return false
	}
	if !filter.OlderThan.IsZero() && n.Timestamp.After(filter.OlderThan) {
		return false
	}
	if !filter.NewerThan.IsZero() && n.Timestamp.Before(filter.NewerThan) {
		return false
	}
	switch filter.ReadFilter {
	case ReadFilterRead:
		if !n.Read {
			return false
		}
	case ReadFilterUnread:
		if n.Read {
			return false
		}
	}
	return true
}

func containsType(types []Type, t Type) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func containsPriority(priorities []Priority, p Priority) bool {
	for _, candidate := range priorities {
		if candidate == p {
			return true
		}
	}
	return false
}

// FilterNotifications filters a slice of notifications based on the given filter.
// Returns a new slice containing only matching notifications.
func FilterNotifications(notifs []Notification, filter Filter) []Notification {
	if filter.IsEmpty() {
		return notifs
	}

	result := make([]Notification, 0, len(notifs))
	for _, n := range notifs {
		if n.MatchesFilter(filter) {
			result = append(result, n)
		}
	}
	return result
}
