// Package dedup groups repeated notifications so the tray can collapse them.
package dedup

import (
	"sort"
	"strings"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/config"
	"github.com/cristianoliveira/alertdeck/internal/domain"
)

// Criteria defines how duplicates are detected.
type Criteria string

const (
	CriteriaTitle       Criteria = "title"
	CriteriaTitleType   Criteria = "title_type"
	CriteriaTitleSource Criteria = "title_source"
	CriteriaExact       Criteria = "exact"
)

// Options configure grouping.
type Options struct {
	Criteria Criteria
	// Window splits a key into separate groups when consecutive records are
	// further apart than Window. Zero groups regardless of time.
	Window time.Duration
}

// Group is a set of records sharing a key, newest first.
type Group struct {
	Key    string
	Items  []domain.Notification
	Unread int
}

// Latest returns the newest record of the group.
func (g Group) Latest() domain.Notification {
	return g.Items[0]
}

// Count returns the group size.
func (g Group) Count() int {
	return len(g.Items)
}

// ParseCriteria converts user input into a Criteria, defaulting to title.
func ParseCriteria(value string) Criteria {
	switch Criteria(strings.ToLower(strings.TrimSpace(value))) {
	case CriteriaTitleType:
		return CriteriaTitleType
	case CriteriaTitleSource:
		return CriteriaTitleSource
	case CriteriaExact:
		return CriteriaExact
	default:
		return CriteriaTitle
	}
}

// String returns the string value for Criteria.
func (c Criteria) String() string {
	return string(c)
}

// FromConfig reads dedup_criteria and dedup_window_minutes.
func FromConfig() Options {
	return Options{
		Criteria: ParseCriteria(config.Get("dedup_criteria", string(CriteriaTitle))),
		Window:   time.Duration(config.GetInt("dedup_window_minutes", 0)) * time.Minute,
	}
}

// Key returns the grouping key of n under criteria.
func Key(n domain.Notification, criteria Criteria) string {
	title := strings.ToLower(strings.TrimSpace(n.Title))
	switch criteria {
	case CriteriaTitleType:
		return joinParts(title, string(n.Type))
	case CriteriaTitleSource:
		return joinParts(title, n.Source)
	case CriteriaExact:
		return joinParts(title, string(n.Type), string(n.Priority), n.Source, n.Message)
	default:
		return title
	}
}

func joinParts(parts ...string) string {
	return strings.Join(parts, "\x00")
}

// GroupItems collapses items into groups. Groups are ordered by their newest
// record, most recent first; records inside a group keep input order.
func GroupItems(items []domain.Notification, opts Options) []Group {
	criteria := opts.Criteria
	if criteria == "" {
		criteria = CriteriaTitle
	}

	type bucket struct {
		group  *Group
		oldest time.Time
	}
	var groups []*Group
	open := make(map[string]*bucket)

	sorted := domain.SortNotifications(items, domain.DefaultSortOptions())
	for _, n := range sorted {
		key := Key(n, criteria)
		b, ok := open[key]
		if ok && opts.Window > 0 && b.oldest.Sub(n.Timestamp) > opts.Window {
			ok = false
		}
		if !ok {
			g := &Group{Key: key}
			groups = append(groups, g)
			b = &bucket{group: g}
			open[key] = b
		}
		b.group.Items = append(b.group.Items, n)
		b.oldest = n.Timestamp
		if !n.Read {
			b.group.Unread++
		}
	}

	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = *g
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Latest().Timestamp.After(out[j].Latest().Timestamp)
	})
	return out
}
