// Package query derives filtered, sorted projections of the store for the
// tray and notification center. It never mutates the store.
package query

import (
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/search"
	"github.com/cristianoliveira/alertdeck/internal/store"
)

// Query selects records. The zero Query returns every record, dismissed
// ones included, newest first.
type Query struct {
	Filter domain.Filter
	// Search is free text matched by the view's provider.
	Search string
	// Sort defaults to timestamp descending with insertion order breaking ties.
	Sort *domain.SortOptions
	// Limit caps the result when positive.
	Limit int
}

// Result is a projection with the counters a tray badge needs.
type Result struct {
	Items []domain.Notification
	// Total is the number of records in the snapshot.
	Total int
	// Matched is the number of records that passed the query before Limit.
	Matched int
	// Unread is the store-wide unread count.
	Unread  int
	Version uint64
}

// View evaluates queries against store snapshots.
type View struct {
	provider search.Provider
}

// NewView returns a view using provider for free-text search. A nil
// provider uses case-insensitive substring search over title, message and
// source.
func NewView(provider search.Provider) *View {
	if provider == nil {
		provider = search.NewSubstringProvider()
	}
	return &View{provider: provider}
}

// Provider returns the search provider in use.
func (v *View) Provider() search.Provider {
	return v.provider
}

// Apply evaluates q against snap.
func (v *View) Apply(snap store.Snapshot, q Query) Result {
	matched := make([]domain.Notification, 0, snap.Len())
	snap.Each(func(n *domain.Notification) bool {
		if !n.MatchesFilter(q.Filter) {
			return true
		}
		if q.Search != "" && !v.provider.Match(*n, q.Search) {
			return true
		}
		matched = append(matched, n.Clone())
		return true
	})

	sortOpts := domain.DefaultSortOptions()
	if q.Sort != nil {
		sortOpts = *q.Sort
	}
	items := domain.SortNotifications(matched, sortOpts)

	res := Result{
		Total:   snap.Len(),
		Matched: len(items),
		Unread:  snap.Unread(),
		Version: snap.Version,
	}
	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}
	res.Items = items
	return res
}

// List is Apply returning only the records.
func (v *View) List(snap store.Snapshot, q Query) []domain.Notification {
	return v.Apply(snap, q).Items
}
