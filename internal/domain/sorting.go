package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SortByField specifies which field to sort notifications by.
type SortByField string

const (
	SortByTimestampField SortByField = "timestamp"
	SortByPriorityField  SortByField = "priority"
	SortByRiskField      SortByField = "risk"
	SortByTitleField     SortByField = "title"
)

// IsValid checks if the sort by field is valid.
func (s SortByField) IsValid() bool {
	switch s {
	case SortByTimestampField, SortByPriorityField, SortByRiskField, SortByTitleField:
		return true
	default:
		return false
	}
}

// SortOrder specifies the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// IsValid checks if the sort order is valid.
func (s SortOrder) IsValid() bool {
	return s == SortOrderAsc || s == SortOrderDesc
}

// SortOptions holds sorting options for notifications.
type SortOptions struct {
	Field SortByField
	Order SortOrder
}

// DefaultSortOptions returns the default sort options (timestamp descending).
func DefaultSortOptions() SortOptions {
	return SortOptions{Field: SortByTimestampField, Order: SortOrderDesc}
}

// SortNotifications sorts notifications based on the given options and
// returns a new slice. Equal keys fall back to insertion order (Seq) in the
// same direction, so the newest insertion comes first when descending.
func SortNotifications(notifs []Notification, opts SortOptions) []Notification {
	if len(notifs) == 0 {
		return notifs
	}
	if !opts.Field.IsValid() {
		opts.Field = SortByTimestampField
	}
	if !opts.Order.IsValid() {
		opts.Order = SortOrderDesc
	}

	sorted := make([]Notification, len(notifs))
	copy(sorted, notifs)

	sort.SliceStable(sorted, func(i, j int) bool {
		c := compareByField(sorted[i], sorted[j], opts.Field)
		if c == 0 {
			c = compareUint(sorted[i].Seq, sorted[j].Seq)
		}
		if opts.Order == SortOrderDesc {
			return c > 0
		}
		return c < 0
	})

	return sorted
}

// compareByField returns -1, 0 or 1 comparing a and b on field.
func compareByField(a, b Notification, field SortByField) int {
	switch field {
	case SortByPriorityField:
		return compareInt(a.Priority.Rank(), b.Priority.Rank())
	case SortByRiskField:
		ra, rb := a.RiskLevel(), b.RiskLevel()
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		}
		return 0
	case SortByTitleField:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	default:
		return a.Timestamp.Compare(b.Timestamp)
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ParseSortByField parses a string into a SortByField.
func ParseSortByField(field string) (SortByField, error) {
	f := SortByField(field)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid sort field: %s", field)
	}
	return f, nil
}

// ParseSortOrder parses a string into a SortOrder.
func ParseSortOrder(order string) (SortOrder, error) {
	o := SortOrder(order)
	if !o.IsValid() {
		return "", fmt.Errorf("invalid sort order: %s", order)
	}
	return o, nil
}
