package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortNotifications_defaultIsTimestampDescending(t *testing.T) {
	sorted := SortNotifications(filterFixtures(), DefaultSortOptions())
	assert.Equal(t, []string{"4", "3", "2", "1"}, ids(sorted))
}

func TestSortNotifications_tiesFollowInsertionOrder(t *testing.T) {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	notifs := []Notification{
		{ID: "a", Seq: 1, Timestamp: ts},
		{ID: "c", Seq: 3, Timestamp: ts},
		{ID: "b", Seq: 2, Timestamp: ts},
	}

	desc := SortNotifications(notifs, SortOptions{Field: SortByTimestampField, Order: SortOrderDesc})
	assert.Equal(t, []string{"c", "b", "a"}, ids(desc))

	asc := SortNotifications(notifs, SortOptions{Field: SortByTimestampField, Order: SortOrderAsc})
	assert.Equal(t, []string{"a", "b", "c"}, ids(asc))

	// Original slice is untouched.
	assert.Equal(t, []string{"a", "c", "b"}, ids(notifs))
}

func TestSortNotifications_byPriorityAndRisk(t *testing.T) {
	byPriority := SortNotifications(filterFixtures(), SortOptions{Field: SortByPriorityField, Order: SortOrderDesc})
	assert.Equal(t, []string{"3", "2", "4", "1"}, ids(byPriority))

	byRisk := SortNotifications(filterFixtures(), SortOptions{Field: SortByRiskField, Order: SortOrderDesc})
	assert.Equal(t, []string{"3", "2", "4", "1"}, ids(byRisk))
}

func TestSortNotifications_invalidOptionsFallBack(t *testing.T) {
	sorted := SortNotifications(filterFixtures(), SortOptions{Field: "bogus", Order: "sideways"})
	assert.Equal(t, []string{"4", "3", "2", "1"}, ids(sorted))
}

func TestParseSortOptions(t *testing.T) {
	f, err := ParseSortByField("priority")
	assert.NoError(t, err)
	assert.Equal(t, SortByPriorityField, f)

	_, err = ParseSortByField("session")
	assert.Error(t, err)

	o, err := ParseSortOrder("asc")
	assert.NoError(t, err)
	assert.Equal(t, SortOrderAsc, o)

	_, err = ParseSortOrder("up")
	assert.Error(t, err)
}
