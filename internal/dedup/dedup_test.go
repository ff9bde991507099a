package dedup

import (
	"testing"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

func rec(id, title string, typ domain.Type, source string, ago time.Duration, seq uint64) domain.Notification {
	return domain.Notification{ID: id, Seq: seq, Title: title, Type: typ, Source: source, Timestamp: base.Add(-ago)}
}

func TestKeyCriteria(t *testing.T) {
	a := rec("a", "Disk Full", domain.TypeError, "host-a", 0, 1)
	b := rec("b", "disk full ", domain.TypeWarning, "host-b", 0, 2)

	require.Equal(t, Key(a, CriteriaTitle), Key(b, CriteriaTitle))
	require.NotEqual(t, Key(a, CriteriaTitleType), Key(b, CriteriaTitleType))
	require.NotEqual(t, Key(a, CriteriaTitleSource), Key(b, CriteriaTitleSource))
	require.NotEqual(t, Key(a, CriteriaExact), Key(b, CriteriaExact))
}

func TestParseCriteria(t *testing.T) {
	require.Equal(t, CriteriaTitleType, ParseCriteria("TITLE_TYPE"))
	require.Equal(t, CriteriaExact, ParseCriteria("exact"))
	require.Equal(t, CriteriaTitle, ParseCriteria("bogus"))
}

func TestGroupItems(t *testing.T) {
	items := []domain.Notification{
		rec("1", "flood", domain.TypeError, "", 30*time.Minute, 1),
		rec("2", "quake", domain.TypeError, "", 20*time.Minute, 2),
		rec("3", "flood", domain.TypeError, "", 10*time.Minute, 3),
		rec("4", "Flood", domain.TypeError, "", 0, 4),
	}
	items[0].Read = true

	groups := GroupItems(items, Options{})
	require.Len(t, groups, 2)
	require.Equal(t, "4", groups[0].Latest().ID)
	require.Equal(t, 3, groups[0].Count())
	require.Equal(t, 2, groups[0].Unread)
	require.Equal(t, "2", groups[1].Latest().ID)
}

func TestGroupItemsWindow(t *testing.T) {
	items := []domain.Notification{
		rec("1", "alert", domain.TypeInfo, "", 30*time.Minute, 1),
		rec("2", "alert", domain.TypeInfo, "", 5*time.Minute, 2),
		rec("3", "alert", domain.TypeInfo, "", 0, 3),
	}

	groups := GroupItems(items, Options{Window: 15 * time.Minute})
	require.Len(t, groups, 2)
	require.Equal(t, 2, groups[0].Count())
	require.Equal(t, "1", groups[1].Latest().ID)

	require.Len(t, GroupItems(items, Options{Window: time.Hour}), 1)
}
