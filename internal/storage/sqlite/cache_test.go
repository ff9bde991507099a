package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	c, err := Open(context.Background(), filepath.Join(t.TempDir(), "notifications.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, c.Close())
	})
	return c
}

func sampleItems() []domain.Notification {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Notification{
		{
			ID:          "n-1",
			Seq:         1,
			Type:        domain.TypeInfo,
			Title:       "Build finished",
			Message:     "line1\nline2\tend",
			Timestamp:   base,
			Priority:    domain.PriorityNormal,
			Source:      "ci",
			Duration:    5 * time.Second,
			Dismissible: true,
			Read:        true,
		},
		{
			ID:          "n-2",
			Seq:         2,
			Type:        domain.TypeError,
			Title:       "Flood warning",
			Timestamp:   base.Add(time.Minute),
			Priority:    domain.PriorityCritical,
			Dismissible: false,
			Dismissed:   true,
			Actions: []domain.Action{
				{Label: "Evacuate", Intent: "open-map", Effect: domain.EffectFunc(func(context.Context) error { return nil })},
				{Label: "Ignore"},
			},
			Alert: &domain.AlertDetails{
				RiskLevel:     9.5,
				Location:      "Riverside",
				AffectedAreas: []string{"North", "East"},
				ExpiresAt:     base.Add(2 * time.Hour),
			},
		},
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	require.ErrorIs(t, err, ErrEmptyPath)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, sampleItems()))

	got, err := c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "n-1", got[0].ID)
	assert.Equal(t, "line1\nline2\tend", got[0].Message)
	assert.Equal(t, 5*time.Second, got[0].Duration)
	assert.True(t, got[0].Read)
	assert.Nil(t, got[0].Alert)
	assert.Empty(t, got[0].Actions)

	flood := got[1]
	assert.Equal(t, uint64(2), flood.Seq)
	assert.True(t, flood.Dismissed)
	assert.False(t, flood.Dismissible)
	assert.True(t, flood.Timestamp.Equal(sampleItems()[1].Timestamp))
	require.Len(t, flood.Actions, 2)
	assert.Equal(t, "Evacuate", flood.Actions[0].Label)
	assert.Equal(t, "open-map", flood.Actions[0].Intent)
	assert.Nil(t, flood.Actions[0].Effect)
	require.NotNil(t, flood.Alert)
	assert.Equal(t, 9.5, flood.Alert.RiskLevel)
	assert.Equal(t, []string{"North", "East"}, flood.Alert.AffectedAreas)
	assert.True(t, flood.Alert.ExpiresAt.Equal(sampleItems()[1].Alert.ExpiresAt))
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, sampleItems()))
	require.NoError(t, c.Save(ctx, sampleItems()[:1]))

	got, err := c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "n-1", got[0].ID)

	require.NoError(t, c.Save(ctx, nil))
	got, err = c.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReopenKeepsDataAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "notifications.db")
	ctx := context.Background()

	c, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, c.Save(ctx, sampleItems()))
	require.NoError(t, c.Close())

	c, err = Open(ctx, path)
	require.NoError(t, err)
	defer c.Close()

	var version int
	require.NoError(t, c.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, SchemaVersion(), version)

	got, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestClosedCacheErrors(t *testing.T) {
	c, err := Open(context.Background(), filepath.Join(t.TempDir(), "n.db"))
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err = c.Load(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, c.Save(context.Background(), nil), ErrClosed)
}
