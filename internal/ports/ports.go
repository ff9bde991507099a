// Package ports defines application boundary interfaces used by the
// command use-cases. The engine satisfies all of them.
package ports

import (
	"context"

	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/engine"
	"github.com/cristianoliveira/alertdeck/internal/query"
	"github.com/cristianoliveira/alertdeck/internal/settings"
)

// NotificationWriter admits new records.
type NotificationWriter interface {
	AddNotification(ctx context.Context, in domain.NotificationInput) (string, error)
	AddAlert(ctx context.Context, in domain.AlertInput) (string, error)
}

// NotificationReader defines read-only notification lookups.
type NotificationReader interface {
	Query(q query.Query) query.Result
	Get(id string) (domain.Notification, error)
}

// NotificationUpdater defines the state transitions of stored records.
type NotificationUpdater interface {
	MarkAsRead(id string)
	MarkAllAsRead() int
	Dismiss(id string) error
	Remove(id string)
	ClearAll() int
	Cleanup() []string
}

// SettingsStore defines settings operations.
type SettingsStore interface {
	Settings() settings.NotificationSettings
	UpdateSettings(p settings.Patch) (settings.NotificationSettings, error)
}

// ChangeFeed delivers engine states after every change.
type ChangeFeed interface {
	Subscribe(fn func(engine.State)) (unsubscribe func())
}

// ConfigProvider defines config reads used by status formatting clients.
type ConfigProvider interface {
	GetConfigBool(key string, defaultValue bool) bool
	GetConfigString(key, defaultValue string) string
}
