package engine

import (
	"fmt"

	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/query"
	"github.com/cristianoliveira/alertdeck/internal/settings"
	"github.com/cristianoliveira/alertdeck/internal/store"
)

// List returns the records matching q, most recent first by default.
func (e *Engine) List(q query.Query) []domain.Notification {
	return e.view.List(e.store.Snapshot(), q)
}

// Query evaluates q and returns the matches with counts.
func (e *Engine) Query(q query.Query) query.Result {
	return e.view.Apply(e.store.Snapshot(), q)
}

// Get returns the record with the given id.
func (e *Engine) Get(id string) (domain.Notification, error) {
	n, ok := e.store.Get(id)
	if !ok {
		return domain.Notification{}, fmt.Errorf("%w: %s", domain.ErrNotificationNotFound, id)
	}
	return n, nil
}

// UnreadCount returns the number of unread records.
func (e *Engine) UnreadCount() int {
	return e.store.UnreadCount()
}

// MarkAsRead marks id read. Unknown or already-read ids are a no-op.
func (e *Engine) MarkAsRead(id string) {
	e.mutate(func() (store.Change, bool) {
		return store.Change{Kind: store.ChangeRead, IDs: []string{id}}, e.store.MarkRead(id)
	})
}

// MarkAllAsRead marks every record read and returns how many changed.
func (e *Engine) MarkAllAsRead() int {
	var n int
	e.mutate(func() (store.Change, bool) {
		n = e.store.MarkAllRead()
		return store.Change{Kind: store.ChangeReadAll}, n > 0
	})
	return n
}

// Dismiss marks id read and dismissed and withdraws it from the critical
// slot and the toast stack. Unknown ids are a no-op. A record created with
// Dismissible false is refused with domain.ErrNotDismissible.
func (e *Engine) Dismiss(id string) error {
	var err error
	e.mutate(func() (store.Change, bool) {
		if n, ok := e.store.Get(id); ok && !n.Dismissible {
			err = fmt.Errorf("%w: %s", domain.ErrNotDismissible, id)
			return store.Change{}, false
		}
		return store.Change{Kind: store.ChangeDismissed, IDs: []string{id}}, e.store.Dismiss(id)
	})
	return err
}

// Remove deletes id. Unknown ids are a no-op.
func (e *Engine) Remove(id string) {
	e.mutate(func() (store.Change, bool) {
		return store.Change{Kind: store.ChangeRemoved, IDs: []string{id}}, e.store.Remove(id)
	})
}

// ClearAll deletes every record and returns how many were removed.
func (e *Engine) ClearAll() int {
	var n int
	e.mutate(func() (store.Change, bool) {
		n = e.store.ClearAll()
		return store.Change{Kind: store.ChangeCleared}, n > 0
	})
	return n
}

// Cleanup runs one janitor sweep now and returns the removed ids.
func (e *Engine) Cleanup() []string {
	return e.janitor.Sweep()
}

// Settings returns the current notification settings.
func (e *Engine) Settings() settings.NotificationSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.Clone()
}

// UpdateSettings merges p into the current settings. The result applies to
// later admissions only. Saving to the settings file is best effort.
func (e *Engine) UpdateSettings(p settings.Patch) (settings.NotificationSettings, error) {
	e.mu.Lock()
	next, err := settings.Apply(e.settings, p)
	if err != nil {
		e.mu.Unlock()
		return e.Settings(), err
	}
	e.settings = next
	e.publishLocked(store.Change{})
	path := e.settingsPath
	e.mu.Unlock()

	e.bus.Drain()
	if path != "" {
		if err := settings.Save(path, next); err != nil {
			e.log.Warn("settings save failed", "path", path, "error", err)
		}
	}
	e.log.Info("settings updated",
		"enable_popups", next.EnablePopups,
		"min_popup_risk_level", next.MinPopupRiskLevel,
		"popup_cooldown_ms", next.PopupCooldownMs,
		"enable_sounds", next.EnableSounds,
	)
	return next.Clone(), nil
}

// mutate runs fn under the lock and publishes when it reports a change.
func (e *Engine) mutate(fn func() (store.Change, bool)) {
	e.mu.Lock()
	change, changed := fn()
	if changed {
		e.publishLocked(change)
	}
	e.mu.Unlock()
	if changed {
		e.bus.Drain()
	}
}
