package engine

import (
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/popup"
	"github.com/cristianoliveira/alertdeck/internal/settings"
	"github.com/cristianoliveira/alertdeck/internal/store"
	"github.com/cristianoliveira/alertdeck/internal/toast"
)

// State is an immutable view of the engine after a change.
type State struct {
	// Version increases with every published State.
	Version uint64
	// StoreVersion is the version of the store snapshot in Items.
	StoreVersion uint64
	// Change describes the store mutation, if any, behind this State.
	Change store.Change

	// Items is the full list, most recent first, dismissed included.
	Items  []domain.Notification
	Unread int

	Critical      *domain.Notification
	CriticalState popup.State
	Backlog       []domain.Notification

	Toasts         []toast.Entry
	ToastPosition  toast.Position
	ToastDirection toast.Direction

	Settings settings.NotificationSettings
}

func (e *Engine) stateLocked(change store.Change) State {
	snap := e.store.Snapshot()
	st := State{
		Version:        e.version,
		StoreVersion:   snap.Version,
		Change:         change,
		Items:          snap.Items(),
		Unread:         snap.Unread(),
		CriticalState:  e.critical.State(),
		Backlog:        e.critical.Backlog(),
		Toasts:         e.toasts.Visible(),
		ToastPosition:  e.toasts.Position(),
		ToastDirection: e.toasts.Direction(),
		Settings:       e.settings.Clone(),
	}
	if cur, ok := e.critical.Current(); ok {
		st.Critical = &cur
	}
	return st
}
