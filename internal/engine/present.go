package engine

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/store"
	"github.com/cristianoliveira/alertdeck/internal/toast"
)

// Critical returns the visible critical interrupt.
func (e *Engine) Critical() (domain.Notification, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.critical.Current()
}

// CriticalBacklog returns the admitted alerts waiting for the slot.
func (e *Engine) CriticalBacklog() []domain.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.critical.Backlog()
}

// DismissCritical closes the interrupt id, marks it read and dismissed and
// shows the next waiting alert. It returns domain.ErrNotificationNotFound
// when id is not the visible interrupt and domain.ErrNotDismissible when the
// alert must be closed through an action or the timeout.
func (e *Engine) DismissCritical(id string) error {
	e.mu.Lock()
	if err := e.checkCriticalLocked(id); err != nil {
		e.mu.Unlock()
		return err
	}
	if cur, _ := e.critical.Current(); !cur.Dismissible {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrNotDismissible, id)
	}
	n, _ := e.critical.Dismiss()
	e.store.Dismiss(n.ID)
	e.publishLocked(store.Change{Kind: store.ChangeDismissed, IDs: []string{n.ID}})
	e.mu.Unlock()
	e.bus.Drain()
	return nil
}

// TakeCriticalAction closes the interrupt id through the action with the
// given label, marks the record read and runs the action effect. The
// transition happens even when the effect fails; a failing or panicking
// effect is reported as ErrEffectFailed. A stale id, such as one whose
// interrupt already timed out, is refused with domain.ErrNotificationNotFound
// so the action never lands on the alert shown after it.
func (e *Engine) TakeCriticalAction(ctx context.Context, id, label string) (domain.Notification, error) {
	e.mu.Lock()
	if err := e.checkCriticalLocked(id); err != nil {
		e.mu.Unlock()
		return domain.Notification{}, err
	}
	n, action, err := e.critical.TakeAction(label)
	if err != nil {
		e.mu.Unlock()
		return domain.Notification{}, err
	}
	e.store.MarkRead(n.ID)
	e.publishLocked(store.Change{Kind: store.ChangeRead, IDs: []string{n.ID}})
	e.mu.Unlock()
	e.bus.Drain()

	if err := runEffect(ctx, action); err != nil {
		e.log.Warn("action effect failed", "id", n.ID, "action", label, "error", err)
		return n, fmt.Errorf("%w: %s: %v", ErrEffectFailed, label, err)
	}
	e.log.Info("action taken", "id", n.ID, "action", label, "intent", action.Intent)
	return n, nil
}

func (e *Engine) checkCriticalLocked(id string) error {
	if cur, ok := e.critical.Current(); !ok || cur.ID != id {
		return fmt.Errorf("critical alert %s is not showing: %w", id, domain.ErrNotificationNotFound)
	}
	return nil
}

func runEffect(ctx context.Context, a domain.Action) (err error) {
	if a.Effect == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return a.Effect.Run(ctx)
}

// Toasts returns the visible toasts, top to bottom.
func (e *Engine) Toasts() []toast.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toasts.Visible()
}

// DismissToast removes a toast without touching its record. It reports
// whether the toast was visible and refuses a non-dismissible one with
// domain.ErrNotDismissible; such a toast leaves only through its timer.
func (e *Engine) DismissToast(id string) (bool, error) {
	var err error
	ok := e.present(func() bool {
		for _, t := range e.toasts.Visible() {
			if t.ID() == id && !t.Notification.Dismissible {
				err = fmt.Errorf("%w: %s", domain.ErrNotDismissible, id)
				return false
			}
		}
		return e.toasts.Dismiss(id)
	})
	return ok, err
}

// DismissAllToasts closes every dismissible toast and returns how many were
// removed.
func (e *Engine) DismissAllToasts() int {
	var n int
	e.present(func() bool {
		for _, t := range e.toasts.Visible() {
			if t.Notification.Dismissible && e.toasts.Dismiss(t.ID()) {
				n++
			}
		}
		return n > 0
	})
	return n
}

// HoverToast freezes the countdown of a toast.
func (e *Engine) HoverToast(id string) bool {
	return e.present(func() bool { return e.toasts.Pause(id) })
}

// UnhoverToast resumes the countdown of a toast from where it stopped.
func (e *Engine) UnhoverToast(id string) bool {
	return e.present(func() bool { return e.toasts.Resume(id) })
}

// PauseToasts freezes every countdown, as when the pointer enters the stack.
func (e *Engine) PauseToasts() int {
	var n int
	e.present(func() bool {
		n = e.toasts.PauseAll()
		return n > 0
	})
	return n
}

// ResumeToasts resumes every frozen countdown.
func (e *Engine) ResumeToasts() int {
	var n int
	e.present(func() bool {
		n = e.toasts.ResumeAll()
		return n > 0
	})
	return n
}

// present runs a presentation-only change and publishes when it reports one.
func (e *Engine) present(fn func() bool) bool {
	e.mu.Lock()
	changed := fn()
	if changed {
		e.publishLocked(store.Change{})
	}
	e.mu.Unlock()
	if changed {
		e.bus.Drain()
	}
	return changed
}

// onCriticalTimeout runs on the timer goroutine. An auto-timeout behaves as
// a dismissal.
func (e *Engine) onCriticalTimeout(id string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	n, ok := e.critical.Expire(id)
	if ok {
		e.store.Dismiss(n.ID)
		e.publishLocked(store.Change{Kind: store.ChangeDismissed, IDs: []string{n.ID}})
	}
	e.mu.Unlock()
	if ok {
		e.bus.Drain()
	}
}

func (e *Engine) onToastExpire(id string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	ok := e.toasts.Expire(id)
	if ok {
		e.publishLocked(store.Change{})
	}
	e.mu.Unlock()
	if ok {
		e.bus.Drain()
	}
}
