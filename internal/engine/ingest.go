package engine

import (
	"context"

	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/popup"
	"github.com/cristianoliveira/alertdeck/internal/sound"
	"github.com/cristianoliveira/alertdeck/internal/store"
)

// Delivery reports where an ingested record was presented.
type Delivery struct {
	ID       string
	Decision popup.Decision
	// Critical is true when the record is showing or waiting in the
	// critical slot.
	Critical bool
	Toast    bool
	// Evicted lists toasts pushed off the stack by this one.
	Evicted []string
	Sound   bool
}

// AddNotification stores a general-purpose notification and returns its id.
// Alert details on the input still go through the popup gate.
func (e *Engine) AddNotification(ctx context.Context, in domain.NotificationInput) (string, error) {
	d, err := e.Ingest(ctx, in)
	return d.ID, err
}

// AddAlert stores a disaster alert, deriving type and priority from the
// risk level when unset, and returns its id.
func (e *Engine) AddAlert(ctx context.Context, in domain.AlertInput) (string, error) {
	if err := domain.ValidateRiskLevel(in.RiskLevel); err != nil {
		return "", err
	}
	d, err := e.Ingest(ctx, in.ToNotificationInput())
	return d.ID, err
}

// Ingest stores in and routes the new record to the critical slot, the
// toast stack and the sound advisor. Invalid input creates nothing.
func (e *Engine) Ingest(ctx context.Context, in domain.NotificationInput) (Delivery, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return Delivery{}, ErrClosed
	}
	id, err := e.store.Add(in)
	if err != nil {
		e.mu.Unlock()
		return Delivery{}, err
	}
	n, _ := e.store.Get(id)
	d := e.routeLocked(n)
	e.publishLocked(store.Change{Kind: store.ChangeAdded, IDs: []string{id}})
	e.mu.Unlock()

	e.bus.Drain()
	if d.Sound {
		_ = e.sound.Cue(ctx, sound.Severity(n))
	}
	return d, nil
}

func (e *Engine) routeLocked(n domain.Notification) Delivery {
	d := Delivery{ID: n.ID, Decision: e.gate.Evaluate(n, e.settings)}
	if d.Decision.Admitted {
		e.critical.Enqueue(n)
		d.Critical = true
	} else if toastEligible(n) {
		d.Evicted = e.toasts.Push(n)
		d.Toast = true
	}

	presented := d.Critical || (d.Toast && sound.Wants(n))
	d.Sound = presented && e.settings.EnableSounds && !popup.InQuietHours(e.settings, e.sched.Now())

	e.log.Debug("notification routed",
		"id", n.ID,
		"priority", string(n.Priority),
		"popup", string(d.Decision.Reason),
		"toast", d.Toast,
		"sound", d.Sound,
	)
	return d
}

// toastEligible reports whether n earns a toast when it is not a popup.
func toastEligible(n domain.Notification) bool {
	return n.Priority.Rank() > domain.PriorityLow.Rank()
}
