// Package popup decides which alerts become critical interrupts and
// presents them one at a time.
package popup

import (
	"time"

	"github.com/cristianoliveira/alertdeck/internal/clock"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/logging"
	"github.com/cristianoliveira/alertdeck/internal/settings"
)

// Reason explains an admission decision.
type Reason string

const (
	Admitted       Reason = "admitted"
	NotAnAlert     Reason = "not_an_alert"
	PopupsDisabled Reason = "popups_disabled"
	BelowThreshold Reason = "below_threshold"
	CoolingDown    Reason = "cooldown"
	QuietTime      Reason = "quiet_hours"
	Expired        Reason = "expired"
)

// Decision is the outcome of Gate.Evaluate.
type Decision struct {
	Admitted bool
	Reason   Reason
}

// Gate is the admission policy for the critical-interrupt slot. It owns the
// cooldown state. Gate is not safe for concurrent use.
type Gate struct {
	clock     clock.Clock
	log       logging.Logger
	lastPopup time.Time
	hasLast   bool
}

// NewGate returns a gate with no popup recorded yet.
func NewGate(c clock.Clock, log logging.Logger) *Gate {
	if log == nil {
		log = logging.Nop()
	}
	return &Gate{clock: c, log: log.With("component", "popup_gate")}
}

// Evaluate applies the admission predicate to n under s. On admission the
// cooldown restarts from now. Rejection is the normal outcome and leaves
// the gate unchanged.
func (g *Gate) Evaluate(n domain.Notification, s settings.NotificationSettings) Decision {
	now := g.clock.Now()
	d := g.decide(n, s, now)
	if d.Admitted {
		g.lastPopup = now
		g.hasLast = true
	}
	g.log.Debug("popup admission", "id", n.ID, "risk", n.RiskLevel(), "reason", string(d.Reason))
	return d
}

func (g *Gate) decide(n domain.Notification, s settings.NotificationSettings, now time.Time) Decision {
	switch {
	case !n.IsAlert():
		return Decision{Reason: NotAnAlert}
	case !s.EnablePopups:
		return Decision{Reason: PopupsDisabled}
	case n.RiskLevel() < s.MinPopupRiskLevel:
		return Decision{Reason: BelowThreshold}
	case g.hasLast && now.Sub(g.lastPopup) < s.PopupCooldown():
		return Decision{Reason: CoolingDown}
	case InQuietHours(s, now):
		return Decision{Reason: QuietTime}
	case n.ExpiredAt(now):
		return Decision{Reason: Expired}
	}
	return Decision{Admitted: true, Reason: Admitted}
}

// LastPopup returns when the last popup was admitted.
func (g *Gate) LastPopup() (time.Time, bool) {
	return g.lastPopup, g.hasLast
}

// CooldownRemaining returns how long until the cooldown under s elapses.
func (g *Gate) CooldownRemaining(s settings.NotificationSettings) time.Duration {
	if !g.hasLast {
		return 0
	}
	left := s.PopupCooldown() - g.clock.Now().Sub(g.lastPopup)
	if left < 0 {
		return 0
	}
	return left
}
