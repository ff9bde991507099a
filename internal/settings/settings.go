// Package settings holds the runtime notification settings and their
// persistence to settings.toml.
package settings

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Defaults for a fresh installation.
const (
	DefaultMinPopupRiskLevel = 9.0
	DefaultPopupCooldown     = 30 * time.Minute
)

// QuietHours is a wall-clock window written as HH:MM strings. A window whose
// start is after its end wraps midnight.
type QuietHours struct {
	Start string `toml:"start" json:"start"`
	End   string `toml:"end" json:"end"`
}

// NotificationSettings controls popup admission and audio cues.
type NotificationSettings struct {
	// EnablePopups allows alerts to become critical interrupts.
	EnablePopups      bool        `toml:"enable_popups" json:"enable_popups"`
	// MinPopupRiskLevel is the lowest risk level (0-10) eligible for a popup.
	MinPopupRiskLevel float64     `toml:"min_popup_risk_level" json:"min_popup_risk_level"`
	// PopupCooldownMs is the minimum spacing between two popups.
	PopupCooldownMs   int64       `toml:"popup_cooldown_ms" json:"popup_cooldown_ms"`
	// EnableSounds allows audio cues.
	EnableSounds      bool        `toml:"enable_sounds" json:"enable_sounds"`
	// QuietHours suppresses popups and sounds while active. Nil disables it.
	QuietHours        *QuietHours `toml:"quiet_hours,omitempty" json:"quiet_hours,omitempty"`
}

// Defaults returns the settings used when nothing was configured.
func Defaults() NotificationSettings {
	return NotificationSettings{
		EnablePopups:      true,
		MinPopupRiskLevel: DefaultMinPopupRiskLevel,
		PopupCooldownMs:   DefaultPopupCooldown.Milliseconds(),
		EnableSounds:      true,
	}
}

// PopupCooldown returns the cooldown as a duration.
func (s NotificationSettings) PopupCooldown() time.Duration {
	return time.Duration(s.PopupCooldownMs) * time.Millisecond
}

// Clone returns a copy that shares no pointers with s.
func (s NotificationSettings) Clone() NotificationSettings {
	if s.QuietHours != nil {
		q := *s.QuietHours
		s.QuietHours = &q
	}
	return s
}

// ParseClock parses an HH:MM wall-clock string into minutes after midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}
