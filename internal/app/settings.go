package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/cristianoliveira/alertdeck/internal/ports"
	"github.com/cristianoliveira/alertdeck/internal/settings"
)

// Settings keys accepted by ParsePatch.
const (
	KeyEnablePopups      = "enable_popups"
	KeyMinPopupRiskLevel = "min_popup_risk_level"
	KeyPopupCooldown     = "popup_cooldown"
	KeyEnableSounds      = "enable_sounds"
	KeyQuietHours        = "quiet_hours"
)

// SettingsKeys lists the keys accepted by ParsePatch.
func SettingsKeys() []string {
	return []string{KeyEnablePopups, KeyMinPopupRiskLevel, KeyPopupCooldown, KeyEnableSounds, KeyQuietHours}
}

// SettingsUseCase coordinates settings command behavior.
type SettingsUseCase struct {
	client ports.SettingsStore
}

// NewSettingsUseCase creates a settings use-case.
func NewSettingsUseCase(client ports.SettingsStore) *SettingsUseCase {
	if client == nil {
		panic("NewSettingsUseCase: client dependency cannot be nil")
	}
	return &SettingsUseCase{client: client}
}

// Show writes the current settings as json or toml.
func (u *SettingsUseCase) Show(w io.Writer, format string) error {
	return WriteSettings(w, u.client.Settings(), format)
}

// Set applies key=value assignments and returns the stored result.
func (u *SettingsUseCase) Set(assignments []string) (settings.NotificationSettings, error) {
	patch, err := ParsePatch(assignments)
	if err != nil {
		return settings.NotificationSettings{}, err
	}
	return u.client.UpdateSettings(patch)
}

// Reset restores the defaults.
func (u *SettingsUseCase) Reset() (settings.NotificationSettings, error) {
	d := settings.Defaults()
	return u.client.UpdateSettings(settings.Patch{
		EnablePopups:      &d.EnablePopups,
		MinPopupRiskLevel: &d.MinPopupRiskLevel,
		PopupCooldownMs:   &d.PopupCooldownMs,
		EnableSounds:      &d.EnableSounds,
		ClearQuietHours:   true,
	})
}

// WriteSettings renders s as json or toml.
func WriteSettings(w io.Writer, s settings.NotificationSettings, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "toml":
		data, err := toml.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown settings format %q: use json or toml", format)
	}
}

// ParsePatch converts key=value assignments to a settings patch.
// popup_cooldown takes a Go duration; quiet_hours takes HH:MM-HH:MM or off.
func ParsePatch(assignments []string) (settings.Patch, error) {
	var p settings.Patch
	if len(assignments) == 0 {
		return p, fmt.Errorf("expected key=value, keys: %s", strings.Join(SettingsKeys(), ", "))
	}
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return p, fmt.Errorf("invalid assignment %q: expected key=value", a)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case KeyEnablePopups, KeyEnableSounds:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return p, fmt.Errorf("invalid %s %q: expected true or false", key, value)
			}
			if key == KeyEnablePopups {
				p.EnablePopups = &b
			} else {
				p.EnableSounds = &b
			}
		case KeyMinPopupRiskLevel:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return p, fmt.Errorf("invalid %s %q: expected a number", key, value)
			}
			p.MinPopupRiskLevel = &f
		case KeyPopupCooldown:
			d, err := time.ParseDuration(value)
			if err != nil {
				return p, fmt.Errorf("invalid %s %q: %w", key, value, err)
			}
			ms := d.Milliseconds()
			p.PopupCooldownMs = &ms
		case KeyQuietHours:
			if strings.EqualFold(value, "off") || value == "" {
				p.ClearQuietHours = true
				continue
			}
			start, end, ok := strings.Cut(value, "-")
			if !ok {
				return p, fmt.Errorf("invalid %s %q: expected HH:MM-HH:MM or off", key, value)
			}
			p.QuietHours = &settings.QuietHours{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}
		default:
			return p, fmt.Errorf("unknown setting %q, keys: %s", key, strings.Join(SettingsKeys(), ", "))
		}
	}
	return p, nil
}
