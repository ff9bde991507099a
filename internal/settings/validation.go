package settings

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSettings wraps every validation failure.
var ErrInvalidSettings = errors.New("invalid notification settings")

// Validate checks that settings values are usable.
func Validate(s NotificationSettings) error {
	if math.IsNaN(s.MinPopupRiskLevel) || s.MinPopupRiskLevel < 0 || s.MinPopupRiskLevel > 10 {
		return fmt.Errorf("%w: min_popup_risk_level %v outside 0-10", ErrInvalidSettings, s.MinPopupRiskLevel)
	}
	if s.PopupCooldownMs < 0 {
		return fmt.Errorf("%w: popup_cooldown_ms must not be negative", ErrInvalidSettings)
	}
	if q := s.QuietHours; q != nil {
		if _, err := ParseClock(q.Start); err != nil {
			return fmt.Errorf("%w: quiet_hours.start: %v", ErrInvalidSettings, err)
		}
		if _, err := ParseClock(q.End); err != nil {
			return fmt.Errorf("%w: quiet_hours.end: %v", ErrInvalidSettings, err)
		}
	}
	return nil
}
