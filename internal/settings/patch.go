package settings

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	EnablePopups      *bool       `json:"enable_popups,omitempty"`
	MinPopupRiskLevel *float64    `json:"min_popup_risk_level,omitempty"`
	PopupCooldownMs   *int64      `json:"popup_cooldown_ms,omitempty"`
	EnableSounds      *bool       `json:"enable_sounds,omitempty"`
	QuietHours        *QuietHours `json:"quiet_hours,omitempty"`

	// ClearQuietHours removes the quiet window. It wins over QuietHours.
	ClearQuietHours bool `json:"clear_quiet_hours,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.EnablePopups == nil &&
		p.MinPopupRiskLevel == nil &&
		p.PopupCooldownMs == nil &&
		p.EnableSounds == nil &&
		p.QuietHours == nil &&
		!p.ClearQuietHours
}

// Apply merges p into s and validates the result. On error s is returned
// unchanged.
func Apply(s NotificationSettings, p Patch) (NotificationSettings, error) {
	next := s.Clone()
	if p.EnablePopups != nil {
		next.EnablePopups = *p.EnablePopups
	}
	if p.MinPopupRiskLevel != nil {
		next.MinPopupRiskLevel = *p.MinPopupRiskLevel
	}
	if p.PopupCooldownMs != nil {
		next.PopupCooldownMs = *p.PopupCooldownMs
	}
	if p.EnableSounds != nil {
		next.EnableSounds = *p.EnableSounds
	}
	if p.QuietHours != nil {
		q := *p.QuietHours
		next.QuietHours = &q
	}
	if p.ClearQuietHours {
		next.QuietHours = nil
	}
	if err := Validate(next); err != nil {
		return s, err
	}
	return next, nil
}
