package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/engine"
	"github.com/cristianoliveira/alertdeck/internal/settings"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", stderrors.New("disk full"), "disk full"},
		{"not found with context", fmt.Errorf("no critical alert showing: %w", domain.ErrNotificationNotFound), "Not found: no critical alert showing"},
		{"action", fmt.Errorf("%w: %q", domain.ErrActionNotFound, "Evacuate"), `No such action: "Evacuate"`},
		{"risk", fmt.Errorf("%w: 11 (must be between 0 and 10)", domain.ErrInvalidRiskLevel), "Invalid risk level: 11 (must be between 0 and 10)"},
		{"not dismissible", fmt.Errorf("%w: n-1", domain.ErrNotDismissible), "Cannot dismiss: n-1"},
		{"settings", fmt.Errorf("%w: popup_cooldown_ms must not be negative", settings.ErrInvalidSettings), "Invalid settings: popup_cooldown_ms must not be negative"},
		{"closed", engine.ErrClosed, "Engine stopped"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("x: %w", domain.ErrNotificationNotFound)))
	assert.True(t, IsNotFound(domain.ErrActionNotFound))
	assert.False(t, IsNotFound(engine.ErrEffectFailed))
}

func TestHint(t *testing.T) {
	assert.Contains(t, Hint(fmt.Errorf("x: %w", domain.ErrNotificationNotFound)), "alertdeck list")
	assert.Contains(t, Hint(fmt.Errorf("%w: bad", settings.ErrInvalidSettings)), "settings show")
	assert.Empty(t, Hint(stderrors.New("disk full")))
	assert.Empty(t, Hint(nil))
}
