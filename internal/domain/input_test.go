package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotificationInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   NotificationInput
		wantErr error
	}{
		{"valid", NotificationInput{Title: "Flood watch"}, nil},
		{"missing title", NotificationInput{Message: "body"}, ErrTitleRequired},
		{"blank title", NotificationInput{Title: "   "}, ErrTitleRequired},
		{"long title", NotificationInput{Title: strings.Repeat("x", MaxTitleLength+1)}, ErrTitleTooLong},
		{"long message", NotificationInput{Title: "t", Message: strings.Repeat("x", MaxMessageLength+1)}, ErrMessageTooLong},
		{"bad type", NotificationInput{Title: "t", Type: "fatal"}, ErrInvalidType},
		{"bad priority", NotificationInput{Title: "t", Priority: "urgent"}, ErrInvalidPriority},
		{"negative duration", NotificationInput{Title: "t", Duration: DurationOf(-time.Second)}, ErrInvalidDuration},
		{"bad risk", NotificationInput{Title: "t", Alert: &AlertDetails{RiskLevel: 11}}, ErrInvalidRiskLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNotificationInput_Build_defaults(t *testing.T) {
	n := NotificationInput{Title: "  Heat advisory  "}.Build(DefaultToastDuration)

	assert.Equal(t, "Heat advisory", n.Title)
	assert.Equal(t, TypeInfo, n.Type)
	assert.Equal(t, PriorityNormal, n.Priority)
	assert.Equal(t, DefaultToastDuration, n.Duration)
	assert.True(t, n.Dismissible)
	assert.False(t, n.Read)
	assert.Empty(t, n.ID)
}

func TestNotificationInput_Build_overrides(t *testing.T) {
	n := NotificationInput{
		Title:       "Tsunami",
		Priority:    PriorityCritical,
		Dismissible: BoolOf(false),
	}.Build(DefaultToastDuration)

	assert.Zero(t, n.Duration, "critical notifications are persistent by default")
	assert.False(t, n.Dismissible)

	n = NotificationInput{Title: "Tsunami", Priority: PriorityCritical, Duration: DurationOf(time.Second)}.Build(DefaultToastDuration)
	assert.Equal(t, time.Second, n.Duration)
}

func TestAlertInput_ToNotificationInput(t *testing.T) {
	in := AlertInput{
		NotificationInput: NotificationInput{Title: "Earthquake M6.8"},
		RiskLevel:         9.5,
		Location:          "Valparaiso",
		AffectedAreas:     []string{"coast", "port"},
	}

	out := in.ToNotificationInput()

	assert.Equal(t, TypeError, out.Type)
	assert.Equal(t, PriorityCritical, out.Priority)
	if assert.NotNil(t, out.Alert) {
		assert.Equal(t, 9.5, out.Alert.RiskLevel)
		assert.Equal(t, "Valparaiso", out.Alert.Location)
		assert.Equal(t, []string{"coast", "port"}, out.Alert.AffectedAreas)
	}

	in.AffectedAreas[0] = "changed"
	assert.Equal(t, "coast", out.Alert.AffectedAreas[0])
}

func TestPriorityAndTypeForRisk(t *testing.T) {
	tests := []struct {
		risk     float64
		priority Priority
		typ      Type
	}{
		{0, PriorityLow, TypeInfo},
		{3.9, PriorityLow, TypeInfo},
		{4, PriorityNormal, TypeWarning},
		{7, PriorityHigh, TypeError},
		{9, PriorityCritical, TypeError},
		{10, PriorityCritical, TypeError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.priority, PriorityForRisk(tt.risk), "risk %v", tt.risk)
		assert.Equal(t, tt.typ, TypeForRisk(tt.risk), "risk %v", tt.risk)
	}
}
