package status

import (
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/colors"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/engine"
	"github.com/cristianoliveira/alertdeck/internal/settings"
	"github.com/cristianoliveira/alertdeck/internal/toast"
)

var t0 = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

type fakeStatusPanelClient struct {
	state              engine.State
	now                time.Time
	configStringValues map[string]string
}

func (f *fakeStatusPanelClient) State() engine.State {
	return f.state
}

func (f *fakeStatusPanelClient) Now() time.Time {
	return f.now
}

func (f *fakeStatusPanelClient) GetConfigString(key, defaultValue string) string {
	if v, ok := f.configStringValues[key]; ok {
		return v
	}
	return defaultValue
}

func busyState() engine.State {
	critical := domain.Notification{ID: "n-2", Title: "Quake", Priority: domain.PriorityCritical,
		Alert: &domain.AlertDetails{RiskLevel: 9.5}}
	return engine.State{
		Items: []domain.Notification{
			critical,
			{ID: "n-1", Title: "Rain", Priority: domain.PriorityNormal},
		},
		Unread:   2,
		Critical: &critical,
		Toasts:   []toast.Entry{{}},
	}
}

func TestRunStatusPanelDisabled(t *testing.T) {
	client := &fakeStatusPanelClient{state: busyState(), now: t0}
	output, err := RunStatusPanel(client, StatusPanelOptions{Format: "compact"})
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if output != "" {
		t.Errorf("Expected empty output when disabled, got %q", output)
	}
}

func TestRunStatusPanelEmpty(t *testing.T) {
	client := &fakeStatusPanelClient{now: t0}

	output, err := RunStatusPanel(client, StatusPanelOptions{Enabled: true})
	if err != nil || output != "" {
		t.Errorf("Expected empty output, got %q, %v", output, err)
	}

	output, err = RunStatusPanel(client, StatusPanelOptions{Enabled: true, ShowEmpty: true, Format: "count-only"})
	if err != nil || output != "0" {
		t.Errorf("Expected \"0\", got %q, %v", output, err)
	}
}

func TestRunStatusPanelFormats(t *testing.T) {
	tests := []struct {
		name   string
		format string
		config map[string]string
		want   string
	}{
		{name: "default from config", config: map[string]string{"status_format": "count-only"}, want: "2"},
		{name: "built-in default", want: "[2] Quake"},
		{name: "preset", format: "priority", want: "Priority: critical | Unread: 2"},
		{name: "custom template", format: "${critical-showing}/${toast-count}/${max-risk}", want: "true/1/9.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeStatusPanelClient{state: busyState(), now: t0, configStringValues: tt.config}
			got, err := RunStatusPanel(client, StatusPanelOptions{Enabled: true, Format: tt.format})
			if err != nil {
				t.Fatalf("RunStatusPanel() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RunStatusPanel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunStatusPanelUnknownFormat(t *testing.T) {
	client := &fakeStatusPanelClient{state: busyState(), now: t0}
	_, err := RunStatusPanel(client, StatusPanelOptions{Enabled: true, Format: "fancy"})
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
}

func TestRunStatusPanelColor(t *testing.T) {
	client := &fakeStatusPanelClient{state: busyState(), now: t0}
	got, err := RunStatusPanel(client, StatusPanelOptions{Enabled: true, Format: "count-only", Color: true})
	if err != nil {
		t.Fatal(err)
	}
	if got != colors.Magenta+"2"+colors.Reset {
		t.Errorf("got %q", got)
	}
}

func TestContextFromStateQuietHours(t *testing.T) {
	st := busyState()
	st.Settings = settings.NotificationSettings{QuietHours: &settings.QuietHours{Start: "22:00", End: "07:00"}}

	night := time.Date(2026, 5, 4, 23, 30, 0, 0, time.Local)
	if !ContextFromState(st, night).QuietHours {
		t.Error("expected quiet hours at 23:30")
	}
	if ContextFromState(st, night.Add(12*time.Hour)).QuietHours {
		t.Error("expected no quiet hours at 11:30")
	}
}
