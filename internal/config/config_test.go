package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Cleanup(reset)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)
	Load()

	assert.Equal(t, filepath.Join(dir, "config", "alertdeck"), Get("config_dir", ""))
	assert.Equal(t, filepath.Join(dir, "state", "alertdeck"), Get("state_dir", ""))
	assert.Equal(t, 5, GetInt("max_visible_toasts", 0))
	assert.Equal(t, "top-right", Get("toast_position", ""))
	assert.Equal(t, 24, GetInt("retention_hours", 0))
	assert.True(t, GetBool("cache_enabled", false))
	assert.Equal(t, "default", Get("missing", "default"))
	assert.FileExists(t, filepath.Join(dir, "config", "alertdeck", "config.toml"))
}

func TestLoadingPrecedence(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	content := `
max_visible_toasts = 3
toast_stack_direction = "up"
retention_hours = 48
cache_enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("ALERTDECK_CONFIG_PATH", path)
	t.Setenv("ALERTDECK_MAX_VISIBLE_TOASTS", "7")

	Load()

	assert.Equal(t, 7, GetInt("max_visible_toasts", 0), "environment wins over file")
	assert.Equal(t, "up", Get("toast_stack_direction", ""))
	assert.Equal(t, 48, GetInt("retention_hours", 0))
	assert.False(t, GetBool("cache_enabled", true))
	_, exists := Snapshot()["config_path"]
	assert.False(t, exists)
}

func TestValidationFallsBackToDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("ALERTDECK_MAX_VISIBLE_TOASTS", "-1")
	t.Setenv("ALERTDECK_TOAST_POSITION", "middle")
	t.Setenv("ALERTDECK_CACHE_ENABLED", "maybe")
	t.Setenv("ALERTDECK_TOAST_STACK_DIRECTION", "UP")
	t.Setenv("ALERTDECK_TOAST_DEFAULT_DURATION_MS", "0")

	Load()

	assert.Equal(t, "5", Get("max_visible_toasts", ""))
	assert.Equal(t, "top-right", Get("toast_position", ""))
	assert.Equal(t, "true", Get("cache_enabled", ""))
	assert.Equal(t, "up", Get("toast_stack_direction", ""))
	assert.Equal(t, "0", Get("toast_default_duration_ms", ""))
}

func TestGetMillis(t *testing.T) {
	isolate(t)
	Load()
	Set("critical_timeout_ms", "2500")

	assert.Equal(t, 2500*time.Millisecond, GetMillis("critical_timeout_ms", 0))
	assert.Equal(t, 7*time.Second, GetMillis("nope", 7*time.Second))
}

func TestRegisterValidatorPanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		RegisterValidator("debug", BoolValidator())
	})
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		validator Validator
		value     string
		want      string
	}{
		{"int at least keeps valid", IntAtLeastValidator(2), " 3", "3"},
		{"int at least rejects low", IntAtLeastValidator(2), "1", "def"},
		{"int rejects text", PositiveIntValidator(), "five", "def"},
		{"non negative accepts zero", NonNegativeIntValidator(), "0", "0"},
		{"enum lowercases", EnumValidator("sqlite", "memory"), "SQLite", "sqlite"},
		{"enum rejects", EnumValidator("sqlite", "memory"), "postgres", "def"},
		{"bool yes", BoolValidator(), "YES", "true"},
		{"bool off", BoolValidator(), "off", "false"},
		{"bool rejects", BoolValidator(), "maybe", "def"},
		{"addr with host", ListenAddrValidator(), "0.0.0.0:9000", "0.0.0.0:9000"},
		{"addr port only", ListenAddrValidator(), ":8787", ":8787"},
		{"addr without port", ListenAddrValidator(), "localhost", "def"},
		{"addr port out of range", ListenAddrValidator(), ":70000", "def"},
		{"empty uses default", ListenAddrValidator(), "", "def"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.validator("key", tt.value, "def")
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
