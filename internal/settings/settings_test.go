package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDefaults(t *testing.T) {
	s := Defaults()
	assert.True(t, s.EnablePopups)
	assert.Equal(t, 9.0, s.MinPopupRiskLevel)
	assert.Equal(t, 30*time.Minute, s.PopupCooldown())
	assert.True(t, s.EnableSounds)
	assert.Nil(t, s.QuietHours)
	assert.NoError(t, Validate(s))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "06:30", want: 390},
		{in: "6:30", want: 390},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "1230", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NotificationSettings)
	}{
		{name: "risk above scale", mutate: func(s *NotificationSettings) { s.MinPopupRiskLevel = 11 }},
		{name: "negative risk", mutate: func(s *NotificationSettings) { s.MinPopupRiskLevel = -1 }},
		{name: "negative cooldown", mutate: func(s *NotificationSettings) { s.PopupCooldownMs = -5 }},
		{name: "bad quiet start", mutate: func(s *NotificationSettings) { s.QuietHours = &QuietHours{Start: "25:00", End: "06:00"} }},
		{name: "bad quiet end", mutate: func(s *NotificationSettings) { s.QuietHours = &QuietHours{Start: "22:00", End: "6"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mutate(&s)
			assert.ErrorIs(t, Validate(s), ErrInvalidSettings)
		})
	}
}

func TestApply(t *testing.T) {
	base := Defaults()

	next, err := Apply(base, Patch{
		MinPopupRiskLevel: ptr(7.5),
		QuietHours:        &QuietHours{Start: "22:00", End: "06:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, 7.5, next.MinPopupRiskLevel)
	assert.True(t, next.EnablePopups, "unset fields are kept")
	require.NotNil(t, next.QuietHours)
	assert.Equal(t, "22:00", next.QuietHours.Start)
	assert.Nil(t, base.QuietHours, "input is not modified")

	cleared, err := Apply(next, Patch{ClearQuietHours: true, EnableSounds: ptr(false)})
	require.NoError(t, err)
	assert.Nil(t, cleared.QuietHours)
	assert.False(t, cleared.EnableSounds)
	assert.NotNil(t, next.QuietHours)

	unchanged, err := Apply(next, Patch{PopupCooldownMs: ptr(int64(-1))})
	require.ErrorIs(t, err, ErrInvalidSettings)
	assert.Equal(t, next, unchanged)

	assert.True(t, Patch{}.IsEmpty())
	assert.False(t, Patch{ClearQuietHours: true}.IsEmpty())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")
	s := Defaults()
	s.EnableSounds = false
	s.PopupCooldownMs = 60000
	s.QuietHours = &QuietHours{Start: "22:00", End: "06:00"}

	require.NoError(t, Save(path, s))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, FileModeFile, info.Mode().Perm())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("enable_sounds = false\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.False(t, s.EnableSounds)
	assert.Equal(t, 9.0, s.MinPopupRiskLevel)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("enable_sounds = ["), 0644))
	_, err := Load(broken)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("min_popup_risk_level = 42\n"), 0644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestSaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	s := Defaults()
	s.MinPopupRiskLevel = 20
	require.ErrorIs(t, Save(path, s), ErrInvalidSettings)
	assert.NoFileExists(t, path)
}

func TestPathFollowsConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	config.Load()
	assert.Equal(t, filepath.Join(dir, "alertdeck", "settings.toml"), Path())

	t.Setenv("ALERTDECK_SETTINGS_PATH", filepath.Join(dir, "custom.toml"))
	config.Load()
	assert.Equal(t, filepath.Join(dir, "custom.toml"), Path())
}
