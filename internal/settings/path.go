package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cristianoliveira/alertdeck/internal/config"
	"github.com/pelletier/go-toml/v2"
)

const (
	// FileModeDir is the permission for the settings directory.
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for the settings file.
	FileModeFile os.FileMode = 0644

	settingsFilename = "settings.toml"
)

// Path returns the settings file location. The settings_path config key
// overrides the default under config_dir.
func Path() string {
	if override := config.Get("settings_path", ""); override != "" {
		return override
	}
	return filepath.Join(resolveConfigDir(), settingsFilename)
}

// resolveConfigDir returns the configured config directory, falling back to
// the XDG default if needed.
func resolveConfigDir() string {
	if configDir := config.Get("config_dir", ""); configDir != "" {
		return configDir
	}
	home, _ := os.UserHomeDir()
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		xdgConfigHome = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfigHome, "alertdeck")
}

// Load reads settings from path. A missing file yields Defaults. Keys absent
// from the file keep their default values.
func Load(path string) (NotificationSettings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Defaults(), nil
	}
	if err != nil {
		return NotificationSettings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := Defaults()
	if err := toml.Unmarshal(data, &s); err != nil {
		return NotificationSettings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if err := Validate(s); err != nil {
		return NotificationSettings{}, err
	}
	return s, nil
}

// Save validates s and writes it to path, creating the directory if needed.
func Save(path string, s NotificationSettings) error {
	if err := Validate(s); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FileModeFile); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}
