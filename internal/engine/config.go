package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/clock"
	"github.com/cristianoliveira/alertdeck/internal/config"
	"github.com/cristianoliveira/alertdeck/internal/logging"
	"github.com/cristianoliveira/alertdeck/internal/search"
	"github.com/cristianoliveira/alertdeck/internal/settings"
	"github.com/cristianoliveira/alertdeck/internal/sound"
	"github.com/cristianoliveira/alertdeck/internal/storage"
	"github.com/cristianoliveira/alertdeck/internal/toast"
)

// OptionsFromConfig builds Options from the process configuration and the
// settings file. config.Load must have run.
func OptionsFromConfig(ctx context.Context, log logging.Logger) (Options, error) {
	if log == nil {
		log = logging.Nop()
	}
	settingsPath := settings.Path()
	current, err := settings.Load(settingsPath)
	if err != nil {
		return Options{}, fmt.Errorf("load settings: %w", err)
	}

	provider, err := search.New(config.Get("search_provider", "substring"), search.WithAlertFields())
	if err != nil {
		return Options{}, err
	}

	defaultDuration := config.GetMillis("toast_default_duration_ms", 5*time.Second)
	if defaultDuration == 0 {
		defaultDuration = -1
	}

	return Options{
		Scheduler:    clock.NewReal(),
		Settings:     &current,
		SettingsPath: settingsPath,
		Cache:        storage.NewFromConfig(ctx, log),
		Sound: sound.NewHookAdvisor(sound.HookOptions{
			Dir:     config.Get("sounds_dir", ""),
			Timeout: time.Duration(config.GetInt("sound_timeout_seconds", 5)) * time.Second,
			Async:   true,
			Logger:  log,
		}),
		Search:           provider,
		MaxVisibleToasts: config.GetInt("max_visible_toasts", toast.DefaultMaxVisible),
		ToastDirection:   toast.Direction(config.Get("toast_stack_direction", string(toast.StackDown))),
		ToastPosition:    toast.Position(config.Get("toast_position", string(toast.TopRight))),
		DefaultDuration:  defaultDuration,
		CriticalTimeout:  config.GetMillis("critical_timeout_ms", 10*time.Second),
		JanitorInterval:  time.Duration(config.GetInt("janitor_interval_minutes", 60)) * time.Minute,
		Retention:        time.Duration(config.GetInt("retention_hours", 24)) * time.Hour,
		Logger:           log,
	}, nil
}

// NewFromConfig builds an engine from the process configuration.
func NewFromConfig(ctx context.Context, log logging.Logger) (*Engine, error) {
	opts, err := OptionsFromConfig(ctx, log)
	if err != nil {
		return nil, err
	}
	return New(ctx, opts)
}
