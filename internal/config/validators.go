package config

import (
	"fmt"
	"net"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/cristianoliveira/alertdeck/internal/colors"
)

// Validator validates and normalizes a configuration value. An invalid
// value falls back to defaultValue with a warning instead of failing the
// command.
type Validator func(key, value, defaultValue string) (normalized string, err error)

var (
	validatorsMu sync.RWMutex
	validators   = map[string]Validator{}
)

// RegisterValidator registers a validator for a configuration key.
// Panics if a validator is already registered for the key.
func RegisterValidator(key string, validator Validator) {
	validatorsMu.Lock()
	defer validatorsMu.Unlock()
	if _, exists := validators[key]; exists {
		panic(fmt.Sprintf("validator already registered for key: %s", key))
	}
	validators[key] = validator
}

func getValidator(key string) Validator {
	validatorsMu.RLock()
	defer validatorsMu.RUnlock()
	return validators[key]
}

// fallback warns about an invalid value and returns the default.
func fallback(key, value, defaultValue, want string) (string, error) {
	colors.Warning(fmt.Sprintf("invalid %s value '%s': %s; using default: %s", key, value, want, defaultValue))
	return defaultValue, nil
}

// IntAtLeastValidator accepts integers >= min.
func IntAtLeastValidator(min int) Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < min {
			return fallback(key, value, defaultValue, fmt.Sprintf("must be an integer >= %d", min))
		}
		return strconv.Itoa(n), nil
	}
}

// PositiveIntValidator accepts integers > 0.
func PositiveIntValidator() Validator { return IntAtLeastValidator(1) }

// NonNegativeIntValidator accepts zero, used where 0 disables a feature.
func NonNegativeIntValidator() Validator { return IntAtLeastValidator(0) }

// EnumValidator accepts one of allowed, case-insensitively, and lowercases it.
func EnumValidator(allowed ...string) Validator {
	sorted := slices.Sorted(slices.Values(allowed))
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		lower := strings.ToLower(strings.TrimSpace(value))
		if !slices.Contains(allowed, lower) {
			return fallback(key, value, defaultValue, "must be one of: "+strings.Join(sorted, ", "))
		}
		return lower, nil
	}
}

// BoolValidator normalizes 1/yes/on and 0/no/off to "true" and "false".
func BoolValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "on":
			return "true", nil
		case "0", "false", "no", "off":
			return "false", nil
		}
		return fallback(key, value, defaultValue, "must be a boolean (true/false, yes/no, on/off, 1/0)")
	}
}

// ListenAddrValidator accepts host:port listen addresses such as ":8787".
func ListenAddrValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		_, port, err := net.SplitHostPort(value)
		if err != nil {
			return fallback(key, value, defaultValue, "must be host:port")
		}
		if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
			return fallback(key, value, defaultValue, "port must be 0-65535")
		}
		return value, nil
	}
}

func initValidators() {
	positive := PositiveIntValidator()
	for _, key := range []string{
		"max_visible_toasts", "critical_timeout_ms", "janitor_interval_minutes",
		"retention_hours", "sound_timeout_seconds", "logging_max_files",
	} {
		RegisterValidator(key, positive)
	}
	RegisterValidator("toast_default_duration_ms", NonNegativeIntValidator())
	RegisterValidator("dedup_window_minutes", NonNegativeIntValidator())

	boolean := BoolValidator()
	for _, key := range []string{"cache_enabled", "status_enabled", "logging_enabled", "debug", "quiet"} {
		RegisterValidator(key, boolean)
	}

	RegisterValidator("toast_position", EnumValidator(
		"top-right", "top-left", "top-center", "bottom-right", "bottom-left", "bottom-center"))
	RegisterValidator("toast_stack_direction", EnumValidator("up", "down"))
	RegisterValidator("search_provider", EnumValidator("substring", "token", "regex"))
	RegisterValidator("dedup_criteria", EnumValidator("title", "title_type", "title_source", "exact"))
	RegisterValidator("cache_backend", EnumValidator("sqlite", "memory", "none"))
	RegisterValidator("logging_level", EnumValidator("debug", "info", "warn", "error"))
	RegisterValidator("http_addr", ListenAddrValidator())
}
