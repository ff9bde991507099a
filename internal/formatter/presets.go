package formatter

import (
	"fmt"
	"slices"
)

// Preset is a named status-panel template.
type Preset struct {
	Name        string
	Template    string
	Description string
}

// PresetRegistry resolves preset names for the status panel.
type PresetRegistry interface {
	// Get returns a preset by name.
	Get(name string) (*Preset, error)
	// List returns the presets in registration order.
	List() []Preset
	// Register adds a preset or replaces the one with the same name in place.
	Register(preset Preset) error
}

var defaultPresets = []Preset{
	{"compact", "[${unread-count}] ${latest-title}", "Unread count and latest unread title"},
	{"detailed", "${unread-count} unread (${critical-count} critical, ${high-count} high) | Latest: ${latest-title}", "Priority counts and latest unread title"},
	{"json", `{"unread":${unread-count},"total":${total-count},"critical":${critical-count},"highest":"${highest-priority-name}"}`, "JSON for scripts"},
	{"count-only", "${unread-count}", "Unread count only"},
	{"priority", "Priority: ${highest-priority-name} | Unread: ${unread-count}", "Highest unread priority and unread count"},
	{"risk", "Alerts: ${alert-count} | Max risk: ${max-risk}", "Unread alerts and the highest risk level"},
	{"deck", "${unread-count} unread | ${toast-count} toasts | critical: ${critical-showing} (+${backlog-count})", "Live presentation state: toasts and the critical slot"},
}

type presetRegistry struct {
	presets []Preset
}

// NewPresetRegistry returns a registry holding the built-in presets.
func NewPresetRegistry() PresetRegistry {
	return &presetRegistry{presets: slices.Clone(defaultPresets)}
}

func (r *presetRegistry) index(name string) int {
	return slices.IndexFunc(r.presets, func(p Preset) bool { return p.Name == name })
}

func (r *presetRegistry) Get(name string) (*Preset, error) {
	i := r.index(name)
	if i < 0 {
		return nil, fmt.Errorf("preset not found: %s", name)
	}
	p := r.presets[i]
	return &p, nil
}

func (r *presetRegistry) List() []Preset {
	return slices.Clone(r.presets)
}

func (r *presetRegistry) Register(preset Preset) error {
	switch {
	case preset.Name == "":
		return fmt.Errorf("preset name cannot be empty")
	case preset.Template == "":
		return fmt.Errorf("preset template cannot be empty")
	}
	if i := r.index(preset.Name); i >= 0 {
		r.presets[i] = preset
		return nil
	}
	r.presets = append(r.presets, preset)
	return nil
}
