/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/

// Package status renders the one-line status panel for alertdeck.
package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/colors"
	"github.com/cristianoliveira/alertdeck/internal/config"
	"github.com/cristianoliveira/alertdeck/internal/engine"
	"github.com/cristianoliveira/alertdeck/internal/formatter"
	"github.com/cristianoliveira/alertdeck/internal/popup"
)

// StatusPanelOptions holds parameters for status panel.
type StatusPanelOptions struct {
	Format  string // preset name or a ${variable} template
	Enabled bool   // true to enable output
	Color   bool   // paint output with the highest unread priority color
	// ShowEmpty renders even when nothing is unread.
	ShowEmpty bool
}

// StatusPanelClient defines the interface for status panel operations.
type StatusPanelClient interface {
	State() engine.State
	Now() time.Time
	GetConfigString(key, defaultValue string) string
}

// DefaultClient reads state from an engine and settings from config.
type DefaultClient struct {
	Engine *engine.Engine
}

func (d *DefaultClient) State() engine.State {
	return d.Engine.State()
}

func (d *DefaultClient) Now() time.Time {
	return time.Now()
}

func (d *DefaultClient) GetConfigString(key, defaultValue string) string {
	return config.Get(key, defaultValue)
}

// ContextFromState builds the template variables for st at now.
func ContextFromState(st engine.State, now time.Time) formatter.VariableContext {
	ctx := formatter.NewVariableContext(st.Items)
	ctx.CriticalShowing = st.Critical != nil
	ctx.BacklogCount = len(st.Backlog)
	ctx.ToastCount = len(st.Toasts)
	ctx.QuietHours = popup.InQuietHours(st.Settings, now)
	return ctx
}

// ResolveTemplate returns the template for format: a preset name, or the
// format itself when it contains a variable.
func ResolveTemplate(format string) (string, error) {
	preset, err := formatter.NewPresetRegistry().Get(format)
	if err == nil {
		return preset.Template, nil
	}
	if strings.Contains(format, "${") {
		return format, nil
	}
	return "", fmt.Errorf("unknown format: %s", format)
}

// RunStatusPanel executes the status command with given options.
// Returns the formatted output string (may be empty) and any error.
func RunStatusPanel(client StatusPanelClient, opts StatusPanelOptions) (string, error) {
	if !opts.Enabled {
		return "", nil
	}

	ctx := ContextFromState(client.State(), client.Now())
	if !ctx.HasUnread && !ctx.CriticalShowing && !opts.ShowEmpty {
		return "", nil
	}

	format := opts.Format
	if format == "" {
		format = client.GetConfigString("status_format", "compact")
	}
	template, err := ResolveTemplate(format)
	if err != nil {
		return "", err
	}
	out, err := formatter.Render(template, ctx)
	if err != nil {
		return "", err
	}
	if opts.Color {
		out = colors.Paint(colors.ForPriority(ctx.HighestPriority.String()), out)
	}
	return out, nil
}
