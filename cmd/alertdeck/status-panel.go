/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/alertdeck/cmd"
	"github.com/cristianoliveira/alertdeck/internal/config"
	"github.com/cristianoliveira/alertdeck/internal/engine"
	"github.com/cristianoliveira/alertdeck/internal/formatter"
	"github.com/cristianoliveira/alertdeck/internal/status"
)

// NewStatusPanelCmd creates the status-panel command with explicit dependencies.
func NewStatusPanelCmd(open opener[status.StatusPanelClient]) *cobra.Command {
	if open == nil {
		panic("NewStatusPanelCmd: client dependency cannot be nil")
	}

	var opts status.StatusPanelOptions
	var listVars bool
	panelCmd := &cobra.Command{
		Use:   "status-panel",
		Short: "Print a one-line status for bars and prompts",
		Long: `Print a one-line status for status bars and shell prompts.

USAGE:
    alertdeck status-panel [--format <preset|template>] [--color] [--show-empty]

The format is a preset (compact, detailed, json, count-only, priority, risk)
or a template with ${variable} references. It defaults to status_format.
Nothing is printed while nothing is unread, unless --show-empty is set.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			out := c.OutOrStdout()
			if listVars {
				for _, v := range formatter.Variables() {
					_, _ = fmt.Fprintln(out, v)
				}
				return nil
			}
			client, err := open(c.Context())
			if err != nil {
				return err
			}
			opts.Enabled = config.GetBool("status_enabled", true)
			line, err := status.RunStatusPanel(client, opts)
			if err != nil {
				return fmt.Errorf("status-panel: %w", err)
			}
			if line != "" {
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	panelCmd.Flags().StringVar(&opts.Format, "format", "", "Preset name or ${variable} template")
	panelCmd.Flags().BoolVar(&opts.Color, "color", false, "Paint with the highest unread priority color")
	panelCmd.Flags().BoolVar(&opts.ShowEmpty, "show-empty", false, "Print even when nothing is unread")
	panelCmd.Flags().BoolVar(&listVars, "variables", false, "List template variables")
	return panelCmd
}

func statusPanelClient(s *engineSession) opener[status.StatusPanelClient] {
	open := using[*engine.Engine](s)
	return func(ctx context.Context) (status.StatusPanelClient, error) {
		e, err := open(ctx)
		if err != nil {
			return nil, err
		}
		return &status.DefaultClient{Engine: e}, nil
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewStatusPanelCmd(statusPanelClient(session)))
}
