/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/alertdeck/cmd"
	"github.com/cristianoliveira/alertdeck/internal/colors"
	"github.com/cristianoliveira/alertdeck/internal/feed"
	"github.com/cristianoliveira/alertdeck/internal/logging"
	"github.com/cristianoliveira/alertdeck/internal/ports"
)

const replayCommandLong = `Replay a JSON lines feed of producer events.

Each line is one event:

    {"kind":"alert","title":"Flood","risk_level":8.2,"location":"Riverside","delay_ms":1500}
    {"title":"Backup done","type":"success","priority":"low"}

Blank lines and lines starting with # are skipped. Events without a kind
are alerts when they carry risk_level. Rejected events are reported and
skipped.

USAGE:
    alertdeck replay [--no-delay] <file|->`

// NewReplayCmd creates the replay command with explicit dependencies.
func NewReplayCmd(open opener[ports.NotificationWriter]) *cobra.Command {
	if open == nil {
		panic("NewReplayCmd: client dependency cannot be nil")
	}

	var noDelay bool
	replayCmd := &cobra.Command{
		Use:   "replay <file|->",
		Short: "Replay a feed of producer events",
		Long:  replayCommandLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			events, err := readFeed(args[0], c.InOrStdin())
			if err != nil {
				return err
			}
			client, err := open(c.Context())
			if err != nil {
				return err
			}
			replayer := feed.NewReplayer(client, logging.GetGlobal())
			if noDelay {
				replayer.Sleep = func(context.Context, time.Duration) error { return nil }
			}
			ids, err := replayer.Replay(c.Context(), events)
			for _, id := range ids {
				_, _ = fmt.Fprintln(c.OutOrStdout(), id)
			}
			if err != nil {
				return fmt.Errorf("replay: %w", err)
			}
			if skipped := len(events) - len(ids); skipped > 0 {
				colors.Warning(fmt.Sprintf("%d of %d events rejected", skipped, len(events)))
			}
			colors.Success(fmt.Sprintf("Replayed %d events", len(ids)))
			return nil
		},
	}
	replayCmd.Flags().BoolVar(&noDelay, "no-delay", false, "Ignore delay_ms")
	return replayCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewReplayCmd(using[ports.NotificationWriter](session)))
}
