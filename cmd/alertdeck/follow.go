/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cristianoliveira/alertdeck/cmd"
	"github.com/cristianoliveira/alertdeck/internal/app"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/engine"
)

// NewFollowCmd creates the follow command with explicit dependencies.
func NewFollowCmd(open opener[*engine.Engine]) *cobra.Command {
	if open == nil {
		panic("NewFollowCmd: client dependency cannot be nil")
	}

	var producers producerFlags
	var filterOpts domain.FilterOptions
	followCmd := &cobra.Command{
		Use:   "follow",
		Short: "Print notifications as they arrive",
		Long: `Print notifications as the engine admits them.

USAGE:
    alertdeck follow [--feed <file>] [--http] [OPTIONS]

OPTIONS:
    --feed <file>        Replay a JSON lines feed (- for stdin)
    --no-delay           Ignore delay_ms in the feed
    --http               Also serve the HTTP API so producers can post
    --addr <addr>        HTTP listen address
    --alerts             Only print risk-driven alerts
    --priority <a,b>     Only print these priorities
    -h, --help           Show this help`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			filter, err := filterOpts.ToFilter(time.Now())
			if err != nil {
				return err
			}
			e, err := open(c.Context())
			if err != nil {
				return err
			}
			e.Start()

			ctx, cancel := context.WithCancel(c.Context())
			defer cancel()
			g, gctx := errgroup.WithContext(ctx)

			var startErr error
			err = app.NewFollowUseCase(e).Execute(gctx, app.FollowOptions{
				Output: c.OutOrStdout(),
				Filter: filter,
				Ready: func() {
					if startErr = producers.start(gctx, g, e, c.InOrStdin()); startErr != nil {
						cancel()
					}
				},
			})
			cancel()
			if startErr != nil {
				return startErr
			}
			if werr := g.Wait(); werr != nil {
				return werr
			}
			return err
		},
	}
	producers.register(followCmd, false)
	followCmd.Flags().BoolVar(&filterOpts.AlertsOnly, "alerts", false, "Only print risk-driven alerts")
	followCmd.Flags().StringVar(&filterOpts.Priorities, "priority", "", "Only print these priorities")
	return followCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewFollowCmd(using[*engine.Engine](session)))
}
