/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cristianoliveira/alertdeck/cmd"
	"github.com/cristianoliveira/alertdeck/internal/engine"
	tuiapp "github.com/cristianoliveira/alertdeck/internal/tui/app"
)

// NewWatchCmd creates the watch command with explicit dependencies.
func NewWatchCmd(open opener[*engine.Engine], runner tuiapp.ProgramRunner) *cobra.Command {
	if open == nil {
		panic("NewWatchCmd: client dependency cannot be nil")
	}

	var producers producerFlags
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Open the interactive notification deck",
		Long: `Open the interactive deck: the notification list, the toast stack and
the critical interrupt.

USAGE:
    alertdeck watch [--feed <file>] [--http] [--addr <addr>]

KEYS:
    j/k move, r read, R read all, d dismiss, C clear, / search,
    D hide dismissed, t close toasts, p pause toasts, h hold top toast,
    esc dismiss critical, 1-9 critical action, ? help, q quit`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			e, err := open(c.Context())
			if err != nil {
				return err
			}
			e.Start()

			ctx, cancel := context.WithCancel(c.Context())
			defer cancel()
			g, gctx := errgroup.WithContext(ctx)
			if err := producers.start(gctx, g, e, c.InOrStdin()); err != nil {
				return err
			}

			err = tuiapp.NewClient(runner).Run(gctx, e)
			cancel()
			if werr := g.Wait(); werr != nil && err == nil {
				err = werr
			}
			return err
		},
	}
	producers.register(watchCmd, false)
	return watchCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewWatchCmd(using[*engine.Engine](session), nil))
}
