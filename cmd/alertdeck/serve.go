/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cristianoliveira/alertdeck/cmd"
	"github.com/cristianoliveira/alertdeck/internal/engine"
)

// NewServeCmd creates the serve command with explicit dependencies.
func NewServeCmd(open opener[*engine.Engine]) *cobra.Command {
	if open == nil {
		panic("NewServeCmd: client dependency cannot be nil")
	}

	producers := producerFlags{serve: true}
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API until interrupted.

USAGE:
    alertdeck serve [--addr <addr>] [--feed <file>]

Routes live under /api. When http_tokens is set every /api request needs
"Authorization: Bearer <token>" or "X-API-Key: <token>".`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			e, err := open(c.Context())
			if err != nil {
				return err
			}
			e.Start()

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			g, gctx := errgroup.WithContext(ctx)
			if err := producers.start(gctx, g, e, c.InOrStdin()); err != nil {
				return err
			}
			return g.Wait()
		},
	}
	producers.register(serveCmd, true)
	return serveCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewServeCmd(using[*engine.Engine](session)))
}
