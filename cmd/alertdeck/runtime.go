/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cristianoliveira/alertdeck/internal/config"
	"github.com/cristianoliveira/alertdeck/internal/engine"
	"github.com/cristianoliveira/alertdeck/internal/feed"
	"github.com/cristianoliveira/alertdeck/internal/httpapi"
	"github.com/cristianoliveira/alertdeck/internal/logging"
)

// producerFlags selects the producers that feed a long-running engine.
type producerFlags struct {
	feedPath string
	noDelay  bool
	serve    bool
	addr     string
}

func (p *producerFlags) register(c *cobra.Command, serveByDefault bool) {
	c.Flags().StringVar(&p.feedPath, "feed", "", "Replay a JSON lines feed file (- for stdin)")
	c.Flags().BoolVar(&p.noDelay, "no-delay", false, "Ignore delay_ms in the feed")
	if !serveByDefault {
		c.Flags().BoolVar(&p.serve, "http", false, "Also serve the HTTP API")
	}
	c.Flags().StringVar(&p.addr, "addr", "", "HTTP listen address (default from http_addr)")
}

// start runs the selected producers on g until ctx is done.
func (p *producerFlags) start(ctx context.Context, g *errgroup.Group, e *engine.Engine, in io.Reader) error {
	log := logging.GetGlobal()
	if p.feedPath != "" {
		events, err := readFeed(p.feedPath, in)
		if err != nil {
			return err
		}
		replayer := feed.NewReplayer(e, log)
		if p.noDelay {
			replayer.Sleep = func(context.Context, time.Duration) error { return nil }
		}
		g.Go(func() error {
			_, err := replayer.Replay(ctx, events)
			if err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		})
	}
	if p.serve {
		addr := p.addr
		if addr == "" {
			addr = config.Get("http_addr", "127.0.0.1:8787")
		}
		srv := httpapi.NewServer(e, httpapi.OptionsFromConfig(log))
		g.Go(func() error {
			return srv.ListenAndServe(ctx, addr)
		})
	}
	return nil
}

func readFeed(path string, stdin io.Reader) ([]feed.Event, error) {
	if path == "-" {
		return feed.DecodeAll(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer f.Close()
	events, err := feed.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}
