package feed

import (
	"context"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/logging"
)

// Sink ingests events. The engine satisfies it.
type Sink interface {
	AddNotification(ctx context.Context, in domain.NotificationInput) (string, error)
	AddAlert(ctx context.Context, in domain.AlertInput) (string, error)
}

// Ingest sends ev to sink through the matching API.
func Ingest(ctx context.Context, sink Sink, ev Event) (string, error) {
	if ev.IsAlert() {
		return sink.AddAlert(ctx, ev.Alert)
	}
	return sink.AddNotification(ctx, ev.Notification)
}

// Replayer feeds events to a sink, waiting each event's delay first.
type Replayer struct {
	sink Sink
	log  logging.Logger
	// Sleep waits for d or until ctx is done. Defaults to a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewReplayer returns a replayer for sink.
func NewReplayer(sink Sink, log logging.Logger) *Replayer {
	if log == nil {
		log = logging.Nop()
	}
	return &Replayer{sink: sink, log: log.With("component", "feed"), Sleep: sleep}
}

// Replay ingests events in order and returns the created ids. Invalid
// events are logged and skipped; only cancellation stops the replay.
func (r *Replayer) Replay(ctx context.Context, events []Event) ([]string, error) {
	var ids []string
	for i, ev := range events {
		if ev.Delay > 0 {
			if err := r.Sleep(ctx, ev.Delay); err != nil {
				return ids, err
			}
		}
		if err := ctx.Err(); err != nil {
			return ids, err
		}
		id, err := Ingest(ctx, r.sink, ev)
		if err != nil {
			r.log.Warn("feed event rejected", "index", i, "title", ev.Title(), "error", err)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
