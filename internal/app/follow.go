package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/cristianoliveira/alertdeck/internal/colors"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/engine"
	"github.com/cristianoliveira/alertdeck/internal/ports"
	"github.com/cristianoliveira/alertdeck/internal/store"
)

// FollowOptions holds all parameters for follow behavior.
type FollowOptions struct {
	Output io.Writer
	// Filter limits which new records are printed.
	Filter domain.Filter
	// Ready, when set, is called once the subscription is in place.
	Ready func()
}

// FollowUseCase prints records as the engine admits them.
type FollowUseCase struct {
	client ports.ChangeFeed
}

// NewFollowUseCase creates a follow use-case.
func NewFollowUseCase(client ports.ChangeFeed) *FollowUseCase {
	if client == nil {
		panic("NewFollowUseCase: client dependency cannot be nil")
	}
	return &FollowUseCase{client: client}
}

// Execute prints new records until ctx is done or the process is
// interrupted.
func (u *FollowUseCase) Execute(ctx context.Context, opts FollowOptions) error {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := &followPrinter{w: opts.Output, filter: opts.Filter}
	unsubscribe := u.client.Subscribe(p.onState)
	defer unsubscribe()

	colors.Info("Following notifications (Ctrl+C to stop)...")
	if opts.Ready != nil {
		opts.Ready()
	}

	select {
	case <-ctx.Done():
	case sig := <-sigChan:
		_, _ = fmt.Fprintf(opts.Output, "\nReceived signal %v, stopping...\n", sig)
	}
	return nil
}

type followPrinter struct {
	mu         sync.Mutex
	w          io.Writer
	filter     domain.Filter
	lastCritID string
}

func (p *followPrinter) onState(st engine.State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if st.Change.Kind == store.ChangeAdded {
		for _, id := range st.Change.IDs {
			n, ok := findItem(st.Items, id)
			if !ok || !n.MatchesFilter(p.filter) {
				continue
			}
			printFollowNotification(p.w, n)
		}
	}

	critID := ""
	if st.Critical != nil {
		critID = st.Critical.ID
	}
	if critID != "" && critID != p.lastCritID {
		_, _ = fmt.Fprintf(p.w, "%s  └─ critical interrupt: %s%s\n", colors.Magenta, st.Critical.Title, colors.Reset)
	}
	p.lastCritID = critID
}

func findItem(items []domain.Notification, id string) (domain.Notification, bool) {
	for _, n := range items {
		if n.ID == id {
			return n, true
		}
	}
	return domain.Notification{}, false
}

func printFollowNotification(w io.Writer, n domain.Notification) {
	msg := fmt.Sprintf("[%s] [%s] %s", n.Timestamp.Local().Format("2006-01-02 15:04:05"), n.Priority, n.Title)
	if n.Message != "" {
		msg += ": " + n.Message
	}
	_, _ = fmt.Fprintln(w, colors.Paint(colors.ForPriority(string(n.Priority)), msg))
	if n.Alert != nil {
		detail := fmt.Sprintf("risk %.1f", n.Alert.RiskLevel)
		if n.Alert.Location != "" {
			detail += " at " + n.Alert.Location
		}
		if len(n.Alert.AffectedAreas) > 0 {
			detail += " (" + strings.Join(n.Alert.AffectedAreas, ", ") + ")"
		}
		_, _ = fmt.Fprintf(w, "  └─ %s\n", detail)
	}
	if n.Source != "" {
		_, _ = fmt.Fprintf(w, "  └─ from %s\n", n.Source)
	}
}
