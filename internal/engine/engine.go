// Package engine is the alert delivery engine: it owns the notification
// store, the popup gate, the critical queue, the toast stack, the janitor
// and the query view, and exposes them as one service object.
//
// Every mutation and every timer callback runs under the engine lock, so
// the presentation components never diverge from the store. Subscribers
// receive a State after each change, outside the lock.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/clock"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/eventbus"
	"github.com/cristianoliveira/alertdeck/internal/janitor"
	"github.com/cristianoliveira/alertdeck/internal/logging"
	"github.com/cristianoliveira/alertdeck/internal/popup"
	"github.com/cristianoliveira/alertdeck/internal/query"
	"github.com/cristianoliveira/alertdeck/internal/search"
	"github.com/cristianoliveira/alertdeck/internal/settings"
	"github.com/cristianoliveira/alertdeck/internal/sound"
	"github.com/cristianoliveira/alertdeck/internal/storage"
	"github.com/cristianoliveira/alertdeck/internal/store"
	"github.com/cristianoliveira/alertdeck/internal/toast"
)

var (
	// ErrClosed is returned by ingestion after Close.
	ErrClosed = errors.New("engine is closed")
	// ErrEffectFailed wraps the error of an action effect.
	ErrEffectFailed = errors.New("action effect failed")
)

// Options configures an Engine. Zero values take the documented defaults.
type Options struct {
	Scheduler clock.Scheduler
	Settings  *settings.NotificationSettings
	// SettingsPath, when set, receives every settings update.
	SettingsPath string
	Cache        storage.Cache
	Sound        sound.Advisor
	Search       search.Provider

	MaxVisibleToasts int
	ToastDirection   toast.Direction
	ToastPosition    toast.Position
	// DefaultDuration is the toast duration for inputs that set none. Zero
	// uses domain.DefaultToastDuration; negative makes such toasts persistent.
	DefaultDuration time.Duration
	CriticalTimeout time.Duration
	JanitorInterval time.Duration
	Retention       time.Duration

	NewID  func() string
	Logger logging.Logger
}

// Engine is the alert delivery engine. It is safe for concurrent use.
type Engine struct {
	sched        clock.Scheduler
	log          logging.Logger
	settingsPath string
	sound        sound.Advisor
	soundWait    func()

	store   *store.Store
	view    *query.View
	janitor *janitor.Janitor
	persist *persister
	bus     *eventbus.Bus[State]

	mu       sync.Mutex
	settings settings.NotificationSettings
	gate     *popup.Gate
	critical *popup.CriticalQueue
	toasts   *toast.Scheduler
	version  uint64
	closed   bool
}

// New builds an engine and restores the cached list. Cache failures are
// logged and leave the engine empty. The janitor does not run until Start.
func New(ctx context.Context, opts Options) (*Engine, error) {
	if opts.Scheduler == nil {
		opts.Scheduler = clock.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Cache == nil {
		opts.Cache = storage.Nop{}
	}
	current := settings.Defaults()
	if opts.Settings != nil {
		if err := settings.Validate(*opts.Settings); err != nil {
			return nil, err
		}
		current = opts.Settings.Clone()
	}
	defaultDuration := opts.DefaultDuration
	switch {
	case defaultDuration == 0:
		defaultDuration = domain.DefaultToastDuration
	case defaultDuration < 0:
		defaultDuration = 0
	}

	log := opts.Logger.With("component", "engine")
	e := &Engine{
		sched:        opts.Scheduler,
		log:          log,
		settingsPath: opts.SettingsPath,
		sound:        sound.NewSafe(opts.Sound, opts.Logger),
		view:         query.NewView(opts.Search),
		bus:          eventbus.New[State](),
		settings:     current,
		gate:         popup.NewGate(opts.Scheduler, opts.Logger),
	}
	e.bus.OnPanic(func(r any) { log.Error("subscriber panicked", "panic", r) })
	if w, ok := opts.Sound.(interface{ Wait() }); ok {
		e.soundWait = w.Wait
	}
	e.store = store.New(store.Options{
		Clock:           opts.Scheduler,
		DefaultDuration: defaultDuration,
		NewID:           opts.NewID,
		Logger:          opts.Logger,
	})
	e.critical = popup.NewCriticalQueue(popup.QueueOptions{
		Scheduler: opts.Scheduler,
		Timeout:   opts.CriticalTimeout,
		OnTimeout: e.onCriticalTimeout,
		Logger:    opts.Logger,
	})
	e.toasts = toast.New(toast.Options{
		Scheduler:  opts.Scheduler,
		MaxVisible: opts.MaxVisibleToasts,
		Direction:  opts.ToastDirection,
		Position:   opts.ToastPosition,
		OnExpire:   e.onToastExpire,
		Logger:     opts.Logger,
	})
	e.janitor = janitor.New(sweepTarget{e}, janitor.Options{
		Scheduler: opts.Scheduler,
		Interval:  opts.JanitorInterval,
		Retention: opts.Retention,
		Logger:    opts.Logger,
	})

	items, err := opts.Cache.Load(ctx)
	if err != nil {
		log.Warn("cache load failed, starting empty", "error", err)
		items = nil
	}
	if len(items) > 0 {
		e.store.Restore(items)
	}
	e.persist = newPersister(opts.Cache, opts.Logger)
	e.store.Subscribe(e.persist.offer)
	return e, nil
}

// Start begins the periodic janitor sweep.
func (e *Engine) Start() {
	e.janitor.Start()
}

// Close stops the janitor, cancels every presentation timer and flushes
// the cache. Ingestion fails with ErrClosed afterwards; queries keep
// answering from the final state.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.janitor.Stop()
	e.critical.Reset()
	e.toasts.DismissAll()
	e.mu.Unlock()

	if e.soundWait != nil {
		e.soundWait()
	}
	return e.persist.Close()
}

// Subscribe registers fn for every State published after a change.
func (e *Engine) Subscribe(fn func(State)) (unsubscribe func()) {
	return e.bus.Subscribe(fn)
}

// State returns the current engine state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked(store.Change{})
}

// Flush waits until the latest store snapshot reached the cache.
func (e *Engine) Flush() {
	e.persist.Flush()
}

// publishLocked reconciles the presentation state with the store and
// queues a State. Callers drain the bus after unlocking.
func (e *Engine) publishLocked(change store.Change) {
	e.reconcileLocked()
	e.version++
	e.bus.Enqueue(e.stateLocked(change))
}

// reconcileLocked drops presented records that the store removed or
// dismissed. The store wins on any disagreement.
func (e *Engine) reconcileLocked() {
	snap := e.store.Snapshot()
	gone := func(id string) bool {
		n, ok := snap.Get(id)
		return !ok || n.Dismissed
	}
	for {
		cur, ok := e.critical.Current()
		if !ok || !gone(cur.ID) {
			break
		}
		e.critical.Drop(cur.ID)
	}
	for _, n := range e.critical.Backlog() {
		if gone(n.ID) {
			e.critical.Drop(n.ID)
		}
	}
	for _, id := range e.toasts.IDs() {
		if gone(id) {
			e.toasts.Drop(id)
		}
	}
}

// sweepTarget routes janitor sweeps through the engine lock.
type sweepTarget struct{ e *Engine }

func (t sweepTarget) RemoveWhere(pred func(n domain.Notification) bool) []string {
	e := t.e
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	ids := e.store.RemoveWhere(pred)
	if len(ids) > 0 {
		e.publishLocked(store.Change{Kind: store.ChangeRemoved, IDs: ids})
	}
	e.mu.Unlock()
	e.bus.Drain()
	return ids
}
