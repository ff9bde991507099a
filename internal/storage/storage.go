// Package storage selects the best-effort cache that survives restarts of
// the notification list.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cristianoliveira/alertdeck/internal/config"
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/cristianoliveira/alertdeck/internal/logging"
	"github.com/cristianoliveira/alertdeck/internal/storage/sqlite"
)

const (
	// BackendSQLite keeps the list in {state_dir}/notifications.db.
	BackendSQLite = "sqlite"
	// BackendMemory keeps the list for the life of the process only.
	BackendMemory = "memory"
	// BackendNone disables caching.
	BackendNone = "none"

	notificationsDBFileName = "notifications.db"
)

// Cache persists full snapshots of the notification list.
type Cache interface {
	Load(ctx context.Context) ([]domain.Notification, error)
	Save(ctx context.Context, items []domain.Notification) error
	Close() error
}

var _ Cache = (*sqlite.Cache)(nil)

// NewFromConfig picks the backend from the cache_enabled and cache_backend keys.
func NewFromConfig(ctx context.Context, log logging.Logger) Cache {
	if !config.GetBool("cache_enabled", true) {
		return Nop{}
	}
	return NewForBackend(ctx, config.Get("cache_backend", BackendSQLite), config.Get("state_dir", ""), log)
}

// NewForBackend creates the named backend. Failures fall back to an
// in-memory cache and are logged; a cache never blocks the engine.
func NewForBackend(ctx context.Context, backend, stateDir string, log logging.Logger) Cache {
	if log == nil {
		log = logging.Nop()
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		path := filepath.Join(stateDir, notificationsDBFileName)
		c, err := sqlite.Open(ctx, path)
		if err != nil {
			log.Warn("sqlite cache unavailable, falling back to memory", "path", path, "error", err)
			return NewMemory()
		}
		log.Debug("sqlite cache opened", "path", path)
		return c
	case BackendMemory:
		return NewMemory()
	case BackendNone:
		return Nop{}
	default:
		log.Warn(fmt.Sprintf("unknown cache backend '%s', falling back to memory", backend))
		return NewMemory()
	}
}

// Nop caches nothing.
type Nop struct{}

// Load returns an empty list.
func (Nop) Load(context.Context) ([]domain.Notification, error) { return nil, nil }

// Save discards items.
func (Nop) Save(context.Context, []domain.Notification) error { return nil }

// Close does nothing.
func (Nop) Close() error { return nil }

// Memory is a process-local Cache.
type Memory struct {
	mu    sync.Mutex
	items []domain.Notification
	saves int
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns copies of the saved items. Effects are stripped to match
// what a persistent backend can restore.
func (m *Memory) Load(context.Context) ([]domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneForCache(m.items), nil
}

// Save replaces the saved items.
func (m *Memory) Save(_ context.Context, items []domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = cloneForCache(items)
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Close does nothing.
func (m *Memory) Close() error { return nil }

func cloneForCache(items []domain.Notification) []domain.Notification {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.Notification, len(items))
	for i, n := range items {
		out[i] = n.Clone()
		for j := range out[i].Actions {
			out[i].Actions[j].Effect = nil
		}
	}
	return out
}
