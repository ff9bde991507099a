package engine

import (
	"context"
	"sync"
	"time"

	"github.com/cristianoliveira/alertdeck/internal/logging"
	"github.com/cristianoliveira/alertdeck/internal/storage"
	"github.com/cristianoliveira/alertdeck/internal/store"
)

const saveTimeout = 5 * time.Second

// persister writes store snapshots to the cache on its own goroutine.
// Only the latest pending snapshot is written; failures are logged.
type persister struct {
	cache storage.Cache
	log   logging.Logger

	mu        sync.Mutex
	cond      *sync.Cond
	latest    store.Snapshot
	hasLatest bool
	requested uint64
	saved     uint64
	stopped   bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func newPersister(cache storage.Cache, log logging.Logger) *persister {
	p := &persister{
		cache: cache,
		log:   log.With("component", "persister"),
		wake:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	go p.run()
	return p
}

// offer records snap for saving. It never blocks.
func (p *persister) offer(snap store.Snapshot) {
	if snap.Change.Kind == store.ChangeRestored {
		return
	}
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.latest = snap
	p.hasLatest = true
	p.requested = snap.Version
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *persister) run() {
	defer close(p.done)
	for {
		select {
		case <-p.wake:
			p.saveLatest()
		case <-p.stop:
			p.saveLatest()
			return
		}
	}
}

func (p *persister) saveLatest() {
	p.mu.Lock()
	if !p.hasLatest {
		p.mu.Unlock()
		return
	}
	snap := p.latest
	p.hasLatest = false
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	err := p.cache.Save(ctx, snap.Items())
	cancel()
	if err != nil {
		p.log.Warn("cache save failed", "version", snap.Version, "error", err)
	}

	p.mu.Lock()
	if snap.Version > p.saved {
		p.saved = snap.Version
	}
	p.cond.Broadcast()
	p.mu.Unlock()
}

// Flush blocks until every offered snapshot was written or the persister
// stopped.
func (p *persister) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.saved < p.requested && !p.stopped {
		p.cond.Wait()
	}
}

// Close writes the last pending snapshot and closes the cache.
func (p *persister) Close() error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	p.cond.Broadcast()
	p.mu.Unlock()

	close(p.stop)
	<-p.done
	return p.cache.Close()
}
