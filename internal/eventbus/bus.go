// Package eventbus provides a typed, in-process publish/subscribe bus.
//
// Deliveries are serialized: subscribers see events in publish order, one at
// a time. A Publish issued while a delivery is in progress (from a subscriber
// or from another goroutine) is queued and delivered by the goroutine that is
// already draining, so subscribers may call back into the publisher.
package eventbus

import "sync"

// Subscriber is a callback invoked for every published event.
type Subscriber[T any] func(T)

// Bus dispatches events of type T to subscribers.
type Bus[T any] struct {
	mu          sync.Mutex
	subscribers map[uint64]Subscriber[T]
	order       []uint64
	nextID      uint64
	queue       []T
	draining    bool
	onPanic     func(recovered any)
}

// New creates an empty bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{subscribers: make(map[uint64]Subscriber[T])}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus[T]) Subscribe(fn Subscriber[T]) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subscribers[id] = fn
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subscribers, id)
			for i, candidate := range b.order {
				if candidate == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// OnPanic sets the function told about a recovered subscriber panic. The
// panic is swallowed either way so the remaining subscribers still run.
func (b *Bus[T]) OnPanic(fn func(recovered any)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onPanic = fn
}

// Len returns the number of subscribers.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}

// Publish delivers ev to every subscriber in subscription order.
func (b *Bus[T]) Publish(ev T) {
	b.Enqueue(ev)
	b.Drain()
}

// Enqueue appends ev to the delivery queue without delivering it. Owners
// that publish while holding their own lock call Enqueue under the lock, so
// queue order matches mutation order, and Drain after releasing it.
func (b *Bus[T]) Enqueue(ev T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue = append(b.queue, ev)
}

// Drain delivers queued events until the queue is empty. It returns
// immediately if another call is already draining; that call delivers the
// events queued here.
func (b *Bus[T]) Drain() {
	b.mu.Lock()
	if b.draining {
		b.mu.Unlock()
		return
	}
	b.draining = true
	b.mu.Unlock()

	for {
		b.mu.Lock()
		if len(b.queue) == 0 {
			b.draining = false
			b.mu.Unlock()
			return
		}
		next := b.queue[0]
		b.queue = b.queue[1:]
		subs := make([]Subscriber[T], 0, len(b.order))
		for _, id := range b.order {
			subs = append(subs, b.subscribers[id])
		}
		b.mu.Unlock()

		for _, fn := range subs {
			b.deliver(fn, next)
		}
	}
}

// deliver runs one subscriber. A panicking subscriber must not leave the
// bus stuck in the draining state.
func (b *Bus[T]) deliver(fn Subscriber[T], ev T) {
	defer func() {
		if r := recover(); r != nil {
			b.mu.Lock()
			report := b.onPanic
			b.mu.Unlock()
			if report != nil {
				report(r)
			}
		}
	}()
	fn(ev)
}
