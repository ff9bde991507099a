/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/cristianoliveira/alertdeck/internal/engine"
	"github.com/cristianoliveira/alertdeck/internal/logging"
)

// opener returns a command dependency once flags are parsed and the
// configuration is loaded.
type opener[T any] func(ctx context.Context) (T, error)

// engineSession opens the engine from configuration on first use, so
// commands that never touch it do not load the cache.
type engineSession struct {
	mu   sync.Mutex
	eng  *engine.Engine
	open func(ctx context.Context) (*engine.Engine, error)
}

var session = &engineSession{
	open: func(ctx context.Context) (*engine.Engine, error) {
		return engine.NewFromConfig(ctx, logging.GetGlobal())
	},
}

func (s *engineSession) Engine(ctx context.Context) (*engine.Engine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.eng != nil {
		return s.eng, nil
	}
	e, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open engine: %w", err)
	}
	s.eng = e
	return e, nil
}

// Close flushes the cache and stops the engine's timers.
func (s *engineSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.eng == nil {
		return nil
	}
	err := s.eng.Close()
	s.eng = nil
	return err
}

// using adapts the session to the narrow client a command depends on.
func using[T any](s *engineSession) opener[T] {
	return func(ctx context.Context) (T, error) {
		var zero T
		e, err := s.Engine(ctx)
		if err != nil {
			return zero, err
		}
		client, ok := any(e).(T)
		if !ok {
			return zero, fmt.Errorf("engine does not provide %s", reflect.TypeOf((*T)(nil)).Elem())
		}
		return client, nil
	}
}
