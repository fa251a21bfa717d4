// Package memory is the in-process audit store used in tests and deployments
// without a configured sink.
package memory

import (
	"context"
	"sync"

	"acont-edge/internal/audit"
)

// Store keeps events in memory, append-only.
type Store struct {
	mu     sync.RWMutex
	events []audit.Event
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Append records one event.
func (s *Store) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything appended so far.
func (s *Store) Events() []audit.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]audit.Event, len(s.events))
	copy(out, s.events)
	return out
}
