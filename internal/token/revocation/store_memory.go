package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process revocation list. Entries expire lazily on
// read; there is no background sweeper since the set of revoked-but-unexpired
// tokens stays small.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemory constructs an empty in-memory revocation list.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke marks jti as revoked for ttl.
func (s *MemoryStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[jti] = s.now().Add(ttl)
	return nil
}

// IsRevoked reports whether jti is revoked and not yet expired.
func (s *MemoryStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}

	s.mu.RLock()
	expiry, ok := s.entries[jti]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if s.now().After(expiry) {
		s.mu.Lock()
		delete(s.entries, jti)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}
