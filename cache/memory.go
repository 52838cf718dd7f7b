package cache

import (
	"context"
	"path"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store implementation for tests and
// single-process deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
	}
}

// Get retrieves a value. Returns ok=false on miss or expiry.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if time.Now().After(entry.expiresAt) {
		// Expired - clean up lazily
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}

	return entry.value, true, nil
}

// Set stores a value with the given TTL.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	s.mu.Lock()
	s.entries[key] = &memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	s.mu.Unlock()

	return nil
}

// Delete removes a value. Idempotent - no error on miss.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// DeletePattern removes all unexpired keys matching the glob pattern.
func (s *MemoryStore) DeletePattern(_ context.Context, pattern string) (int, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for key, entry := range s.entries {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return deleted, err
		}
		if !matched {
			continue
		}
		if now.Before(entry.expiresAt) {
			deleted++
		}
		delete(s.entries, key)
	}
	return deleted, nil
}

// Ping always succeeds: the process's own memory is reachable.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Len returns the number of entries, including not-yet-collected expired ones.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
