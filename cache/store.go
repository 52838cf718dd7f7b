package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for store operations.
var (
	// ErrNilStore indicates a nil Store was provided.
	ErrNilStore = errors.New("cache: store is nil")

	// ErrInvalidTTL indicates a non-positive TTL. Every entry written by
	// this layer must expire; nothing is persisted indefinitely.
	ErrInvalidTTL = errors.New("cache: ttl must be positive")
)

// Store is the key-value backend consumed by the Manager.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: infrastructure failures are returned as errors; the Manager
//   absorbs them. A missing key is (nil, false, nil), not an error.
// - TTL: Set must reject ttl <= 0 with ErrInvalidTTL.
type Store interface {
	// Get retrieves the raw bytes for key. ok=false on miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Idempotent - no error on miss.
	Delete(ctx context.Context, key string) error

	// DeletePattern removes every key matching the glob pattern and
	// returns the number of keys deleted.
	DeletePattern(ctx context.Context, pattern string) (int, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
