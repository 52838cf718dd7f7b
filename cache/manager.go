package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/navaneethkutty/AFIRGen-1-sub004/observe"
)

// Manager orchestrates cache-aside access over a Store.
//
// Contract:
// - Concurrency: safe for concurrent use; concurrent misses on the same
//   key each invoke their own fetch (no coalescing - last write wins).
// - Degradation: store infrastructure failures never propagate; Get
//   reports a miss, Set/Delete report false, InvalidatePattern reports 0.
// - Fetch errors: errors from a caller-supplied fetch function always
//   propagate unchanged.
type Manager struct {
	store    Store
	policy   Policy
	log      observe.Logger
	recorder observe.Recorder
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the structured logger. Default: discard.
func WithLogger(log observe.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// WithRecorder sets the metrics recorder. Default: discard.
func WithRecorder(r observe.Recorder) ManagerOption {
	return func(m *Manager) {
		m.recorder = r
	}
}

// NewManager creates a cache manager over the given store.
func NewManager(store Store, policy Policy, opts ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	m := &Manager{
		store:    store,
		policy:   policy,
		log:      observe.NopLogger(),
		recorder: observe.NopRecorder(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Get retrieves the raw cached bytes for key. A backend failure is
// reported as a miss, never as an error.
func (m *Manager) Get(ctx context.Context, key string) ([]byte, bool) {
	if err := ValidateKey(key); err != nil {
		m.log.Warn(ctx, "cache get skipped", observe.Field{Key: "key", Value: key}, observe.Field{Key: "error", Value: err.Error()})
		return nil, false
	}

	value, ok, err := m.store.Get(ctx, key)
	if err != nil {
		m.backendFailure(ctx, "get", key, err)
		return nil, false
	}

	ns := KeyNamespace(key)
	if ok {
		m.recorder.CacheHit(ctx, ns)
	} else {
		m.recorder.CacheMiss(ctx, ns)
	}
	return value, ok
}

// Set serializes value and stores it under key. The TTL is defaulted and
// clamped by the policy, so every entry expires. Returns false (never an
// error) when the backend rejects the write.
func (m *Manager) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if err := ValidateKey(key); err != nil {
		m.log.Warn(ctx, "cache set skipped", observe.Field{Key: "key", Value: key}, observe.Field{Key: "error", Value: err.Error()})
		return false
	}

	data, err := marshalValue(value)
	if err != nil {
		m.log.Warn(ctx, "cache set skipped: unserializable value",
			observe.Field{Key: "key", Value: key},
			observe.Field{Key: "error", Value: err.Error()})
		return false
	}

	if err := m.store.Set(ctx, key, data, m.policy.EffectiveTTL(ttl)); err != nil {
		m.backendFailure(ctx, "set", key, err)
		return false
	}
	return true
}

// Delete removes key. Returns false on backend failure.
func (m *Manager) Delete(ctx context.Context, key string) bool {
	if err := m.store.Delete(ctx, key); err != nil {
		m.backendFailure(ctx, "delete", key, err)
		return false
	}
	return true
}

// InvalidatePattern deletes all keys in the namespace matching the glob
// pattern and returns the number deleted, 0 on backend failure. Called by
// collaborators after data mutations, e.g. InvalidatePattern(ctx, "fir",
// "record:*") when a report record changes.
func (m *Manager) InvalidatePattern(ctx context.Context, namespace, pattern string) int {
	full := namespace + Separator + pattern

	count, err := m.store.DeletePattern(ctx, full)
	if err != nil {
		m.backendFailure(ctx, "invalidate", full, err)
		return 0
	}

	m.log.Debug(ctx, "cache pattern invalidated",
		observe.Field{Key: "pattern", Value: full},
		observe.Field{Key: "deleted", Value: count})
	return count
}

// FetchFunc loads a value from the source of truth on cache miss.
// When the source is itself an unreliable remote dependency, hand in a
// resilience.Executor-wrapped call.
type FetchFunc func(ctx context.Context) ([]byte, error)

// GetOrFetch is the cache-aside primitive. On hit it returns the cached
// bytes without calling fetch. On miss - including a backend outage,
// which is indistinguishable from a miss here - it calls fetch exactly
// once, propagates fetch's error unchanged, and otherwise best-effort
// caches and returns the fetched value. A failed cache write only
// degrades the hit rate; it never fails the call.
func (m *Manager) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) ([]byte, error) {
	if cached, ok := m.Get(ctx, key); ok {
		return cached, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if !m.Set(ctx, key, value, ttl) {
		m.log.Warn(ctx, "cache population failed after fetch",
			observe.Field{Key: "key", Value: key})
	}
	return value, nil
}

// Ping probes the backing store.
func (m *Manager) Ping(ctx context.Context) error {
	if err := m.store.Ping(ctx); err != nil {
		m.backendFailure(ctx, "ping", "", err)
		return err
	}
	return nil
}

func (m *Manager) backendFailure(ctx context.Context, op, key string, err error) {
	m.recorder.CacheBackendFailure(ctx, op)
	m.log.Warn(ctx, "cache backend failure",
		observe.Field{Key: "op", Value: op},
		observe.Field{Key: "key", Value: key},
		observe.Field{Key: "error", Value: err.Error()})
}

func marshalValue(value any) ([]byte, error) {
	if b, ok := value.([]byte); ok {
		return b, nil
	}
	return json.Marshal(value)
}

// GetOrFetchJSON is the typed form of Manager.GetOrFetch: cached bytes
// are decoded as JSON into T, and a fetched T is JSON-encoded before the
// best-effort cache write. An undecodable cached entry is treated as a
// miss and refetched.
func GetOrFetchJSON[T any](ctx context.Context, m *Manager, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	if cached, ok := m.Get(ctx, key); ok {
		var v T
		if err := json.Unmarshal(cached, &v); err == nil {
			return v, nil
		}
		// Corrupt entry: drop it and fall through to the source of truth.
		m.Delete(ctx, key)
	}

	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	m.Set(ctx, key, v, ttl)
	return v, nil
}
