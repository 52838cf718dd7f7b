package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisStore(RedisConfig{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("NewRedisStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisConfigApplyDefaults(t *testing.T) {
	var cfg RedisConfig
	cfg.ApplyDefaults()

	if cfg.Addr != "localhost:6379" {
		t.Errorf("Addr = %q, want localhost:6379", cfg.Addr)
	}
	if cfg.PoolSize != 10 {
		t.Errorf("PoolSize = %d, want 10", cfg.PoolSize)
	}
	if cfg.DialTimeout != 5*time.Second {
		t.Errorf("DialTimeout = %v, want 5s", cfg.DialTimeout)
	}
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	_, err := NewRedisStore(RedisConfig{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("NewRedisStore() succeeded against unreachable address")
	}
}

func TestRedisStoreSetGet(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	if err := store.Set(ctx, "fir:record:1", []byte(`{"status":"pending"}`), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := store.Get(ctx, "fir:record:1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false, want hit")
	}
	if !bytes.Equal(got, []byte(`{"status":"pending"}`)) {
		t.Errorf("Get() = %q", got)
	}
}

func TestRedisStoreMiss(t *testing.T) {
	store, _ := newTestRedisStore(t)

	_, ok, err := store.Get(context.Background(), "fir:record:absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true for absent key")
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	if err := store.Set(ctx, "fir:record:1", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	mr.FastForward(2 * time.Hour)

	_, ok, err := store.Get(ctx, "fir:record:1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true after TTL elapsed")
	}
}

func TestRedisStoreRejectsNonPositiveTTL(t *testing.T) {
	store, _ := newTestRedisStore(t)

	if err := store.Set(context.Background(), "k", []byte("v"), 0); !errors.Is(err, ErrInvalidTTL) {
		t.Errorf("Set(ttl=0) error = %v, want ErrInvalidTTL", err)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	if err := store.Set(ctx, "fir:record:1", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Delete(ctx, "fir:record:1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := store.Get(ctx, "fir:record:1"); ok {
		t.Error("key still present after Delete")
	}
	if err := store.Delete(ctx, "fir:record:1"); err != nil {
		t.Errorf("Delete() of absent key error = %v", err)
	}
}

func TestRedisStoreDeletePattern(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	for i := 0; i < 250; i++ {
		key := Key("fir", "record", fmt.Sprintf("%d", i))
		if err := store.Set(ctx, key, []byte("v"), time.Hour); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}
	if err := store.Set(ctx, "session:user:1", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	n, err := store.DeletePattern(ctx, "fir:record:*")
	if err != nil {
		t.Fatalf("DeletePattern() error = %v", err)
	}
	if n != 250 {
		t.Errorf("DeletePattern() = %d, want 250", n)
	}

	if _, ok, _ := store.Get(ctx, "session:user:1"); !ok {
		t.Error("unrelated namespace was deleted")
	}
}

func TestRedisStoreDeletePatternNoMatches(t *testing.T) {
	store, _ := newTestRedisStore(t)

	n, err := store.DeletePattern(context.Background(), "fir:record:*")
	if err != nil {
		t.Fatalf("DeletePattern() error = %v", err)
	}
	if n != 0 {
		t.Errorf("DeletePattern() = %d, want 0", n)
	}
}

func TestRedisStorePing(t *testing.T) {
	store, mr := newTestRedisStore(t)

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}

	mr.Close()
	if err := store.Ping(context.Background()); err == nil {
		t.Error("Ping() succeeded after server shutdown")
	}
}
