package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/navaneethkutty/AFIRGen-1-sub004/cache"
	"github.com/navaneethkutty/AFIRGen-1-sub004/resilience"
)

// slowStore wraps a working store with an artificial ping delay.
type slowStore struct {
	cache.Store
	delay time.Duration
}

func (s *slowStore) Ping(ctx context.Context) error {
	time.Sleep(s.delay)
	return s.Store.Ping(ctx)
}

// deadStore fails every ping.
type deadStore struct {
	cache.Store
}

func (s *deadStore) Ping(context.Context) error {
	return errors.New("connection refused")
}

func TestStoreCheckerHealthy(t *testing.T) {
	c := NewStoreChecker("redis", cache.NewMemoryStore())

	if c.Name() != "redis" {
		t.Errorf("Name() = %q", c.Name())
	}

	r := c.Check(context.Background())
	if r.Status != StatusHealthy {
		t.Errorf("Check() status = %v, want healthy", r.Status)
	}
	if _, ok := r.Details["ping_latency"]; !ok {
		t.Error("Check() details missing ping_latency")
	}
}

func TestStoreCheckerDegradedWhenSlow(t *testing.T) {
	c := NewStoreChecker("redis", &slowStore{Store: cache.NewMemoryStore(), delay: 20 * time.Millisecond})
	c.SlowThreshold = 5 * time.Millisecond

	if r := c.Check(context.Background()); r.Status != StatusDegraded {
		t.Errorf("Check() status = %v, want degraded", r.Status)
	}
}

func TestStoreCheckerUnhealthy(t *testing.T) {
	c := NewStoreChecker("redis", &deadStore{Store: cache.NewMemoryStore()})

	r := c.Check(context.Background())
	if r.Status != StatusUnhealthy {
		t.Errorf("Check() status = %v, want unhealthy", r.Status)
	}
	if r.Err == nil {
		t.Error("Check() Err = nil, want the ping error")
	}
}

func TestBreakerCheckerStates(t *testing.T) {
	ctx := context.Background()
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:             "model-api",
		FailureThreshold: 2,
		RecoveryTimeout:  20 * time.Millisecond,
	})
	c := NewBreakerChecker(breaker)

	if c.Name() != "breaker:model-api" {
		t.Errorf("Name() = %q", c.Name())
	}

	if r := c.Check(ctx); r.Status != StatusHealthy {
		t.Errorf("closed breaker status = %v, want healthy", r.Status)
	}

	fail := func(context.Context) error { return errors.New("boom") }
	for i := 0; i < 2; i++ {
		_ = breaker.Execute(ctx, fail)
	}

	r := c.Check(ctx)
	if r.Status != StatusUnhealthy {
		t.Errorf("open breaker status = %v, want unhealthy", r.Status)
	}
	if !errors.Is(r.Err, resilience.ErrCircuitOpen) {
		t.Errorf("open breaker Err = %v, want ErrCircuitOpen", r.Err)
	}
	if r.Details["state"] != "open" {
		t.Errorf("Details[state] = %v, want open", r.Details["state"])
	}

	time.Sleep(30 * time.Millisecond)
	if r := c.Check(ctx); r.Status != StatusDegraded {
		t.Errorf("half-open breaker status = %v, want degraded", r.Status)
	}
}
