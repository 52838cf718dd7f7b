package resilience

import (
	"context"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means calls flow through normally.
	StateClosed State = iota
	// StateOpen means calls are rejected without invoking the dependency.
	StateOpen
	// StateHalfOpen means trial calls probe whether the dependency recovered.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures a circuit breaker.
type CircuitBreakerConfig struct {
	// Name identifies the protected dependency, e.g. the model server.
	Name string

	// FailureThreshold is the number of consecutive failures that opens
	// the circuit. Default: 5
	FailureThreshold int

	// RecoveryTimeout is how long the circuit stays open before allowing
	// a trial call. Default: 30 seconds
	RecoveryTimeout time.Duration

	// HalfOpenMaxCalls is the number of consecutive half-open successes
	// required to close the circuit. Default: 1
	HalfOpenMaxCalls int

	// OnStateChange is called after a state transition, outside hot-path
	// decisions but inside the breaker's critical section; keep it cheap.
	OnStateChange func(name string, from, to State)

	// IsFailure determines whether an error counts against the threshold.
	// Default: all non-nil errors are failures.
	IsFailure func(err error) bool
}

// CircuitBreaker short-circuits calls to a failing dependency.
//
// One long-lived instance guards each protected dependency; every state
// read and the subsequent write for a single call happen under the
// breaker's mutex, so concurrent callers never observe a torn transition.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu                sync.Mutex
	state             State
	failures          int
	halfOpenSuccesses int
	lastFailure       time.Time
}

// NewCircuitBreaker creates a circuit breaker in the closed state.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.RecoveryTimeout <= 0 {
		config.RecoveryTimeout = 30 * time.Second
	}
	if config.HalfOpenMaxCalls <= 0 {
		config.HalfOpenMaxCalls = 1
	}
	if config.IsFailure == nil {
		config.IsFailure = func(err error) bool { return err != nil }
	}

	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
	}
}

// Execute runs op through the circuit breaker.
//
// When the circuit is open and the recovery timeout has not elapsed, it
// returns ErrCircuitOpen without invoking op. Otherwise it invokes op and
// propagates op's own error after updating breaker state.
func (cb *CircuitBreaker) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := cb.beforeCall(); err != nil {
		return err
	}

	err := op(ctx)
	cb.afterCall(err)
	return err
}

// Name returns the name of the protected dependency.
func (cb *CircuitBreaker) Name() string {
	return cb.config.Name
}

// State returns the current circuit state, applying the open -> half-open
// transition if the recovery timeout has elapsed.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.stateLocked()
}

// Reset forces the breaker back to closed with counters cleared.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	from := cb.state
	cb.state = StateClosed
	cb.failures = 0
	cb.halfOpenSuccesses = 0

	if from != StateClosed {
		cb.notify(from, StateClosed)
	}
}

func (cb *CircuitBreaker) beforeCall() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.stateLocked() == StateOpen {
		return ErrCircuitOpen
	}
	return nil
}

func (cb *CircuitBreaker) afterCall(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	failed := cb.config.IsFailure(err)

	switch cb.state {
	case StateClosed:
		if failed {
			cb.failures++
			cb.lastFailure = time.Now()
			if cb.failures >= cb.config.FailureThreshold {
				cb.transition(StateOpen)
			}
		} else {
			cb.failures = 0
		}

	case StateHalfOpen:
		if failed {
			// Trial failed; restart the recovery clock.
			cb.halfOpenSuccesses = 0
			cb.lastFailure = time.Now()
			cb.transition(StateOpen)
		} else {
			cb.halfOpenSuccesses++
			if cb.halfOpenSuccesses >= cb.config.HalfOpenMaxCalls {
				cb.failures = 0
				cb.halfOpenSuccesses = 0
				cb.transition(StateClosed)
			}
		}
	}
}

// stateLocked returns the effective state, moving open to half-open once
// the recovery timeout has elapsed. Callers must hold cb.mu.
func (cb *CircuitBreaker) stateLocked() State {
	if cb.state == StateOpen && time.Since(cb.lastFailure) >= cb.config.RecoveryTimeout {
		cb.halfOpenSuccesses = 0
		cb.transition(StateHalfOpen)
	}
	return cb.state
}

func (cb *CircuitBreaker) transition(to State) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to
	cb.notify(from, to)
}

func (cb *CircuitBreaker) notify(from, to State) {
	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.config.Name, from, to)
	}
}

// Snapshot is a point-in-time view of breaker state.
type Snapshot struct {
	Name              string
	State             State
	Failures          int
	HalfOpenSuccesses int
	LastFailure       time.Time
}

// Snapshot returns the current breaker counters.
func (cb *CircuitBreaker) Snapshot() Snapshot {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return Snapshot{
		Name:              cb.config.Name,
		State:             cb.stateLocked(),
		Failures:          cb.failures,
		HalfOpenSuccesses: cb.halfOpenSuccesses,
		LastFailure:       cb.lastFailure,
	}
}
