package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/navaneethkutty/AFIRGen-1-sub004/classify"
)

// Policy configures exponential backoff for a retry executor.
// Constructed once per call site and immutable thereafter.
type Policy struct {
	// MaxRetries is the number of retries after the initial attempt.
	// Default: 3
	MaxRetries int

	// BaseDelay is the delay before the first retry.
	// Default: 1 second
	BaseDelay time.Duration

	// MaxDelay caps the computed delay.
	// Default: 60 seconds
	MaxDelay time.Duration

	// ExponentialBase is the backoff growth factor, must be > 1.
	// Default: 2.0
	ExponentialBase float64

	// Jitter multiplies each delay by a value uniform in [0.5, 1.5)
	// to avoid synchronized retry storms.
	Jitter bool
}

// DefaultPolicy returns the policy used for model-inference calls:
// 3 retries, 1s base delay doubling up to 60s, with jitter.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:      3,
		BaseDelay:       time.Second,
		MaxDelay:        60 * time.Second,
		ExponentialBase: 2.0,
		Jitter:          true,
	}
}

func (p Policy) withDefaults() Policy {
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = time.Second
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 60 * time.Second
	}
	if p.MaxDelay < p.BaseDelay {
		p.MaxDelay = p.BaseDelay
	}
	if p.ExponentialBase <= 1 {
		p.ExponentialBase = 2.0
	}
	return p
}

// RetryConfig configures the retry executor.
type RetryConfig struct {
	// Policy is the backoff policy. Zero fields take defaults.
	Policy Policy

	// Classifier decides retryability when RetryableTargets is empty.
	// Default: classify.Default
	Classifier *classify.Classifier

	// RetryableTargets, when non-empty, replaces the classifier with an
	// explicit membership test: only errors matching one of these targets
	// (via errors.Is) are retried.
	RetryableTargets []error

	// OnRetry is called before each retry sleep with the zero-based attempt
	// index, the error that triggered the retry, and the computed delay.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Retry executes operations with exponential backoff.
//
// Contract:
// - Concurrency: safe for concurrent use; all state is per-invocation.
// - Errors: the original error is returned unchanged once it classifies
//   non-retryable or retries are exhausted, so callers can match on the
//   real failure type.
// - Context: the backoff sleep is cancelable; cancellation returns ctx.Err().
type Retry struct {
	config RetryConfig
}

// NewRetry creates a retry executor.
func NewRetry(config RetryConfig) *Retry {
	config.Policy = config.Policy.withDefaults()
	if config.Classifier == nil {
		config.Classifier = classify.Default
	}
	return &Retry{config: config}
}

// Execute runs op until it succeeds, fails non-retryably, or retries are
// exhausted. op is invoked at most Policy.MaxRetries+1 times.
func (r *Retry) Execute(ctx context.Context, op func(context.Context) error) error {
	for attempt := 0; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}

		if !r.shouldRetry(err) || attempt >= r.config.Policy.MaxRetries {
			return err
		}

		delay := r.delayFor(attempt)
		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt, err, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// Policy returns the backoff policy.
func (r *Retry) Policy() Policy {
	return r.config.Policy
}

func (r *Retry) shouldRetry(err error) bool {
	if len(r.config.RetryableTargets) > 0 {
		for _, target := range r.config.RetryableTargets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
	return r.config.Classifier.IsRetryable(err)
}

// delayFor computes the backoff before retry number attempt (zero-based):
// min(MaxDelay, BaseDelay * ExponentialBase^attempt), jittered if enabled.
func (r *Retry) delayFor(attempt int) time.Duration {
	p := r.config.Policy

	delay := time.Duration(float64(p.BaseDelay) * math.Pow(p.ExponentialBase, float64(attempt)))
	if delay > p.MaxDelay || delay <= 0 {
		delay = p.MaxDelay
	}

	if p.Jitter {
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
	}

	return delay
}

// Wrap returns op bound to the retry executor, for declarative use at
// call sites that run the same operation repeatedly.
func Wrap(r *Retry, op func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		return r.Execute(ctx, op)
	}
}
