package classify

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"syscall"
)

// Classifier maps errors to categories from three mutable matcher sets.
//
// Contract:
// - Concurrency: Classify and the Register methods are safe for concurrent
//   use; registration normally completes during startup.
// - Exclusivity: a matcher belongs to at most one category at a time.
// - Fail-safe: errors matching no set classify as CategoryNonRetryable.
type Classifier struct {
	mu           sync.RWMutex
	critical     map[string]Matcher
	retryable    map[string]Matcher
	nonRetryable map[string]Matcher
}

// NewClassifier creates a classifier pre-loaded with built-in defaults:
// network and timeout errors are retryable, validation and lookup errors
// are non-retryable, and resource exhaustion is critical.
func NewClassifier() *Classifier {
	c := &Classifier{
		critical:     make(map[string]Matcher),
		retryable:    make(map[string]Matcher),
		nonRetryable: make(map[string]Matcher),
	}

	c.RegisterCritical(
		Is(ErrResourceExhausted),
		Is(syscall.ENOMEM),
	)
	c.RegisterRetryable(
		MatchFunc("net.timeout", func(err error) bool {
			ne, ok := err.(net.Error)
			return ok && ne.Timeout()
		}),
		Is(context.DeadlineExceeded),
		Is(syscall.ECONNREFUSED),
		Is(syscall.ECONNRESET),
		Is(syscall.EPIPE),
		Is(io.ErrUnexpectedEOF),
	)
	c.RegisterNonRetryable(
		Is(ErrValidation),
		Is(ErrNotFound),
		Is(context.Canceled),
	)

	return c
}

// RegisterRetryable adds matchers to the retryable set, evicting them from
// the critical and non-retryable sets.
func (c *Classifier) RegisterRetryable(matchers ...Matcher) {
	c.register(matchers, func() map[string]Matcher { return c.retryable })
}

// RegisterNonRetryable adds matchers to the non-retryable set, evicting
// them from the critical and retryable sets.
func (c *Classifier) RegisterNonRetryable(matchers ...Matcher) {
	c.register(matchers, func() map[string]Matcher { return c.nonRetryable })
}

// RegisterCritical adds matchers to the critical set, evicting them from
// the retryable and non-retryable sets.
func (c *Classifier) RegisterCritical(matchers ...Matcher) {
	c.register(matchers, func() map[string]Matcher { return c.critical })
}

func (c *Classifier) register(matchers []Matcher, dst func() map[string]Matcher) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range matchers {
		if m.key == "" {
			continue
		}
		delete(c.critical, m.key)
		delete(c.retryable, m.key)
		delete(c.nonRetryable, m.key)
		dst()[m.key] = m
	}
}

// Classify returns the category of err.
//
// The error chain is walked outermost link first; the first link matching
// any registered set decides the category, so the nearest wrap wins over
// deeper matches. Within a single link the sets are consulted in fixed
// priority order: critical, then retryable, then non-retryable. An error
// matching no set classifies as CategoryNonRetryable. A nil error
// classifies as CategoryUnknown.
func (c *Classifier) Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for link := err; link != nil; link = errors.Unwrap(link) {
		switch {
		case matchAny(c.critical, link):
			return CategoryCritical
		case matchAny(c.retryable, link):
			return CategoryRetryable
		case matchAny(c.nonRetryable, link):
			return CategoryNonRetryable
		}
	}

	return CategoryNonRetryable
}

// IsRetryable reports whether err classifies as retryable.
func (c *Classifier) IsRetryable(err error) bool {
	return c.Classify(err) == CategoryRetryable
}

// IsNonRetryable reports whether err classifies as non-retryable.
func (c *Classifier) IsNonRetryable(err error) bool {
	return c.Classify(err) == CategoryNonRetryable
}

// IsCritical reports whether err classifies as critical.
func (c *Classifier) IsCritical(err error) bool {
	return c.Classify(err) == CategoryCritical
}

func matchAny(set map[string]Matcher, err error) bool {
	for _, m := range set {
		if m.Match(err) {
			return true
		}
	}
	return false
}

// Default is the process-wide classifier used when none is injected.
var Default = NewClassifier()

// Classify classifies err with the Default classifier.
func Classify(err error) Category { return Default.Classify(err) }

// IsRetryable reports whether err is retryable per the Default classifier.
func IsRetryable(err error) bool { return Default.IsRetryable(err) }

// IsCritical reports whether err is critical per the Default classifier.
func IsCritical(err error) bool { return Default.IsCritical(err) }
