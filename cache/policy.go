package cache

import "time"

// Policy configures TTL behavior for entries written by the Manager.
type Policy struct {
	// DefaultTTL is the TTL to use when none is specified.
	DefaultTTL time.Duration

	// MaxTTL is the maximum allowed TTL. Override TTLs are clamped to this.
	// If zero, no maximum is enforced.
	MaxTTL time.Duration
}

// DefaultPolicy returns the policy used for generated report records:
// DefaultTTL 1 hour, MaxTTL 24 hours.
func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL: time.Hour,
		MaxTTL:     24 * time.Hour,
	}
}

// EffectiveTTL returns the TTL to use, applying the default and clamping.
// The result is always positive: no entry is ever written without expiry.
func (p Policy) EffectiveTTL(override time.Duration) time.Duration {
	ttl := override
	if ttl <= 0 {
		ttl = p.DefaultTTL
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}

	return ttl
}
