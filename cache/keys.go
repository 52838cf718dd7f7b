package cache

import (
	"errors"
	"strings"
)

// Separator joins the segments of a cache key.
const Separator = ":"

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for key construction and validation.
var (
	ErrInvalidKey     = errors.New("cache: key is invalid")
	ErrKeyTooLong     = errors.New("cache: key exceeds max length")
	ErrInvalidSegment = errors.New("cache: key segment is empty or contains separator")
)

// Key builds the cache key for an entity: {namespace}:{entityType}:{identifier}.
//
// Construction is purely deterministic: identical inputs always yield the
// identical key string, so unrelated entity types sharing an identifier
// space can never collide.
func Key(namespace, entityType, identifier string) string {
	return namespace + Separator + entityType + Separator + identifier
}

// KeyNamespace returns the namespace segment of a key, or "" if the key
// has no separator.
func KeyNamespace(key string) string {
	if i := strings.Index(key, Separator); i > 0 {
		return key[:i]
	}
	return ""
}

// ValidateSegments checks that each key segment is usable: non-empty and
// free of the separator and control characters.
func ValidateSegments(segments ...string) error {
	for _, s := range segments {
		if s == "" || strings.TrimSpace(s) == "" {
			return ErrInvalidSegment
		}
		if strings.Contains(s, Separator) || strings.ContainsAny(s, "\n\r") {
			return ErrInvalidSegment
		}
	}
	return nil
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
