// Package cache provides cache-aside orchestration over a key-value store.
//
// Keys are namespaced, every entry carries a finite TTL, and all store
// infrastructure failures degrade silently: a broken backend looks like a
// cache miss to callers, never like an error. Fetch-function failures, by
// contrast, always propagate unchanged.
package cache
