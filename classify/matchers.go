package classify

import (
	"fmt"
	"reflect"
)

// Matcher recognizes a single error in an error chain.
//
// Contract:
// - Determinism: Match must be a pure function of its argument.
// - Concurrency: Match must be safe for concurrent use.
// - Identity: two matchers with the same key are the same registration;
//   registering a key into one category evicts it from the others.
type Matcher struct {
	key   string
	match func(err error) bool
}

// Key returns the registration identity of the matcher.
func (m Matcher) Key() string { return m.key }

// Match reports whether the matcher recognizes err.
// err is a single link of an error chain, not the whole chain; the
// classifier walks the chain so matchers never need to unwrap.
func (m Matcher) Match(err error) bool {
	if m.match == nil {
		return false
	}
	return m.match(err)
}

// Is matches a chain link equal to target, honoring custom Is methods.
func Is(target error) Matcher {
	return Matcher{
		key: fmt.Sprintf("is:%T:%v", target, target),
		match: func(err error) bool {
			if err == target {
				return true
			}
			if x, ok := err.(interface{ Is(error) bool }); ok {
				return x.Is(target)
			}
			return false
		},
	}
}

// As matches a chain link whose concrete or interface type is T.
func As[T error]() Matcher {
	return Matcher{
		key: "as:" + reflect.TypeOf((*T)(nil)).Elem().String(),
		match: func(err error) bool {
			_, ok := err.(T)
			return ok
		},
	}
}

// MatchFunc matches with an arbitrary predicate. The name is the
// registration identity, so reusing a name replaces the earlier predicate.
func MatchFunc(name string, fn func(err error) bool) Matcher {
	return Matcher{key: "func:" + name, match: fn}
}
