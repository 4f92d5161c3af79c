// pkg/predicate/predicate.go

// Package predicate provides reusable clauses for contract.Contract.
package predicate

import "golang.org/x/exp/constraints"

// Numeric is a type constraint for numeric types.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// Positive reports whether n > 0.
func Positive[T Numeric](n T) bool {
	return n > 0
}

// NonNegative reports whether n >= 0.
func NonNegative[T Numeric](n T) bool {
	return n >= 0
}

// AllPositive reports whether every value is > 0.
func AllPositive[T Numeric](values ...T) bool {
	for _, v := range values {
		if v <= 0 {
			return false
		}
	}
	return true
}

// InRange returns a predicate accepting lo <= n <= hi.
func InRange[T constraints.Ordered](lo, hi T) func(T) bool {
	return func(n T) bool {
		return lo <= n && n <= hi
	}
}

// Equal returns a predicate accepting only want.
func Equal[T comparable](want T) func(T) bool {
	return func(got T) bool {
		return got == want
	}
}

// And accepts when every predicate accepts. It short-circuits.
func And[T any](preds ...func(T) bool) func(T) bool {
	return func(v T) bool {
		for _, p := range preds {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Or accepts when any predicate accepts.
func Or[T any](preds ...func(T) bool) func(T) bool {
	return func(v T) bool {
		for _, p := range preds {
			if p(v) {
				return true
			}
		}
		return false
	}
}

// Not negates p.
func Not[T any](p func(T) bool) func(T) bool {
	return func(v T) bool {
		return !p(v)
	}
}

// All combines invariants; it holds when every one holds.
func All(invariants ...func() bool) func() bool {
	return func() bool {
		for _, inv := range invariants {
			if !inv() {
				return false
			}
		}
		return true
	}
}

// Unchanged snapshots read() now and returns an invariant that holds while
// read() still returns the same value.
func Unchanged[T comparable](read func() T) func() bool {
	initial := read()
	return func() bool {
		return read() == initial
	}
}
