package domain

import (
	"context"
	"reflect"
)

// Navigable represents one distinct, identifiable screen of the driven application.
//
// Identity is the interface value itself: two navigables are the same only if
// they are the same reference. ID is a human-readable label used for logs,
// record stores and rendering; graphs require it to be unique.
type Navigable interface {
	// ID returns the label of the navigable.
	ID() string

	// Transitions returns the outgoing transitions in declaration order.
	// It is read on every path query, so the topology may change between calls.
	Transitions() []Transition

	// Exists reports whether the screen is currently present.
	Exists(ctx context.Context) (bool, error)

	// Ready reports whether the screen is present and able to accept actions.
	Ready(ctx context.Context) (bool, error)
}

// Inspector is an optional capability for navigables exposing richer,
// non-boolean state kinds (e.g. "title", "selected_tab").
type Inspector interface {
	Inspect(ctx context.Context, kind StateKind) (any, error)
}

// Same reports whether a and b are the same navigable (reference identity).
// Navigables of a non-comparable type are never the same.
func Same(a, b Navigable) bool {
	if a == nil || b == nil {
		return false
	}
	if t := reflect.TypeOf(a); t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}
	return a == b
}

// IDOf returns the label of n, or an empty string for nil.
func IDOf(n Navigable) string {
	if n == nil {
		return ""
	}
	return n.ID()
}
