package domain

import (
	"errors"
	"fmt"
)

// ErrSignalNotConfigured is returned when a wait is requested without a cancellation
// signal and no default timeout was configured. It is a configuration error.
var ErrSignalNotConfigured = errors.New("cancellation signal not configured")

// ErrNoRoute is returned by traversals when no path connects origin and destination.
var ErrNoRoute = errors.New("no route between navigables")

// ErrNotReady is returned when a hop's destination did not become ready in time.
var ErrNotReady = errors.New("navigable not ready")

// ErrNoTransition is returned when a navigable no longer declares a transition to the next hop.
var ErrNoTransition = errors.New("transition not declared")

// ErrUnsupportedKind is returned when a navigable cannot answer a state kind.
var ErrUnsupportedKind = errors.New("unsupported state kind")

// ErrRecordNotFound is returned when no record was published for a navigable and kind.
var ErrRecordNotFound = errors.New("state record not found")

// ErrDuplicateNavigable is returned when two navigables of a graph share an ID.
var ErrDuplicateNavigable = errors.New("duplicate navigable")

// HopError reports the failure of one hop of a traversal.
type HopError struct {
	From  string
	To    string
	Cause error
}

func (e *HopError) Error() string {
	return fmt.Sprintf("hop %s -> %s failed: %v", e.From, e.To, e.Cause)
}

func (e *HopError) Unwrap() error {
	return e.Cause
}

// ErrUnknownPosition is returned when navigating from the current position before it is known.
var ErrUnknownPosition = errors.New("current position unknown")
