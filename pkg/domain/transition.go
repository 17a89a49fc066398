package domain

import "context"

// Action is an opaque, driver-level operation expected to move the application
// from one navigable towards another.
type Action func(ctx context.Context) error

// Transition defines an edge from the declaring navigable to a neighbor.
type Transition struct {
	// To is the neighbor reached when Action succeeds.
	To Navigable

	// Action performs the move. A nil action is treated as a no-op.
	Action Action

	// Label is an optional description used in rendering (e.g. "tap Settings").
	Label string
}

// Run executes the transition action.
func (t Transition) Run(ctx context.Context) error {
	if t.Action == nil {
		return nil
	}
	return t.Action(ctx)
}
