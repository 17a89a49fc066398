package wayfinder

import (
	"context"
	"fmt"

	"github.com/aretw0/wayfinder/internal/runtime"
	"github.com/aretw0/wayfinder/pkg/domain"
)

// Continuation is the outcome of a traversal, allowing follow-up actions that
// must only run once the destination has been reached.
type Continuation struct {
	ctx       context.Context
	traversal *runtime.Traversal
	err       error
}

// Do runs fn if the traversal and every previous Do succeeded.
// A failing fn becomes the continuation's error.
func (c *Continuation) Do(fn func(ctx context.Context) error) *Continuation {
	if c.err != nil || fn == nil {
		return c
	}
	if err := fn(c.ctx); err != nil {
		c.err = fmt.Errorf("action at %s: %w", domain.IDOf(c.traversal.Destination), err)
	}
	return c
}

// Err returns the first failure: traversal, hop or follow-up action.
func (c *Continuation) Err() error {
	return c.err
}

// Reached reports whether the destination was confirmed.
func (c *Continuation) Reached() bool {
	return c.traversal.Reached()
}

// Position returns the last navigable confirmed ready during the traversal.
func (c *Continuation) Position() domain.Navigable {
	return c.traversal.Position
}

// Path returns the planned route.
func (c *Continuation) Path() []domain.Navigable {
	return c.traversal.Path
}

// Hops returns the navigables actually reached, in order.
func (c *Continuation) Hops() []domain.Navigable {
	return c.traversal.Path[:c.traversal.Completed]
}
