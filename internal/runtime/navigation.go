package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Traversal is the outcome of a GoTo.
type Traversal struct {
	Origin      domain.Navigable
	Destination domain.Navigable

	// Path is the planned route (origin excluded, destination included).
	Path []domain.Navigable

	// Position is the last navigable confirmed ready, or Origin if no hop completed.
	Position domain.Navigable

	// Completed counts the hops confirmed ready.
	Completed int
}

// Reached reports whether the destination was confirmed.
func (t *Traversal) Reached() bool {
	return t != nil && domain.Same(t.Position, t.Destination)
}

// GoTo walks the shortest path from origin to destination.
//
// Each hop runs the transition declared by the current navigable towards the
// next one, then waits for the next one to be ready before going on. The first
// failing hop aborts the traversal; completed hops are not undone. The returned
// Traversal is never nil and tells where the caller was left.
func (e *Engine) GoTo(ctx context.Context, origin, destination domain.Navigable) (*Traversal, error) {
	tr := &Traversal{
		Origin:      origin,
		Destination: destination,
		Position:    origin,
	}

	if domain.Same(origin, destination) {
		e.logger.Debug("already at destination", "navigable", domain.IDOf(destination))
		e.emitArrive(ctx, tr, nil)
		return tr, nil
	}

	if err := e.CheckSignal(ctx); err != nil {
		return tr, err
	}

	tr.Path = e.graph.ShortestPath(origin, destination)
	if len(tr.Path) == 0 {
		err := fmt.Errorf("%w: %s -> %s", domain.ErrNoRoute, domain.IDOf(origin), domain.IDOf(destination))
		e.emitArrive(ctx, tr, err)
		return tr, err
	}

	e.logger.Info("traversal planned",
		"origin", domain.IDOf(origin),
		"destination", domain.IDOf(destination),
		"hops", len(tr.Path),
	)

	current := origin
	for i, next := range tr.Path {
		if err := e.hop(ctx, current, next, i, len(tr.Path)); err != nil {
			e.logger.Warn("traversal aborted",
				"position", domain.IDOf(tr.Position),
				"destination", domain.IDOf(destination),
				"err", err,
			)
			e.emitArrive(ctx, tr, err)
			return tr, err
		}
		tr.Position = next
		tr.Completed++
		current = next
	}

	e.logger.Info("destination reached", "navigable", domain.IDOf(destination), "hops", tr.Completed)
	e.emitArrive(ctx, tr, nil)
	return tr, nil
}

func (e *Engine) hop(ctx context.Context, from, to domain.Navigable, index, total int) (err error) {
	start := time.Now()
	e.emitHop(ctx, domain.EventHopStart, from, to, index, total, 0, nil)
	defer func() {
		e.emitHop(ctx, domain.EventHopComplete, from, to, index, total, time.Since(start), err)
	}()

	fail := func(cause error) error {
		return &domain.HopError{From: domain.IDOf(from), To: domain.IDOf(to), Cause: cause}
	}

	t, ok := e.graph.TransitionTo(from, to)
	if !ok {
		return fail(domain.ErrNoTransition)
	}

	// Nothing is sent to the application once the signal has fired.
	if cerr := ctx.Err(); cerr != nil {
		return fail(cerr)
	}

	e.logger.Debug("running transition", "from", domain.IDOf(from), "to", domain.IDOf(to), "label", t.Label)
	if err := t.Run(ctx); err != nil {
		return fail(err)
	}

	ready, err := e.WaitForReady(ctx, to)
	if err != nil {
		return fail(err)
	}
	if !ready {
		if cerr := ctx.Err(); cerr != nil {
			return fail(errors.Join(domain.ErrNotReady, cerr))
		}
		return fail(domain.ErrNotReady)
	}
	return nil
}

func (e *Engine) emitHop(ctx context.Context, typ domain.EventType, from, to domain.Navigable, index, total int, d time.Duration, err error) {
	hook := e.hooks.OnHopStart
	if typ == domain.EventHopComplete {
		hook = e.hooks.OnHopComplete
	}
	if hook == nil {
		return
	}
	hook(ctx, &domain.HopEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: typ},
		From:      domain.IDOf(from),
		To:        domain.IDOf(to),
		Index:     index,
		Total:     total,
		Duration:  d,
		Err:       err,
	})
}

func (e *Engine) emitArrive(ctx context.Context, tr *Traversal, err error) {
	if e.hooks.OnArrive == nil {
		return
	}
	e.hooks.OnArrive(ctx, &domain.ArrivalEvent{
		EventBase:   domain.EventBase{Timestamp: e.now(), Type: domain.EventArrive},
		Origin:      domain.IDOf(tr.Origin),
		Destination: domain.IDOf(tr.Destination),
		Position:    domain.IDOf(tr.Position),
		Hops:        tr.Completed,
		Err:         err,
	})
}
