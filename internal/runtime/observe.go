package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Observe queries the status of n, publishes the fresh record as the
// last-known one and returns it.
//
// A failing probe is not an error: the record carries the failure and a false
// value. Only kinds the navigable cannot answer are reported as errors.
func (e *Engine) Observe(ctx context.Context, n domain.Navigable, kind domain.StateKind) (domain.StateRecord, error) {
	if n == nil {
		return domain.StateRecord{}, fmt.Errorf("observe %s: nil navigable", kind)
	}

	value, probeErr, err := e.query(ctx, n, kind)
	if err != nil {
		return domain.StateRecord{}, err
	}

	rec := domain.NewStateRecord(n, kind, value, e.now()).WithError(probeErr)
	e.publish(ctx, rec)
	return rec, nil
}

func (e *Engine) query(ctx context.Context, n domain.Navigable, kind domain.StateKind) (value any, probeErr error, err error) {
	switch kind {
	case domain.KindExists:
		ok, perr := n.Exists(ctx)
		return ok && perr == nil, perr, nil
	case domain.KindReady:
		ok, perr := n.Ready(ctx)
		return ok && perr == nil, perr, nil
	}

	inspector, ok := n.(domain.Inspector)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q on %s", domain.ErrUnsupportedKind, kind, n.ID())
	}
	v, perr := inspector.Inspect(ctx, kind)
	if errors.Is(perr, domain.ErrUnsupportedKind) {
		return nil, nil, fmt.Errorf("%w: %q on %s", domain.ErrUnsupportedKind, kind, n.ID())
	}
	return v, perr, nil
}

func (e *Engine) publish(ctx context.Context, rec domain.StateRecord) {
	if err := e.store.Put(ctx, rec); err != nil {
		e.logger.Warn("failed to publish state record",
			"navigable", rec.NavigableID,
			"kind", rec.Kind,
			"err", err,
		)
	}

	e.logger.Debug("state observed",
		"navigable", rec.NavigableID,
		"kind", rec.Kind,
		"value", rec.Value,
		"probe_err", rec.Err,
	)

	if e.hooks.OnStatePublished != nil {
		e.hooks.OnStatePublished(ctx, rec)
	}
}

// Last returns the last-known record of n for kind, re-attaching the
// navigable reference when the store could not keep it.
func (e *Engine) Last(ctx context.Context, n domain.Navigable, kind domain.StateKind) (domain.StateRecord, error) {
	rec, err := e.store.Last(ctx, domain.IDOf(n), kind)
	if err != nil {
		return domain.StateRecord{}, err
	}
	if rec.Navigable == nil {
		rec.Navigable = n
	}
	return rec, nil
}

// Records lists the last-known records, resolving references through the graph.
func (e *Engine) Records(ctx context.Context) ([]domain.StateRecord, error) {
	records, err := e.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Navigable == nil && e.graph != nil {
			if n, ok := e.graph.Lookup(records[i].NavigableID); ok {
				records[i].Navigable = n
			}
		}
	}
	return records, nil
}
