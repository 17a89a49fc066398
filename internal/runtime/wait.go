package runtime

import (
	"context"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// WaitForReady blocks until n reports ready or the cancellation signal fires.
func (e *Engine) WaitForReady(ctx context.Context, n domain.Navigable) (bool, error) {
	return e.Wait(ctx, n, domain.KindReady)
}

// WaitForExists blocks until n reports existing or the cancellation signal fires.
func (e *Engine) WaitForExists(ctx context.Context, n domain.Navigable) (bool, error) {
	return e.Wait(ctx, n, domain.KindExists)
}

// Wait polls the kind status of n until it is true (returns true) or ctx is
// done (returns false). Cancellation and deadlines are never errors.
//
// An already-done ctx returns false without polling. The only errors are
// configuration errors (domain.ErrSignalNotConfigured) and kinds the
// navigable cannot answer.
func (e *Engine) Wait(ctx context.Context, n domain.Navigable, kind domain.StateKind) (bool, error) {
	ctx, cancel, err := e.resolveSignal(ctx)
	if err != nil {
		return false, err
	}
	defer cancel()

	if ctx.Err() != nil {
		e.logger.Debug("wait skipped, signal already fired", "navigable", domain.IDOf(n), "kind", kind)
		return false, nil
	}

	start := time.Now()
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for polls := 1; ; polls++ {
		rec, err := e.Observe(ctx, n, kind)
		if err != nil {
			return false, err
		}
		if rec.Bool() {
			e.logger.Debug("wait satisfied",
				"navigable", rec.NavigableID,
				"kind", kind,
				"polls", polls,
				"elapsed", time.Since(start),
			)
			return true, nil
		}

		select {
		case <-ctx.Done():
			e.logger.Debug("wait gave up",
				"navigable", rec.NavigableID,
				"kind", kind,
				"polls", polls,
				"reason", ctx.Err(),
			)
			return false, nil
		case <-ticker.C:
		}

		if ctx.Err() != nil {
			return false, nil
		}
	}
}

// resolveSignal returns the context a wait runs under.
// A context that can never be done is only acceptable when a default timeout
// is configured; a context without deadline inherits the default timeout.
func (e *Engine) resolveSignal(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if ctx == nil {
		if e.defaultTimeout <= 0 {
			return nil, nil, domain.ErrSignalNotConfigured
		}
		ctx = context.Background()
	}

	if _, ok := ctx.Deadline(); !ok && e.defaultTimeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, e.defaultTimeout)
		return ctx, cancel, nil
	}

	if ctx.Done() == nil {
		return nil, nil, domain.ErrSignalNotConfigured
	}
	return ctx, func() {}, nil
}

// CheckSignal reports a configuration error if ctx cannot serve as a
// cancellation signal for waits.
func (e *Engine) CheckSignal(ctx context.Context) error {
	_, cancel, err := e.resolveSignal(ctx)
	if err != nil {
		return err
	}
	cancel()
	return nil
}
