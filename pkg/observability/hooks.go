package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// LoggingHooks logs every lifecycle event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnHopStart: func(ctx context.Context, e *domain.HopEvent) {
			logger.Info("hop_start", "from", e.From, "to", e.To, "index", e.Index, "total", e.Total)
		},
		OnHopComplete: func(ctx context.Context, e *domain.HopEvent) {
			if e.Err != nil {
				logger.Warn("hop_failed", "from", e.From, "to", e.To, "duration", e.Duration, "err", e.Err)
				return
			}
			logger.Info("hop_complete", "from", e.From, "to", e.To, "duration", e.Duration)
		},
		OnArrive: func(ctx context.Context, e *domain.ArrivalEvent) {
			logger.Info("arrive",
				"origin", e.Origin,
				"destination", e.Destination,
				"position", e.Position,
				"hops", e.Hops,
				"outcome", Outcome(e.Err),
			)
		},
		OnStatePublished: func(ctx context.Context, rec domain.StateRecord) {
			logger.Debug("state_published", "navigable", rec.NavigableID, "kind", rec.Kind, "value", rec.Value)
		},
	}
}

// Combine fans every event out to each hook set, in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks

	var hopStart, hopComplete []func(context.Context, *domain.HopEvent)
	var arrive []func(context.Context, *domain.ArrivalEvent)
	var published []func(context.Context, domain.StateRecord)
	for _, s := range sets {
		if s.OnHopStart != nil {
			hopStart = append(hopStart, s.OnHopStart)
		}
		if s.OnHopComplete != nil {
			hopComplete = append(hopComplete, s.OnHopComplete)
		}
		if s.OnArrive != nil {
			arrive = append(arrive, s.OnArrive)
		}
		if s.OnStatePublished != nil {
			published = append(published, s.OnStatePublished)
		}
	}

	if len(hopStart) > 0 {
		out.OnHopStart = func(ctx context.Context, e *domain.HopEvent) {
			for _, fn := range hopStart {
				fn(ctx, e)
			}
		}
	}
	if len(hopComplete) > 0 {
		out.OnHopComplete = func(ctx context.Context, e *domain.HopEvent) {
			for _, fn := range hopComplete {
				fn(ctx, e)
			}
		}
	}
	if len(arrive) > 0 {
		out.OnArrive = func(ctx context.Context, e *domain.ArrivalEvent) {
			for _, fn := range arrive {
				fn(ctx, e)
			}
		}
	}
	if len(published) > 0 {
		out.OnStatePublished = func(ctx context.Context, rec domain.StateRecord) {
			for _, fn := range published {
				fn(ctx, rec)
			}
		}
	}
	return out
}
