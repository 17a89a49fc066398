package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeOK           = "ok"
	OutcomeNotReady     = "not_ready"
	OutcomeNoTransition = "no_transition"
	OutcomeNoRoute      = "no_route"
	OutcomeFailed       = "failed"
)

// Metrics holds the navigation collectors.
type Metrics struct {
	Hops        *prometheus.CounterVec
	HopDuration *prometheus.HistogramVec
	StateQuery  *prometheus.CounterVec
	Arrivals    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg (if not nil).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Hops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wayfinder_hops_total",
				Help: "Total number of hops attempted",
			},
			[]string{"from", "to", "outcome"},
		),
		HopDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wayfinder_hop_duration_seconds",
				Help:    "Duration of hops, action and readiness wait included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"to"},
		),
		StateQuery: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wayfinder_state_queries_total",
				Help: "Total number of published state records",
			},
			[]string{"kind", "value"},
		),
		Arrivals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wayfinder_arrivals_total",
				Help: "Total number of finished traversals",
			},
			[]string{"outcome"},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Hops, m.HopDuration, m.StateQuery, m.Arrivals} {
			if err := reg.Register(c); err != nil {
				return nil, fmt.Errorf("failed to register metrics: %w", err)
			}
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnHopComplete: func(ctx context.Context, e *domain.HopEvent) {
			m.Hops.WithLabelValues(e.From, e.To, Outcome(e.Err)).Inc()
			m.HopDuration.WithLabelValues(e.To).Observe(e.Duration.Seconds())
		},
		OnArrive: func(ctx context.Context, e *domain.ArrivalEvent) {
			m.Arrivals.WithLabelValues(Outcome(e.Err)).Inc()
		},
		OnStatePublished: func(ctx context.Context, rec domain.StateRecord) {
			value := "false"
			switch {
			case rec.Failed():
				value = "error"
			case rec.Bool():
				value = "true"
			}
			m.StateQuery.WithLabelValues(string(rec.Kind), value).Inc()
		},
	}
}

// Outcome classifies a hop or traversal error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrNotReady):
		return OutcomeNotReady
	case errors.Is(err, domain.ErrNoTransition):
		return OutcomeNoTransition
	case errors.Is(err, domain.ErrNoRoute):
		return OutcomeNoRoute
	}
	return OutcomeFailed
}
