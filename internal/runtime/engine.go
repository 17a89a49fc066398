package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/graph"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Engine is the navigation core: status observation, readiness waits and
// hop-by-hop traversal over a graph. It holds no position; callers own it.
type Engine struct {
	graph          *graph.Graph
	store          ports.RecordStore
	hooks          domain.LifecycleHooks
	logger         *slog.Logger
	now            func() time.Time
	pollInterval   time.Duration
	defaultTimeout time.Duration
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithRecordStore sets where the last observed record per navigable is published.
func WithRecordStore(store ports.RecordStore) EngineOption {
	return func(e *Engine) {
		if store != nil {
			e.store = store
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp records.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithPollInterval sets the delay between two status queries of a wait.
func WithPollInterval(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.pollInterval = d
		}
	}
}

// WithDefaultTimeout sets the deadline applied to waits whose context has none.
// Zero means waits require a caller-provided cancellation signal.
func WithDefaultTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.defaultTimeout = d
	}
}

// NewEngine creates a new engine over g.
func NewEngine(g *graph.Graph, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:        g,
		store:        memory.NewStore(),
		logger:       logging.NewNop(),
		now:          time.Now,
		pollInterval: domain.DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the graph the engine navigates.
func (e *Engine) Graph() *graph.Graph {
	return e.graph
}

// Store returns the record store.
func (e *Engine) Store() ports.RecordStore {
	return e.store
}
