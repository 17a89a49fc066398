package wayfinder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/internal/runtime"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/graph"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Session is the high-level entry point of the library: one agent driving one
// application through a fixed set of navigables.
//
// Traversals on a session are serialized; independent sessions over disjoint
// navigables may run concurrently.
type Session struct {
	runtime     *runtime.Engine
	graph       *graph.Graph
	runtimeOpts []runtime.EngineOption
	logger      *slog.Logger
	startID     string
	start       domain.Navigable
	Name        string

	travel sync.Mutex // held for the duration of a traversal

	mu       sync.RWMutex
	position domain.Navigable
}

// Option defines a functional option for configuring the Session.
type Option func(*Session)

// WithLogger sets a custom structured logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithLifecycleHooks(hooks))
	}
}

// WithRecordStore sets where the last observed record per navigable is kept
// (default: in memory).
func WithRecordStore(store ports.RecordStore) Option {
	return func(s *Session) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithRecordStore(store))
	}
}

// WithDefaultTimeout sets the deadline applied to each readiness wait whose
// context carries none.
func WithDefaultTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithDefaultTimeout(d))
	}
}

// WithPollInterval sets the delay between two status queries of a wait.
func WithPollInterval(d time.Duration) Option {
	return func(s *Session) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithPollInterval(d))
	}
}

// WithClock overrides the time source used to stamp state records.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.runtimeOpts = append(s.runtimeOpts, runtime.WithClock(now))
	}
}

// WithStart sets the initial position of the session.
func WithStart(n domain.Navigable) Option {
	return func(s *Session) {
		s.start = n
	}
}

// WithStartID sets the initial position by navigable ID.
func WithStartID(id string) Option {
	return func(s *Session) {
		s.startID = id
	}
}

// WithName labels the session in logs.
func WithName(name string) Option {
	return func(s *Session) {
		s.Name = name
	}
}

// New creates a session over a fixed set of navigables.
func New(nodes []domain.Navigable, opts ...Option) (*Session, error) {
	g, err := graph.New(nodes...)
	if err != nil {
		return nil, fmt.Errorf("invalid navigation graph: %w", err)
	}

	s := &Session{graph: g}
	for _, opt := range opts {
		opt(s)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.Name != "" {
		s.logger = s.logger.With("session", s.Name)
	}

	switch {
	case s.start != nil:
		s.position = s.start
	case s.startID != "":
		n, ok := g.Lookup(s.startID)
		if !ok {
			return nil, fmt.Errorf("start navigable %q not in graph", s.startID)
		}
		s.position = n
	}

	runtimeOpts := append([]runtime.EngineOption{runtime.WithLogger(s.logger)}, s.runtimeOpts...)
	s.runtime = runtime.NewEngine(g, runtimeOpts...)

	return s, nil
}

// Graph returns the navigation graph.
func (s *Session) Graph() *graph.Graph {
	return s.graph
}

// ShortestPath returns the fewest-hops route, origin excluded and destination
// included. It is empty for a self-path or when no route exists.
func (s *Session) ShortestPath(origin, destination domain.Navigable) []domain.Navigable {
	return s.graph.ShortestPath(origin, destination)
}

// Observe queries a status kind of n and publishes the resulting record.
func (s *Session) Observe(ctx context.Context, n domain.Navigable, kind domain.StateKind) (domain.StateRecord, error) {
	return s.runtime.Observe(ctx, n, kind)
}

// Exists reports the value of a freshly published "exists" record of n.
func (s *Session) Exists(ctx context.Context, n domain.Navigable) bool {
	rec, err := s.runtime.Observe(ctx, n, domain.KindExists)
	return err == nil && rec.Bool()
}

// IsReady reports the value of a freshly published "ready" record of n.
func (s *Session) IsReady(ctx context.Context, n domain.Navigable) bool {
	rec, err := s.runtime.Observe(ctx, n, domain.KindReady)
	return err == nil && rec.Bool()
}

// WaitForReady blocks until n is ready (true) or ctx is done (false).
// The error is reserved for configuration problems.
func (s *Session) WaitForReady(ctx context.Context, n domain.Navigable) (bool, error) {
	return s.runtime.WaitForReady(ctx, n)
}

// WaitForExists blocks until n exists (true) or ctx is done (false).
func (s *Session) WaitForExists(ctx context.Context, n domain.Navigable) (bool, error) {
	return s.runtime.WaitForExists(ctx, n)
}

// LastRecord returns the last record published for n and kind.
func (s *Session) LastRecord(ctx context.Context, n domain.Navigable, kind domain.StateKind) (domain.StateRecord, error) {
	return s.runtime.Last(ctx, n, kind)
}

// Records returns every last-known record.
func (s *Session) Records(ctx context.Context) ([]domain.StateRecord, error) {
	return s.runtime.Records(ctx)
}

// Position returns the last navigable confirmed ready (or declared as start).
func (s *Session) Position() domain.Navigable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.position
}

// SetPosition declares where the application currently is.
func (s *Session) SetPosition(n domain.Navigable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = n
}

// Locate probes every navigable in graph order and sets the position to the
// first one reporting ready. It returns nil if none is.
func (s *Session) Locate(ctx context.Context) domain.Navigable {
	for _, n := range s.graph.Nodes() {
		if s.IsReady(ctx, n) {
			s.SetPosition(n)
			s.logger.Debug("position located", "navigable", n.ID())
			return n
		}
	}
	return nil
}

// GoTo drives the application from origin to destination along the shortest
// path. The returned continuation reports the outcome and can schedule work
// to run after a successful arrival.
func (s *Session) GoTo(ctx context.Context, origin, destination domain.Navigable) *Continuation {
	s.travel.Lock()
	defer s.travel.Unlock()
	return s.goTo(ctx, origin, destination)
}

// Navigate is GoTo from the current position.
func (s *Session) Navigate(ctx context.Context, destination domain.Navigable) *Continuation {
	s.travel.Lock()
	defer s.travel.Unlock()

	origin := s.Position()
	if origin == nil {
		return &Continuation{
			ctx:       ctx,
			traversal: &runtime.Traversal{Destination: destination},
			err:       domain.ErrUnknownPosition,
		}
	}
	return s.goTo(ctx, origin, destination)
}

// goTo must be called with s.travel held.
func (s *Session) goTo(ctx context.Context, origin, destination domain.Navigable) *Continuation {
	tr, err := s.runtime.GoTo(ctx, origin, destination)
	// An explicit origin is not confirmed until a hop leaves it.
	if tr.Completed > 0 || tr.Reached() {
		s.SetPosition(tr.Position)
	}
	return &Continuation{ctx: ctx, traversal: tr, err: err}
}

// NavigateTo implements ports.Navigator.
func (s *Session) NavigateTo(ctx context.Context, destination domain.Navigable) ([]domain.Navigable, error) {
	c := s.Navigate(ctx, destination)
	return c.Hops(), c.Err()
}

var _ ports.Navigator = (*Session)(nil)
