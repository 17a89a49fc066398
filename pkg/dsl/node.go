package dsl

import (
	"context"
	"sync"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Probe answers a boolean status query.
type Probe func(ctx context.Context) (bool, error)

// InspectFunc answers a richer status query.
type InspectFunc func(ctx context.Context) (any, error)

// Screen is a func-backed Navigable.
// A screen without probes is always considered present and ready; when only
// one probe is set it answers both queries.
type Screen struct {
	id          string
	description string
	exists      Probe
	ready       Probe
	inspectors  map[domain.StateKind]InspectFunc

	mu          sync.RWMutex
	transitions []domain.Transition
}

// NewScreen creates a standalone screen without transitions.
func NewScreen(id string) *Screen {
	return &Screen{id: id}
}

// ID returns the screen label.
func (s *Screen) ID() string {
	return s.id
}

// Description returns the human-readable description, if any.
func (s *Screen) Description() string {
	return s.description
}

// Transitions returns a copy of the outgoing transitions in declaration order.
func (s *Screen) Transitions() []domain.Transition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transition, len(s.transitions))
	copy(out, s.transitions)
	return out
}

// Connect appends a transition. Safe to call while paths are being computed.
func (s *Screen) Connect(t domain.Transition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transitions = append(s.transitions, t)
}

// Disconnect removes every transition towards to.
func (s *Screen) Disconnect(to domain.Navigable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.transitions[:0]
	for _, t := range s.transitions {
		if !domain.Same(t.To, to) {
			kept = append(kept, t)
		}
	}
	s.transitions = kept
}

// Exists implements domain.Navigable.
func (s *Screen) Exists(ctx context.Context) (bool, error) {
	switch {
	case s.exists != nil:
		return s.exists(ctx)
	case s.ready != nil:
		return s.ready(ctx)
	}
	return true, nil
}

// Ready implements domain.Navigable.
func (s *Screen) Ready(ctx context.Context) (bool, error) {
	switch {
	case s.ready != nil:
		return s.ready(ctx)
	case s.exists != nil:
		return s.exists(ctx)
	}
	return true, nil
}

// Inspect implements domain.Inspector.
func (s *Screen) Inspect(ctx context.Context, kind domain.StateKind) (any, error) {
	fn, ok := s.inspectors[kind]
	if !ok {
		return nil, domain.ErrUnsupportedKind
	}
	return fn(ctx)
}

// ScreenBuilder provides a fluent API for configuring a screen.
type ScreenBuilder struct {
	screen  *Screen
	builder *Builder
	edges   []pendingEdge
}

type pendingEdge struct {
	target string
	action domain.Action
	label  string
}

// Describe sets the human-readable description.
func (n *ScreenBuilder) Describe(text string) *ScreenBuilder {
	n.screen.description = text
	return n
}

// Exists sets the presence probe.
func (n *ScreenBuilder) Exists(p Probe) *ScreenBuilder {
	n.screen.exists = p
	return n
}

// Ready sets the readiness probe.
func (n *ScreenBuilder) Ready(p Probe) *ScreenBuilder {
	n.screen.ready = p
	return n
}

// Inspect registers a richer state kind.
func (n *ScreenBuilder) Inspect(kind domain.StateKind, fn InspectFunc) *ScreenBuilder {
	if n.screen.inspectors == nil {
		n.screen.inspectors = make(map[domain.StateKind]InspectFunc)
	}
	n.screen.inspectors[kind] = fn
	return n
}

// Go adds a transition to the target screen. Order matters: among equally
// short routes, transitions declared first are preferred.
func (n *ScreenBuilder) Go(target string, action domain.Action) *ScreenBuilder {
	n.edges = append(n.edges, pendingEdge{target: target, action: action})
	return n
}

// Label names the most recently added transition.
func (n *ScreenBuilder) Label(label string) *ScreenBuilder {
	if len(n.edges) > 0 {
		n.edges[len(n.edges)-1].label = label
	}
	return n
}

// Screen returns the underlying screen. Transitions are only attached by Builder.Build.
func (n *ScreenBuilder) Screen() *Screen {
	return n.screen
}
