package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Builder manages the screen set construction.
type Builder struct {
	order []string
	nodes map[string]*ScreenBuilder
}

// New creates a new screen builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*ScreenBuilder),
	}
}

// Add creates a new screen.
// If the screen already exists, it returns the existing builder.
func (b *Builder) Add(id string) *ScreenBuilder {
	if sb, ok := b.nodes[id]; ok {
		return sb
	}
	sb := &ScreenBuilder{
		screen:  NewScreen(id),
		builder: b,
	}
	b.nodes[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Build resolves transition targets and returns the screens in declaration order.
// Unknown targets, empty IDs and self-loops are reported together.
func (b *Builder) Build() ([]domain.Navigable, error) {
	var errs []error
	out := make([]domain.Navigable, 0, len(b.order))

	for _, id := range b.order {
		sb := b.nodes[id]
		if id == "" {
			errs = append(errs, fmt.Errorf("screen with empty id"))
			continue
		}

		transitions := make([]domain.Transition, 0, len(sb.edges))
		for _, e := range sb.edges {
			target, ok := b.nodes[e.target]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("screen %q: unknown target %q", id, e.target))
				continue
			case e.target == id:
				errs = append(errs, fmt.Errorf("screen %q: self-loop transition", id))
				continue
			}
			transitions = append(transitions, domain.Transition{
				To:     target.screen,
				Action: e.action,
				Label:  e.label,
			})
		}

		sb.screen.mu.Lock()
		sb.screen.transitions = transitions
		sb.screen.mu.Unlock()
		out = append(out, sb.screen)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to build screens: %w", errors.Join(errs...))
	}
	return out, nil
}
