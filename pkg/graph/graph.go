package graph

import (
	"fmt"
	"reflect"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Graph is the immutable set of navigables known to a session.
// Navigable implementations must be comparable (typically pointers) since
// identity is used as a map key; New rejects the others. Safe for concurrent
// readers.
type Graph struct {
	nodes []domain.Navigable
	byID  map[string]domain.Navigable
}

// Edge is a derived edge, used for rendering and introspection.
type Edge struct {
	From  domain.Navigable
	To    domain.Navigable
	Label string
}

// New creates a graph from a fixed node set.
// It fails on nil nodes, on navigables whose dynamic type is not comparable,
// and on labels used by more than one navigable.
func New(nodes ...domain.Navigable) (*Graph, error) {
	g := &Graph{
		nodes: make([]domain.Navigable, 0, len(nodes)),
		byID:  make(map[string]domain.Navigable, len(nodes)),
	}
	for i, n := range nodes {
		if n == nil {
			return nil, fmt.Errorf("navigable at index %d is nil", i)
		}
		if t := reflect.TypeOf(n); !t.Comparable() {
			return nil, fmt.Errorf("navigable %q: type %s is not comparable", n.ID(), t)
		}
		if existing, ok := g.byID[n.ID()]; ok {
			if domain.Same(existing, n) {
				continue
			}
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateNavigable, n.ID())
		}
		g.byID[n.ID()] = n
		g.nodes = append(g.nodes, n)
	}
	return g, nil
}

// Nodes returns the node set in construction order.
func (g *Graph) Nodes() []domain.Navigable {
	out := make([]domain.Navigable, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Len returns the number of navigables.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Lookup returns the navigable with the given label.
func (g *Graph) Lookup(id string) (domain.Navigable, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// Contains reports whether n (by identity) belongs to the node set.
func (g *Graph) Contains(n domain.Navigable) bool {
	if n == nil {
		return false
	}
	existing, ok := g.byID[n.ID()]
	return ok && domain.Same(existing, n)
}

// TransitionTo returns the first transition declared by from towards to.
func (g *Graph) TransitionTo(from, to domain.Navigable) (domain.Transition, bool) {
	if from == nil || to == nil {
		return domain.Transition{}, false
	}
	for _, t := range from.Transitions() {
		if domain.Same(t.To, to) {
			return t, true
		}
	}
	return domain.Transition{}, false
}

// Edges returns the edges currently declared by the node set.
// Self-loops and nil targets are skipped.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, n := range g.nodes {
		for _, t := range n.Transitions() {
			if t.To == nil || domain.Same(t.To, n) {
				continue
			}
			edges = append(edges, Edge{From: n, To: t.To, Label: t.Label})
		}
	}
	return edges
}

// ShortestPath returns the fewest-hops walk from origin to destination,
// excluding origin and including destination.
//
// The result is empty when origin and destination are the same navigable or
// when no walk connects them. Neither has to belong to the node set.
func (g *Graph) ShortestPath(origin, destination domain.Navigable) []domain.Navigable {
	if origin == nil || destination == nil || domain.Same(origin, destination) {
		return nil
	}

	parents := map[domain.Navigable]domain.Navigable{origin: nil}
	queue := []domain.Navigable{origin}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, t := range current.Transitions() {
			next := t.To
			if next == nil || domain.Same(next, current) {
				continue
			}
			if _, seen := parents[next]; seen {
				continue
			}
			parents[next] = current
			if domain.Same(next, destination) {
				return unwind(parents, next)
			}
			queue = append(queue, next)
		}
	}

	return nil
}

// Distance returns the number of hops of the shortest path, 0 for the same
// navigable and -1 when destination is unreachable.
func (g *Graph) Distance(origin, destination domain.Navigable) int {
	if domain.Same(origin, destination) {
		return 0
	}
	path := g.ShortestPath(origin, destination)
	if len(path) == 0 {
		return -1
	}
	return len(path)
}

// Reachable returns every navigable reachable from origin, in BFS order,
// excluding origin itself.
func (g *Graph) Reachable(origin domain.Navigable) []domain.Navigable {
	if origin == nil {
		return nil
	}
	seen := map[domain.Navigable]bool{origin: true}
	queue := []domain.Navigable{origin}
	var out []domain.Navigable

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, t := range current.Transitions() {
			if t.To == nil || seen[t.To] {
				continue
			}
			seen[t.To] = true
			out = append(out, t.To)
			queue = append(queue, t.To)
		}
	}
	return out
}

// IDs maps a path to its labels.
func IDs(path []domain.Navigable) []string {
	ids := make([]string, len(path))
	for i, n := range path {
		ids[i] = domain.IDOf(n)
	}
	return ids
}

func unwind(parents map[domain.Navigable]domain.Navigable, last domain.Navigable) []domain.Navigable {
	var reversed []domain.Navigable
	for n := last; parents[n] != nil; n = parents[n] {
		reversed = append(reversed, n)
	}
	path := make([]domain.Navigable, len(reversed))
	for i, n := range reversed {
		path[len(reversed)-1-i] = n
	}
	return path
}
