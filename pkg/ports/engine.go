package ports

import (
	"context"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/graph"
)

// Navigator is the session surface used by transport adapters (HTTP, MCP).
type Navigator interface {
	// Graph returns the navigation graph of the session.
	Graph() *graph.Graph

	// Position returns the last navigable confirmed ready (nil before any confirmation).
	Position() domain.Navigable

	// NavigateTo moves from the current position to destination and returns the hops taken.
	NavigateTo(ctx context.Context, destination domain.Navigable) ([]domain.Navigable, error)

	// Records returns the last-known state records.
	Records(ctx context.Context) ([]domain.StateRecord, error)
}
