package ports

import (
	"context"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Driver is the boundary to the UI automation layer.
// The engine never calls it directly: declarative screens (map files) are
// bound to a driver, which then backs their transition actions and probes.
type Driver interface {
	// Perform executes a named driver action (e.g. "tap", "goto").
	Perform(ctx context.Context, action string, args map[string]any) error

	// Probe answers a status query for the screen with the given ID.
	Probe(ctx context.Context, screenID string, kind domain.StateKind) (bool, error)
}
