package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// ActionFunc defines the signature for a named action implementation.
// It receives a context and a map of arguments declared in the map file.
type ActionFunc func(ctx context.Context, args map[string]any) error

// Registry manages the named actions available to map files.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]ActionFunc
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]ActionFunc),
	}
}

// WithBuiltins creates a registry holding the "noop" and "sleep" actions.
func WithBuiltins() *Registry {
	r := NewRegistry()
	r.Register("noop", func(ctx context.Context, args map[string]any) error { return nil })
	r.Register("sleep", Sleep)
	return r
}

// Register adds an action to the registry.
// If an action with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn ActionFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = fn
}

// Has reports whether an action is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.actions[name]
	return ok
}

// Names returns the registered action names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute looks up an action by name and executes it.
// Returns an error if the action is not found.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) error {
	r.mu.RLock()
	fn, ok := r.actions[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("action not found: %s", name)
	}

	return fn(ctx, args)
}

// Bind returns a transition action that executes name with args.
func (r *Registry) Bind(name string, args map[string]any) domain.Action {
	return func(ctx context.Context) error {
		return r.Execute(ctx, name, args)
	}
}

// Sleep waits for args["duration"] (a Go duration string) or until ctx is done.
func Sleep(ctx context.Context, args map[string]any) error {
	raw, _ := args["duration"].(string)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("sleep: invalid duration %q: %w", raw, err)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
