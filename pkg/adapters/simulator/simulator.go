// Package simulator provides an in-process ports.Driver that models an
// application as a single current screen. It backs the CLI demo mode and
// end-to-end tests of map files.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/registry"
)

// ErrActionFailed is returned by actions configured to fail.
var ErrActionFailed = errors.New("simulated action failure")

// Step records one performed action.
type Step struct {
	Action string
	Args   map[string]any
	Err    error
}

// Driver simulates an application.
//
// Supported actions are "goto" (args: screen), "back" and "fail". After each
// screen change, readiness probes of the new screen report false for the
// configured number of settle polls.
type Driver struct {
	mu       sync.Mutex
	current  string
	history  []string
	settle   int
	pending  int
	latency  time.Duration
	failing  map[string]bool
	unstable map[string]bool
	log      []Step
}

// Option configures the simulator.
type Option func(*Driver)

// WithStart sets the initial screen.
func WithStart(screen string) Option {
	return func(d *Driver) {
		d.current = screen
	}
}

// WithSettle makes a freshly shown screen report not-ready for polls probes.
func WithSettle(polls int) Option {
	return func(d *Driver) {
		d.settle = polls
	}
}

// WithLatency delays every action.
func WithLatency(latency time.Duration) Option {
	return func(d *Driver) {
		d.latency = latency
	}
}

// WithFailingTarget makes every "goto" towards screen fail.
func WithFailingTarget(screen string) Option {
	return func(d *Driver) {
		d.failing[screen] = true
	}
}

// WithNeverReady makes screen show up but never become ready.
func WithNeverReady(screen string) Option {
	return func(d *Driver) {
		d.unstable[screen] = true
	}
}

// New creates a simulator.
func New(opts ...Option) *Driver {
	d := &Driver{
		failing:  make(map[string]bool),
		unstable: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.pending = d.settle
	return d
}

// Register exposes the simulator actions as named registry actions.
func (d *Driver) Register(r *registry.Registry) {
	for _, name := range []string{"goto", "back", "fail"} {
		action := name
		r.Register(action, func(ctx context.Context, args map[string]any) error {
			return d.Perform(ctx, action, args)
		})
	}
}

// Perform implements ports.Driver.
func (d *Driver) Perform(ctx context.Context, action string, args map[string]any) error {
	if d.latency > 0 {
		timer := time.NewTimer(d.latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.apply(action, args)
	d.log = append(d.log, Step{Action: action, Args: args, Err: err})
	return err
}

func (d *Driver) apply(action string, args map[string]any) error {
	switch action {
	case "goto":
		screen, _ := args["screen"].(string)
		if screen == "" {
			return fmt.Errorf("goto: missing screen argument")
		}
		if d.failing[screen] {
			return fmt.Errorf("goto %s: %w", screen, ErrActionFailed)
		}
		d.show(screen, true)
		return nil
	case "back":
		if len(d.history) == 0 {
			return fmt.Errorf("back: no history")
		}
		prev := d.history[len(d.history)-1]
		d.history = d.history[:len(d.history)-1]
		d.show(prev, false)
		return nil
	case "fail":
		return ErrActionFailed
	}
	return fmt.Errorf("unsupported action: %s", action)
}

func (d *Driver) show(screen string, push bool) {
	if push && d.current != "" {
		d.history = append(d.history, d.current)
	}
	d.current = screen
	d.pending = d.settle
}

// Probe implements ports.Driver.
func (d *Driver) Probe(ctx context.Context, screenID string, kind domain.StateKind) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch kind {
	case domain.KindExists:
		return d.current == screenID, nil
	case domain.KindReady:
		if d.current != screenID || d.unstable[screenID] {
			return false, nil
		}
		if d.pending > 0 {
			d.pending--
			return false, nil
		}
		return true, nil
	}
	return false, domain.ErrUnsupportedKind
}

// Current returns the displayed screen.
func (d *Driver) Current() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Log returns the performed actions in order.
func (d *Driver) Log() []Step {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Step, len(d.log))
	copy(out, d.log)
	return out
}
