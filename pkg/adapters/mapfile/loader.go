// Package mapfile loads screen maps declared in YAML (or JSON) and binds them
// to a UI driver.
package mapfile

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/wayfinder/internal/compiler"
	"github.com/aretw0/wayfinder/internal/dto"
	"github.com/aretw0/wayfinder/internal/validator"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/dsl"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/registry"
)

// Map is a parsed and structurally valid map file.
type Map = dto.MapFile

// Parse decodes and validates map content.
func Parse(data []byte) (*Map, error) {
	m, err := compiler.NewParser().Parse(data)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateMap(m, nil); err != nil {
		return nil, fmt.Errorf("invalid map %q: %w", m.Name, err)
	}
	return m, nil
}

// Load reads a map file from disk.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Bind turns the map into navigables.
//
// Steps resolve against actions first and fall back to the driver. Probes are
// answered by the driver; without one, every screen is considered present and
// ready and every step must be a registered action.
func Bind(m *Map, drv ports.Driver, actions *registry.Registry) ([]domain.Navigable, error) {
	if actions == nil {
		actions = registry.NewRegistry()
	}
	if drv == nil {
		if err := validator.ValidateMap(m, actions); err != nil {
			return nil, fmt.Errorf("invalid map %q: %w", m.Name, err)
		}
	}

	b := dsl.New()
	for _, s := range m.Screens {
		sb := b.Add(s.ID).Describe(s.Description)
		if drv != nil {
			key := s.ProbeKey()
			sb.Exists(probe(drv, key, domain.KindExists)).
				Ready(probe(drv, key, domain.KindReady))
		}
		for _, t := range s.Transitions {
			sb.Go(t.To, sequence(t.AllSteps(), drv, actions)).Label(t.Label)
		}
	}
	return b.Build()
}

func probe(drv ports.Driver, key string, kind domain.StateKind) dsl.Probe {
	return func(ctx context.Context) (bool, error) {
		return drv.Probe(ctx, key, kind)
	}
}

func sequence(steps []dto.StepSpec, drv ports.Driver, actions *registry.Registry) domain.Action {
	if len(steps) == 0 {
		return nil
	}
	return func(ctx context.Context) error {
		for i, step := range steps {
			var err error
			if actions.Has(step.Action) || drv == nil {
				err = actions.Execute(ctx, step.Action, step.Args)
			} else {
				err = drv.Perform(ctx, step.Action, step.Args)
			}
			if err != nil {
				return fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
			}
		}
		return nil
	}
}
