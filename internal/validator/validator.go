package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/wayfinder/internal/dto"
	"github.com/aretw0/wayfinder/pkg/registry"
)

// ValidateMap checks for duplicate screens, broken links, self-loops, unknown
// actions and screens unreachable from the start screen.
// A nil registry skips the action check.
func ValidateMap(m *dto.MapFile, actions *registry.Registry) error {
	var errors []string

	known := make(map[string]dto.ScreenSpec, len(m.Screens))
	for _, s := range m.Screens {
		if s.ID == "" {
			errors = append(errors, "Screen without id")
			continue
		}
		if _, dup := known[s.ID]; dup {
			errors = append(errors, fmt.Sprintf("Duplicate screen: '%s'", s.ID))
			continue
		}
		known[s.ID] = s
	}

	for _, s := range m.Screens {
		for _, t := range s.Transitions {
			switch {
			case t.To == "":
				errors = append(errors, fmt.Sprintf("Transition without target in '%s'", s.ID))
			case t.To == s.ID:
				errors = append(errors, fmt.Sprintf("Self-loop in '%s'", s.ID))
			default:
				if _, ok := known[t.To]; !ok {
					errors = append(errors, fmt.Sprintf("Missing screen: '%s' (linked from '%s')", t.To, s.ID))
				}
			}
			if actions == nil {
				continue
			}
			for _, step := range t.AllSteps() {
				if !actions.Has(step.Action) {
					errors = append(errors, fmt.Sprintf("Unknown action '%s' in '%s' -> '%s'", step.Action, s.ID, t.To))
				}
			}
		}
	}

	if m.Start != "" {
		if _, ok := known[m.Start]; !ok {
			errors = append(errors, fmt.Sprintf("Start screen not found: '%s'", m.Start))
		} else {
			for _, id := range unreachable(m, known) {
				errors = append(errors, fmt.Sprintf("Unreachable screen: '%s'", id))
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}

// unreachable crawls from the start screen and returns what it never visits,
// in declaration order.
func unreachable(m *dto.MapFile, known map[string]dto.ScreenSpec) []string {
	visited := map[string]bool{m.Start: true}
	queue := []string{m.Start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, t := range known[current].Transitions {
			if _, ok := known[t.To]; ok && !visited[t.To] {
				visited[t.To] = true
				queue = append(queue, t.To)
			}
		}
	}

	var out []string
	for _, s := range m.Screens {
		if s.ID != "" && !visited[s.ID] {
			out = append(out, s.ID)
		}
	}
	return out
}
