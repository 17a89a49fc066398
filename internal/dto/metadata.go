package dto

// MapFile is the declarative description of an application's screens.
// It uses "mapstructure" tags so the same shape decodes from YAML or JSON.
type MapFile struct {
	Name        string       `json:"name" mapstructure:"name"`
	Description string       `json:"description,omitempty" mapstructure:"description"`
	Start       string       `json:"start,omitempty" mapstructure:"start"`
	Screens     []ScreenSpec `json:"screens" mapstructure:"screens"`
}

// ScreenSpec declares one screen.
type ScreenSpec struct {
	ID          string `json:"id" mapstructure:"id"`
	Description string `json:"description,omitempty" mapstructure:"description"`

	// Probe is the key handed to the driver for status queries (defaults to ID).
	Probe string `json:"probe,omitempty" mapstructure:"probe"`

	Transitions []TransitionSpec `json:"transitions,omitempty" mapstructure:"transitions"`
}

// TransitionSpec declares an edge and the steps that traverse it.
type TransitionSpec struct {
	To     string         `json:"to" mapstructure:"to"`
	Label  string         `json:"label,omitempty" mapstructure:"label"`
	Action string         `json:"action,omitempty" mapstructure:"action"`
	Args   map[string]any `json:"args,omitempty" mapstructure:"args"`

	// Steps run in order after Action, if both are set.
	Steps []StepSpec `json:"steps,omitempty" mapstructure:"steps"`
}

// StepSpec is a single named action invocation.
type StepSpec struct {
	Action string         `json:"action" mapstructure:"action"`
	Args   map[string]any `json:"args,omitempty" mapstructure:"args"`
}

// ProbeKey returns the driver key of the screen.
func (s ScreenSpec) ProbeKey() string {
	if s.Probe != "" {
		return s.Probe
	}
	return s.ID
}

// AllSteps returns Action (if any) followed by Steps.
func (t TransitionSpec) AllSteps() []StepSpec {
	var out []StepSpec
	if t.Action != "" {
		out = append(out, StepSpec{Action: t.Action, Args: t.Args})
	}
	return append(out, t.Steps...)
}
