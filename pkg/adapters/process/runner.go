// Package process implements a ports.Driver backed by local commands
// (adb, xdotool, playwright scripts...).
package process

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// EnvPrefix prefixes every argument passed to a command.
const EnvPrefix = "WAYFINDER_"

// Runner implements ports.Driver by executing local processes.
// It follows a Strict Registry pattern for security (Allow-Listing).
type Runner struct {
	registry map[string]ProcessConfig
	probe    *ProcessConfig
	baseDir  string
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithConfig populates the allow-list and the probe from a loaded config.
func WithConfig(cfg *ConfigFile) RunnerOption {
	return func(r *Runner) {
		for _, action := range cfg.Actions {
			if action.Name == "" {
				continue
			}
			r.registry[action.Name] = action
		}
		r.probe = cfg.Probe
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// NewRunner creates a new process driver.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]ProcessConfig),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted command to the allow-list.
func (r *Runner) Register(name string, command string, args ...string) {
	r.registry[name] = ProcessConfig{
		Name:    name,
		Command: command,
		Args:    args,
	}
}

// SetProbe sets the command answering status queries.
func (r *Runner) SetProbe(command string, args ...string) {
	r.probe = &ProcessConfig{Name: "probe", Command: command, Args: args}
}

// Perform implements ports.Driver.
// Arguments are passed as WAYFINDER_ARG_<KEY> environment variables, never as flags.
func (r *Runner) Perform(ctx context.Context, action string, args map[string]any) error {
	proc, ok := r.registry[action]
	if !ok {
		return fmt.Errorf("process action not registered: %s", action)
	}

	_, err := r.run(ctx, proc, argsEnv(args))
	if err != nil {
		return fmt.Errorf("action %s: %w", action, err)
	}
	return nil
}

// Probe implements ports.Driver.
// The screen and kind are passed as WAYFINDER_SCREEN and WAYFINDER_KIND.
func (r *Runner) Probe(ctx context.Context, screenID string, kind domain.StateKind) (bool, error) {
	if r.probe == nil {
		return false, fmt.Errorf("process driver: no probe command configured")
	}

	env := []string{
		EnvPrefix + "SCREEN=" + screenID,
		EnvPrefix + "KIND=" + string(kind),
	}
	_, err := r.run(ctx, *r.probe, env)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return true, nil
	case errors.As(err, &exitErr) && exitErr.ExitCode() == 1:
		return false, nil
	}
	return false, fmt.Errorf("probe %s/%s: %w", screenID, kind, err)
}

func (r *Runner) run(ctx context.Context, proc ProcessConfig, env []string) (string, error) {
	cmd := exec.CommandContext(ctx, proc.Command, proc.Args...)
	cmd.Dir = r.baseDir
	cmd.Env = cmd.Environ()
	for k, v := range proc.Environment {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	cmd.Env = append(cmd.Env, env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

func argsEnv(args map[string]any) []string {
	env := make([]string, 0, len(args))
	for k, v := range args {
		var val string
		switch v.(type) {
		case string, int, int64, float64, bool:
			val = fmt.Sprintf("%v", v)
		case nil:
			val = ""
		default:
			// Complex types: Try JSON
			if raw, err := json.Marshal(v); err == nil {
				val = string(raw)
			} else {
				val = fmt.Sprintf("%v", v)
			}
		}
		env = append(env, fmt.Sprintf("%sARG_%s=%s", EnvPrefix, strings.ToUpper(k), val))
	}
	return env
}
