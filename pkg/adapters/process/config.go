package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProcessConfig represents an allow-listed command.
type ProcessConfig struct {
	Name        string            `yaml:"name" json:"name"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
}

// ConfigFile represents the structure of driver.yaml.
//
// Actions are the commands transitions may run. Probe, when set, answers
// status queries: exit code 0 means true, 1 means false, anything else is a
// probe failure.
type ConfigFile struct {
	Actions []ProcessConfig `yaml:"actions" json:"actions"`
	Probe   *ProcessConfig  `yaml:"probe" json:"probe"`
}

// LoadConfig reads a driver configuration file (YAML or JSON).
// A missing file yields an empty configuration.
func LoadConfig(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ConfigFile{}, nil
		}
		return nil, fmt.Errorf("failed to read driver config: %w", err)
	}

	var cfg ConfigFile
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse driver json: %w", err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse driver yaml: %w", err)
		}
	}

	return &cfg, nil
}
