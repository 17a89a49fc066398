// Package config loads the CLI configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Driver names.
const (
	DriverSimulator = "simulator"
	DriverProcess   = "process"
)

// Config is the resolved CLI configuration.
type Config struct {
	Map       string
	LogLevel  string
	LogFormat string

	DefaultTimeout time.Duration
	PollInterval   time.Duration

	Driver       string
	DriverConfig string
	Settle       int

	Redis RedisConfig
	HTTP  HTTPConfig
}

// RedisConfig enables the shared record board when Addr is set.
type RedisConfig struct {
	Addr   string
	Prefix string
	TTL    time.Duration
}

// HTTPConfig configures the inspection API.
type HTTPConfig struct {
	Addr string
}

// file mirrors the YAML layout; durations stay strings until Resolve.
type file struct {
	Map            string `yaml:"map"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	DefaultTimeout string `yaml:"default_timeout"`
	PollInterval   string `yaml:"poll_interval"`
	Driver         struct {
		Name   string `yaml:"name"`
		Config string `yaml:"config"`
		Settle int    `yaml:"settle"`
	} `yaml:"driver"`
	Redis struct {
		Addr   string `yaml:"addr"`
		Prefix string `yaml:"prefix"`
		TTL    string `yaml:"ttl"`
	} `yaml:"redis"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Map:            "wayfinder.yaml",
		LogLevel:       "info",
		LogFormat:      "text",
		DefaultTimeout: 10 * time.Second,
		PollInterval:   100 * time.Millisecond,
		Driver:         DriverSimulator,
		HTTP:           HTTPConfig{Addr: ":8080"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.merge(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	setString(&c.Map, f.Map)
	setString(&c.LogLevel, f.LogLevel)
	setString(&c.LogFormat, f.LogFormat)
	setString(&c.Driver, f.Driver.Name)
	setString(&c.DriverConfig, f.Driver.Config)
	setString(&c.Redis.Addr, f.Redis.Addr)
	setString(&c.Redis.Prefix, f.Redis.Prefix)
	setString(&c.HTTP.Addr, f.HTTP.Addr)
	if f.Driver.Settle > 0 {
		c.Settle = f.Driver.Settle
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"default_timeout", f.DefaultTimeout, &c.DefaultTimeout},
		{"poll_interval", f.PollInterval, &c.PollInterval},
		{"redis.ttl", f.Redis.TTL, &c.Redis.TTL},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}

	return c.Validate()
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverSimulator, DriverProcess:
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.DefaultTimeout < 0 || c.PollInterval <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
