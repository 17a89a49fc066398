package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
map: maps/shop.yaml
log_level: debug
log_format: json
default_timeout: 3s
poll_interval: 50ms
driver:
  name: process
  config: driver.yaml
redis:
  addr: localhost:6379
  prefix: "shop:"
  ttl: 1h
http:
  addr: 127.0.0.1:9090
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "maps/shop.yaml", cfg.Map)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.DefaultTimeout)
	assert.Equal(t, 50*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, DriverProcess, cfg.Driver)
	assert.Equal(t, "driver.yaml", cfg.DriverConfig)
	assert.Equal(t, RedisConfig{Addr: "localhost:6379", Prefix: "shop:", TTL: time.Hour}, cfg.Redis)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "driver:\n  settle: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Settle)
	assert.Equal(t, 10*time.Second, cfg.DefaultTimeout)
	assert.Equal(t, DriverSimulator, cfg.Driver)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"Bad Duration", "default_timeout: soon\n", "invalid default_timeout"},
		{"Unknown Driver", "driver:\n  name: selenium\n", `unknown driver "selenium"`},
		{"Unknown Format", "log_format: xml\n", "unknown log format"},
		{"Zero Poll", "poll_interval: 0s\n", "must be positive"},
		{"Bad YAML", "map: [\n", "failed to parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}
