package process

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("process driver tests rely on sh")
	}
}

func TestRunner_Perform(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()

	runner := NewRunner(WithBaseDir(dir))
	runner.Register("tap", "sh", "-c", `echo "$WAYFINDER_ARG_SELECTOR" > tapped.txt`)
	runner.Register("broken", "sh", "-c", "echo nope >&2; exit 3")

	t.Run("Passes Arguments via Env Vars", func(t *testing.T) {
		err := runner.Perform(context.Background(), "tap", map[string]any{"selector": "#submit"})
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "tapped.txt"))
		require.NoError(t, err)
		assert.Equal(t, "#submit\n", string(data))
	})

	t.Run("Fails For Unregistered Command", func(t *testing.T) {
		err := runner.Perform(context.Background(), "hacker_script", nil)
		assert.ErrorContains(t, err, "not registered")
	})

	t.Run("Reports Stderr", func(t *testing.T) {
		err := runner.Perform(context.Background(), "broken", nil)
		assert.ErrorContains(t, err, "nope")
	})
}

func TestRunner_Probe(t *testing.T) {
	skipOnWindows(t)
	ctx := context.Background()

	runner := NewRunner()
	_, err := runner.Probe(ctx, "home", domain.KindReady)
	assert.ErrorContains(t, err, "no probe command")

	runner.SetProbe("sh", "-c", `
case "$WAYFINDER_SCREEN/$WAYFINDER_KIND" in
  home/ready) exit 0 ;;
  home/exists) exit 0 ;;
  crash/*) exit 7 ;;
  *) exit 1 ;;
esac`)

	ok, err := runner.Probe(ctx, "home", domain.KindReady)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = runner.Probe(ctx, "cart", domain.KindReady)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = runner.Probe(ctx, "crash", domain.KindExists)
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Actions)

	path := filepath.Join(dir, "driver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
actions:
  - name: tap
    command: adb
    args: [shell, input, tap]
  - command: unnamed
probe:
  command: ./probe.sh
`), 0o644))

	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Actions, 2)
	assert.Equal(t, "./probe.sh", cfg.Probe.Command)

	runner := NewRunner(WithConfig(cfg))
	assert.Len(t, runner.registry, 1)
	assert.NotNil(t, runner.probe)
}
