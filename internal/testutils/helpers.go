package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// DemoMap is a three-screen map driven by the simulator actions.
const DemoMap = `
name: demo
start: login
screens:
  - id: login
    transitions:
      - to: home
        label: sign in
        action: goto
        args: {screen: home}
  - id: home
    transitions:
      - to: settings
        action: goto
        args: {screen: settings}
      - to: login
        action: goto
        args: {screen: login}
  - id: settings
    transitions:
      - to: home
        action: back
`

// WriteFile writes content to name inside a fresh temp dir and returns the path.
// It fails the test immediately on error.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
	return path
}

// WriteDemoMap writes DemoMap and returns its path.
func WriteDemoMap(t *testing.T) string {
	t.Helper()
	return WriteFile(t, "demo.yaml", DemoMap)
}
