package main

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/launchdarkly/process-test-harness/process"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp(t *testing.T) {
	assert.Equal(t, 0, run(context.Background(), []string{"daemontest", "--help"}))
}

func TestConfigIsRequired(t *testing.T) {
	assert.Equal(t, process.SetupFailed, run(context.Background(), []string{"daemontest"}))
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: nothing to run\n"), 0644))
	assert.Equal(t, process.SetupFailed, run(context.Background(), []string{"daemontest", "--config", path}))
}

func TestForegroundDaemonChecks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs /bin/sh")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh is not available")
	}
	path := filepath.Join(t.TempDir(), "sleeper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: sleeper
command: ["/bin/sh", "-c", "exec sleep 30"]
foreground: true
shutdown_polls: 100
shutdown_poll_interval: 20ms
checks:
  - name: process alive
    process_alive: true
`), 0644))

	assert.Equal(t, 0, run(context.Background(), []string{"daemontest", "-c", path}))
}
