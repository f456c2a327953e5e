//go:build !windows

package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStubRunner(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-runner")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestLauncherRunSuccess(t *testing.T) {
	bin := writeStubRunner(t, "echo started; exit 0")

	var stdout, stderr bytes.Buffer
	l := NewLauncher(bin, WithOutput(&stdout, &stderr))

	opts, err := BuildOptions(Flags{})
	require.NoError(t, err)

	code, err := l.Run(context.Background(), opts, "runner.config.json")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "started")
}

func TestLauncherRunPropagatesExitCode(t *testing.T) {
	bin := writeStubRunner(t, "exit 3")

	l := NewLauncher(bin, WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))

	opts, err := BuildOptions(Flags{})
	require.NoError(t, err)

	code, err := l.Run(context.Background(), opts, "runner.config.json")
	require.Error(t, err)
	assert.Equal(t, 3, code)
}

func TestLauncherRunPassesConfigAndExtraArgs(t *testing.T) {
	bin := writeStubRunner(t, `echo "$@"`)

	var stdout bytes.Buffer
	l := NewLauncher(bin,
		WithOutput(&stdout, &bytes.Buffer{}),
		WithExtraArgs([]string{"--log-level", "debug"}),
	)

	opts, err := BuildOptions(Flags{})
	require.NoError(t, err)

	_, err = l.Run(context.Background(), opts, "cfg.json")
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "start cfg.json --log-level debug")
}

func TestLauncherRunSetsServeMode(t *testing.T) {
	bin := writeStubRunner(t, `echo "SERVE_MODE=$SERVE_MODE"`)

	var stdout bytes.Buffer
	l := NewLauncher(bin, WithOutput(&stdout, &bytes.Buffer{}))

	opts, err := BuildOptions(Flags{Compiled: true})
	require.NoError(t, err)

	_, err = l.Run(context.Background(), opts, "cfg.json")
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "SERVE_MODE=compiled")
}

func TestLauncherRunMissingBinary(t *testing.T) {
	l := NewLauncher(filepath.Join(t.TempDir(), "no-such-runner"),
		WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))

	opts, err := BuildOptions(Flags{})
	require.NoError(t, err)

	code, err := l.Run(context.Background(), opts, "cfg.json")
	require.Error(t, err)
	assert.Equal(t, -1, code)
}
