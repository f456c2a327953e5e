package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// Launcher starts the external test runner with a generated config
// file and reports its exit code.
type Launcher struct {
	bin       string
	extraArgs []string
	stdout    io.Writer
	stderr    io.Writer
}

// LauncherOption is a functional option for Launcher.
type LauncherOption func(*Launcher)

// WithExtraArgs appends arguments always passed to the runner.
func WithExtraArgs(args []string) LauncherOption {
	return func(l *Launcher) {
		l.extraArgs = append(l.extraArgs, args...)
	}
}

// WithOutput redirects the runner's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) LauncherOption {
	return func(l *Launcher) {
		l.stdout = stdout
		l.stderr = stderr
	}
}

// NewLauncher creates a launcher for the given runner binary.
func NewLauncher(bin string, opts ...LauncherOption) *Launcher {
	l := &Launcher{
		bin:    bin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WriteConfigFile serializes options to a JSON config file the runner
// reads, and returns its path. The file lives in a temp directory and
// is the caller's to remove.
func WriteConfigFile(opts *Options) (string, error) {
	dir, err := os.MkdirTemp("", "testpilot-")
	if err != nil {
		return "", fmt.Errorf("cannot create config directory: %w", err)
	}

	path := filepath.Join(dir, "runner.config.json")
	data, err := json.MarshalIndent(opts, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cannot encode runner config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("cannot write runner config: %w", err)
	}

	return path, nil
}

// Run starts the runner with the given config file and blocks until it
// exits. The child inherits the current environment plus opts.Env. The
// returned int is the child's exit code; it is meaningful whenever err
// is nil or the error wraps an exec.ExitError.
func (l *Launcher) Run(ctx context.Context, opts *Options, configFile string) (int, error) {
	args := []string{"start", configFile}
	args = append(args, l.extraArgs...)

	cmd := exec.CommandContext(ctx, l.bin, args...)
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr

	cmd.Env = os.Environ()
	for key, value := range opts.Env {
		cmd.Env = append(cmd.Env, key+"="+value)
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), err
	}

	return -1, fmt.Errorf("failed to start test runner %s: %w", l.bin, err)
}
