package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner executes command strings through a POSIX shell. It serves both
// shell expansions (captured output) and resolved commands (streamed output).
type Runner struct {
	shell     string
	shellArgs []string
	baseDir   string
	env       []string
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithShell replaces the default "sh -c" invocation.
// The command string is appended after args.
func WithShell(shell string, args ...string) RunnerOption {
	return func(r *Runner) {
		r.shell = shell
		r.shellArgs = args
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithEnv adds variables to the inherited environment.
func WithEnv(env map[string]string) RunnerOption {
	return func(r *Runner) {
		for k, v := range env {
			r.env = append(r.env, fmt.Sprintf("%s=%s", k, v))
		}
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		shell:     "sh",
		shellArgs: []string{"-c"},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) command(ctx context.Context, command string) *exec.Cmd {
	args := append(append([]string(nil), r.shellArgs...), command)
	cmd := exec.CommandContext(ctx, r.shell, args...)
	cmd.Dir = r.baseDir
	cmd.Env = append(cmd.Environ(), r.env...)
	return cmd
}

// Output runs command and returns its trimmed stdout.
// A non-zero exit is an error carrying the command's stderr.
func (r *Runner) Output(ctx context.Context, command string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := r.command(ctx, command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("execution failed: %w. Stderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Execute runs command with its output attached to stdout and stderr and
// returns the exit code. Only a failure to start the shell is an error.
func (r *Runner) Execute(ctx context.Context, command string, stdout, stderr io.Writer) (int, error) {
	cmd := r.command(ctx, command)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, fmt.Errorf("execution interrupted: %w", ctxErr)
	}
	return -1, fmt.Errorf("execution failed: %w", err)
}
