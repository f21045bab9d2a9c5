package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ali/internal/adapters/file"
	"github.com/aretw0/ali/pkg/domain"
)

type fakeExecutor struct {
	commands []string
	code     int
	err      error
}

func (f *fakeExecutor) Execute(_ context.Context, command string, stdout, _ io.Writer) (int, error) {
	f.commands = append(f.commands, command)
	if f.err != nil {
		return -1, f.err
	}
	io.WriteString(stdout, "ran\n")
	return f.code, nil
}

func builtinOptions() Options {
	return Options{PluginsDir: BuiltinPlugins}
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("Dry run prints the command", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		opts := RunOptions{Options: builtinOptions(), DryRun: true}

		code := Run(ctx, opts, "CREATE PANE LEFT", &stdout, &stderr)
		assert.Equal(t, ExitOK, code)
		assert.Equal(t, "Would execute: tmux split-window -h -b\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("Unknown verb exits 127", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := Run(ctx, RunOptions{Options: builtinOptions()}, "FLY away", &stdout, &stderr)
		assert.Equal(t, ExitNotFound, code)
		assert.Contains(t, stderr.String(), "Unknown verb: FLY.")
		assert.Empty(t, stdout.String())
	})

	t.Run("Other failures exit 1", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := Run(ctx, RunOptions{Options: builtinOptions()}, "CREATE ROW LEFT", &stdout, &stderr)
		assert.Equal(t, ExitFailure, code)
		assert.Contains(t, stderr.String(), "Error: ROW does not support direction 'left'")
	})

	t.Run("Executes and records history", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "commands.jsonl")
		exec := &fakeExecutor{code: 3}
		opts := RunOptions{Options: builtinOptions(), Executor: exec}
		opts.History = path
		opts.Caller = "test"

		var stdout, stderr bytes.Buffer
		code := Run(ctx, opts, "GO .2", &stdout, &stderr)
		assert.Equal(t, 3, code)
		assert.Equal(t, []string{"tmux select-pane -t .2"}, exec.commands)
		assert.Equal(t, "ran\n", stdout.String())

		entries, err := file.NewHistoryStore(path).Recent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		e := entries[0]
		assert.Equal(t, "GO .2", e.Input)
		assert.Equal(t, "tmux", e.RuleSet)
		assert.Equal(t, "test", e.Caller)
		assert.False(t, e.Success)
		require.NotNil(t, e.ExitCode)
		assert.Equal(t, 3, *e.ExitCode)
	})

	t.Run("Executor failure exits 1", func(t *testing.T) {
		exec := &fakeExecutor{err: errors.New("no shell")}
		var stdout, stderr bytes.Buffer
		code := Run(ctx, RunOptions{Options: builtinOptions(), Executor: exec}, "LIST", &stdout, &stderr)
		assert.Equal(t, ExitFailure, code)
		assert.Contains(t, stderr.String(), "Failed to execute: no shell")
	})

	t.Run("Missing plugins directory", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		opts := RunOptions{Options: Options{PluginsDir: filepath.Join(t.TempDir(), "missing")}}
		code := Run(ctx, opts, "LIST", &stdout, &stderr)
		assert.Equal(t, ExitFailure, code)
		assert.True(t, domain.IsErrorResult(stderr.String()))
	})
}
