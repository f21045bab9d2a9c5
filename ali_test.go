package ali_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ali"
	"github.com/aretw0/ali/internal/testutils"
	"github.com/aretw0/ali/pkg/adapters/memory"
	"github.com/aretw0/ali/pkg/domain"
)

func noEnv(string) (string, bool) { return "", false }

func TestBuiltinPlugins(t *testing.T) {
	ctx := context.Background()
	it, err := ali.New(ctx, "", ali.WithEnv(noEnv))
	require.NoError(t, err)
	assert.Equal(t, "builtin", it.Name)

	cases := []struct {
		input string
		want  string
	}{
		{"CREATE PANE LEFT", "tmux split-window -h -b"},
		{"create pane", "tmux split-window -h"},
		{"NEW PANE below", "tmux split-window -v"},
		{"CREATE COL", "tmux split-window -h -f"},
		{"CREATE ROW UP", "tmux split-window -v -f -b"},
		{"CREATE WINDOW logs", "tmux new-window -n logs"},
		{"CREATE WINDOW", "tmux new-window"},
		{"CREATE SESSION work", "tmux new-session -d -s work"},
		{"GO .2", "tmux select-pane -t .2"},
		{"GO :3", "tmux select-window -t :3"},
		{"GO :?", "tmux choose-window"},
		{"SELECT .?", "tmux display-panes -d 2000"},
		{"KILL PANE .?", `tmux display-panes -d 2000 'kill-pane -t "%%"'`},
		{"DELETE PANE .", "tmux kill-pane"},
		{"CLOSE WINDOW :2", "tmux kill-window -t :2"},
		{"SWITCH SESSION ?", "tmux choose-session"},
		{"SWAP .1 WITH .3", "tmux swap-pane -s .1 -t .3"},
		{"SWAP WINDOW :1", "tmux swap-window -t :1"},
		{"RENAME WINDOW build", "tmux rename-window build"},
		{"LIST", "tmux list-windows"},
		{"LS SESSIONS", "tmux list-sessions"},
		{"EDIT notes.md", "tmux split-window -h -l 60% 'vi notes.md'"},
		{"EDIT", "tmux split-window -h -l 60% 'vi'"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := it.Resolve(ctx, tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("failures", func(t *testing.T) {
		assert.Equal(t, "Error: Empty command", it.Dispatch(ctx, "   "))
		assert.True(t, domain.IsNotFoundResult(it.Dispatch(ctx, "CRATE PANE")))
		assert.Contains(t, it.Dispatch(ctx, "CRATE PANE"), "Did you mean CREATE?")

		res := it.Dispatch(ctx, "CREATE ROW LEFT")
		assert.True(t, domain.IsErrorResult(res))
		assert.Contains(t, res, "left")

		_, err := it.Resolve(ctx, "GO")
		assert.ErrorIs(t, err, domain.ErrNoMatchingCommand)
		assert.Contains(t, err.Error(), "target")
	})

	t.Run("editor honours EDITOR", func(t *testing.T) {
		env := func(k string) (string, bool) {
			if k == "EDITOR" {
				return "nvim", true
			}
			return "", false
		}
		it, err := ali.New(ctx, "", ali.WithEnv(env))
		require.NoError(t, err)

		got, err := it.Resolve(ctx, `EDIT "my notes.md"`)
		require.NoError(t, err)
		assert.Equal(t, "tmux split-window -h -l 60% 'nvim my notes.md'", got)
	})
}

func TestNew_WithLoader(t *testing.T) {
	ctx := context.Background()
	loader := memory.NewLoader(map[string]string{
		"echo": "vocabulary: {verbs: [ECHO]}\ncommands:\n  - exec: \"echo {args}\"\n",
	})

	it, err := ali.New(ctx, "", ali.WithLoader(loader))
	require.NoError(t, err)
	assert.Equal(t, []string{"ECHO"}, it.Catalog().Verbs())
	assert.Equal(t, "echo hello world", it.Dispatch(ctx, "echo hello world"))

	_, err = it.Watch(ctx)
	assert.Error(t, err, "memory loader cannot be watched")

	t.Run("Reload picks up new rule sets", func(t *testing.T) {
		loader.Put("say", []byte("vocabulary: {verbs: [SAY]}\ncommands:\n  - exec: \"say {args}\"\n"))
		require.NoError(t, it.Reload(ctx))
		assert.Equal(t, []string{"ECHO", "SAY"}, it.Catalog().Verbs())
	})

	t.Run("Reload keeps the rule sets that compile", func(t *testing.T) {
		loader.Put("broken", []byte("commands:\n  - callback: missing\n"))
		err := it.Reload(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
		assert.Equal(t, []string{"ECHO", "SAY"}, it.Catalog().Verbs())
	})
}

func TestNew_PluginsDirectory(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"greet/plugin.yaml": `name: greet
vocabulary:
  verbs: [HELLO]
expectations:
  HELLO: ["name?"]
commands:
  - match: {verb: HELLO, name: present}
    exec: "echo hello {name}"
  - exec: "echo hello"
`,
	})

	ctx := context.Background()
	it, err := ali.New(ctx, dir)
	require.NoError(t, err)

	got, err := it.Resolve(ctx, "hello ada")
	require.NoError(t, err)
	assert.Equal(t, "echo hello ada", got)

	res, err := it.Trace(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "greet", res.RuleSet)
	assert.Equal(t, "echo hello", res.Command)
	assert.Equal(t, 1, res.Template)
}
