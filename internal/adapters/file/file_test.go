package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ali/internal/adapters/file"
	"github.com/aretw0/ali/pkg/domain"
	"github.com/aretw0/ali/pkg/ports"
)

func TestLoader(t *testing.T) {
	ctx := context.Background()
	loader := file.NewLoader(fstest.MapFS{
		"tmux/plugin.yaml":       {Data: []byte("name: tmux")},
		"git/plugin.yml":         {Data: []byte("name: git")},
		"docker/plugin.json":     {Data: []byte(`{"name": "docker"}`)},
		"docker/plugin.yaml":     {Data: []byte("name: docker-yaml")},
		"notes/README.md":        {Data: []byte("not a plugin")},
		"tmux/scripts/setup.yml": {Data: []byte("ignored: true")},
	})

	t.Run("ListRuleSets", func(t *testing.T) {
		names, err := loader.ListRuleSets(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"docker", "git", "tmux"}, names)
	})

	t.Run("GetRuleSet prefers plugin.yaml", func(t *testing.T) {
		data, err := loader.GetRuleSet(ctx, "docker")
		require.NoError(t, err)
		assert.Equal(t, "name: docker-yaml", string(data))

		data, err = loader.GetRuleSet(ctx, "git")
		require.NoError(t, err)
		assert.Equal(t, "name: git", string(data))
	})

	t.Run("GetRuleSet missing", func(t *testing.T) {
		_, err := loader.GetRuleSet(ctx, "notes")
		assert.ErrorContains(t, err, "rule set not found: notes")
	})
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "echo"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "echo", "plugin.yaml"), []byte("name: echo"), 0644))

	names, err := file.NewDirLoader(dir).ListRuleSets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"echo"}, names)
}

func TestHistoryStore_Contract(t *testing.T) {
	store := file.NewHistoryStore(filepath.Join(t.TempDir(), "logs", "commands.jsonl"))
	ports.RunHistoryStoreContract(t, store)
}

func TestHistoryStore_JSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.jsonl")
	store := file.NewHistoryStore(path)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, domain.HistoryEntry{Input: "GO .1", Outcome: domain.OutcomeResolved}))
	require.NoError(t, store.Append(ctx, domain.HistoryEntry{Input: "GO .2", Outcome: domain.OutcomeResolved}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"command_raw":"GO .1"`)
	assert.Equal(t, 2, countLines(raw))

	t.Run("Corrupt line is reported", func(t *testing.T) {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
		require.NoError(t, err)
		_, err = f.WriteString("{not json\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())

		_, err = store.Recent(ctx, 0)
		assert.ErrorContains(t, err, "line 3")
	})
}

func countLines(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}
