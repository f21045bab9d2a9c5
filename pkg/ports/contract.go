package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/ali/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunHistoryStoreContract runs a suite of tests to verify that a HistoryStore
// implementation adheres to the defined interface contract.
// The store must be empty when the suite starts.
func RunHistoryStoreContract(t *testing.T, store HistoryStore) {
	ctx := context.Background()
	sessionID := domain.NewSessionID(time.Now())

	t.Run("Empty", func(t *testing.T) {
		entries, err := store.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Append and Recent", func(t *testing.T) {
		exitCode := 0
		first := domain.HistoryEntry{
			Timestamp: time.Now().UTC().Truncate(time.Second),
			SessionID: sessionID,
			Input:     "CREATE PANE LEFT",
			Verb:      "CREATE",
			RuleSet:   "tmux",
			Fields:    domain.FieldState{"verb": "CREATE", "object": "PANE", "direction": "left"},
			Result:    "tmux split-window -h -b",
			Outcome:   domain.OutcomeResolved,
			Success:   true,
			ExitCode:  &exitCode,
			Env:       map[string]string{"TMUX_PANE": "%1"},
		}
		second := domain.HistoryEntry{
			Timestamp: time.Now().UTC().Truncate(time.Second),
			SessionID: sessionID,
			Input:     "FLY AWAY",
			Outcome:   domain.OutcomeUnknownVerb,
			Error:     "Unknown verb: FLY. Available: CREATE",
		}

		require.NoError(t, store.Append(ctx, first), "Append should not return error")
		require.NoError(t, store.Append(ctx, second))

		entries, err := store.Recent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "CREATE PANE LEFT", entries[0].Input)
		assert.Equal(t, sessionID, entries[0].SessionID)
		assert.Equal(t, "tmux split-window -h -b", entries[0].Result)
		assert.True(t, entries[0].Success)
		require.NotNil(t, entries[0].ExitCode)
		assert.Equal(t, 0, *entries[0].ExitCode)
		assert.Equal(t, "%1", entries[0].Env["TMUX_PANE"])
		assert.Equal(t, "left", entries[0].Fields.String("direction"))
		assert.True(t, first.Timestamp.Equal(entries[0].Timestamp))

		assert.Equal(t, "FLY AWAY", entries[1].Input)
		assert.Equal(t, domain.OutcomeUnknownVerb, entries[1].Outcome)
		assert.False(t, entries[1].Success)
	})

	t.Run("Recent with limit keeps newest", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, domain.HistoryEntry{
			Timestamp: time.Now().UTC(),
			SessionID: sessionID,
			Input:     "GO :1",
			Outcome:   domain.OutcomeResolved,
			Success:   true,
		}))

		entries, err := store.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "FLY AWAY", entries[0].Input)
		assert.Equal(t, "GO :1", entries[1].Input)
	})
}
