package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ali/internal/runtime"
	"github.com/aretw0/ali/pkg/domain"
)

func TestMatchCommand(t *testing.T) {
	rs := &domain.RuleSet{
		Name: "panes",
		Expectations: map[string][]domain.Expectation{
			"GO": {{Field: "object", Optional: true}, {Field: "target"}},
		},
		Commands: []domain.CommandTemplate{
			{Match: domain.ConditionSet{cond("verb", "GO"), present("target")}, Callback: "pick"},
			{Match: domain.ConditionSet{cond("verb", "GO"), present("target")}, Exec: "go {target}"},
			{Match: domain.ConditionSet{cond("verb", "LIST")}, Exec: "list"},
		},
	}

	t.Run("First match in declaration order", func(t *testing.T) {
		state := domain.FieldState{"verb": "GO", "target": ".1"}
		i, cmd := runtime.MatchCommand(rs, state, 0)
		require.NotNil(t, cmd)
		assert.Equal(t, 0, i)
		assert.Equal(t, "pick", cmd.Callback)
	})

	t.Run("Resumes after a fall-through", func(t *testing.T) {
		state := domain.FieldState{"verb": "GO", "target": ".1"}
		i, cmd := runtime.MatchCommand(rs, state, 1)
		require.NotNil(t, cmd)
		assert.Equal(t, 1, i)
		assert.Equal(t, "go {target}", cmd.Exec)

		i, cmd = runtime.MatchCommand(rs, state, 2)
		assert.Nil(t, cmd)
		assert.Equal(t, -1, i)
	})

	t.Run("No match names missing expectations", func(t *testing.T) {
		err := runtime.NoMatch(rs, domain.FieldState{"verb": "GO", "object": "PANE"})
		assert.Equal(t, []string{"target"}, err.Missing)
		assert.ErrorIs(t, err, domain.ErrNoMatchingCommand)
	})

	t.Run("No match falls back to present conditions", func(t *testing.T) {
		loose := &domain.RuleSet{
			Name:     "loose",
			Commands: []domain.CommandTemplate{{Match: domain.ConditionSet{cond("verb", "SWAP"), present("with")}, Exec: "swap"}},
		}
		err := runtime.NoMatch(loose, domain.FieldState{"verb": "SWAP"})
		assert.Equal(t, []string{"with"}, err.Missing)
	})
}
