package runtime_test

import (
	"testing"

	"github.com/aretw0/ali/internal/runtime"
	"github.com/aretw0/ali/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	rules := domain.ValidationRules{
		AllowedParams: map[string][]string{
			"CREATE PANE": {"direction", "size"},
			"LIST":        {},
		},
		AllowedDirections: map[string][]string{
			"COL": {"left", "right"},
		},
	}

	t.Run("Reserved fields are always allowed", func(t *testing.T) {
		state := domain.FieldState{"verb": "LIST", "args": []string{"-a"}, "context": "cli"}
		assert.NoError(t, runtime.Validate(state, rules))
	})

	t.Run("Disallowed parameter names the key", func(t *testing.T) {
		state := domain.FieldState{"verb": "CREATE", "object": "PANE", "direction": "left", "target": ".1"}
		err := runtime.Validate(state, rules)
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.EqualError(t, err, "'CREATE PANE' doesn't accept parameter 'target'")

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "CREATE PANE", verr.CommandKey)
		assert.Equal(t, "target", verr.Param)
	})

	t.Run("First offending key in sorted order", func(t *testing.T) {
		state := domain.FieldState{"verb": "LIST", "zeta": 1, "alpha": 2}
		var verr *domain.ValidationError
		require.ErrorAs(t, runtime.Validate(state, rules), &verr)
		assert.Equal(t, "alpha", verr.Param)
		assert.Equal(t, "LIST", verr.CommandKey)
	})

	t.Run("Key without allow-list accepts anything", func(t *testing.T) {
		state := domain.FieldState{"verb": "CREATE", "object": "WINDOW", "whatever": "x"}
		assert.NoError(t, runtime.Validate(state, rules))
	})

	t.Run("Direction allow-list", func(t *testing.T) {
		state := domain.FieldState{"verb": "CREATE", "object": "COL", "direction": "up"}
		err := runtime.Validate(state, rules)
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.EqualError(t, err, "COL does not support direction 'up'. Allowed: left, right")

		state["direction"] = "left"
		assert.NoError(t, runtime.Validate(state, rules))
	})
}
