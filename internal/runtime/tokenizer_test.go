package runtime_test

import (
	"testing"

	"github.com/aretw0/ali/internal/runtime"
	"github.com/aretw0/ali/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Run("Quoted span is one token", func(t *testing.T) {
		tokens, err := runtime.Tokenize(`CREATE PANE "my name"`)
		require.NoError(t, err)
		assert.Equal(t, []string{"CREATE", "PANE", "my name"}, domain.TokenValues(tokens))
		assert.Equal(t, domain.TokenQuoted, tokens[2].Kind)
		assert.Equal(t, `"my name"`, tokens[2].Raw)
	})

	t.Run("Single quotes preserve inner whitespace", func(t *testing.T) {
		tokens, err := runtime.Tokenize(`RENAME WINDOW '  spaced  out '`)
		require.NoError(t, err)
		assert.Equal(t, "  spaced  out ", tokens[2].Value)
	})

	t.Run("Quote adjacent to text", func(t *testing.T) {
		tokens, err := runtime.Tokenize(`SET name="a b"`)
		require.NoError(t, err)
		assert.Equal(t, []string{"SET", "name=a b"}, domain.TokenValues(tokens))
	})

	t.Run("Unterminated quote degrades to whitespace split", func(t *testing.T) {
		tokens, err := runtime.Tokenize(`RENAME "half open`)
		require.NoError(t, err)
		assert.Equal(t, []string{"RENAME", `"half`, "open"}, domain.TokenValues(tokens))
	})

	t.Run("Empty input", func(t *testing.T) {
		_, err := runtime.Tokenize("   \t ")
		assert.ErrorIs(t, err, domain.ErrEmptyCommand)
	})

	t.Run("Token kinds", func(t *testing.T) {
		tokens, err := runtime.Tokenize(`GO ? .1 :main session:1.2 42 a+b`)
		require.NoError(t, err)
		kinds := make([]domain.TokenKind, len(tokens))
		for i, tok := range tokens {
			kinds[i] = tok.Kind
		}
		assert.Equal(t, []domain.TokenKind{
			domain.TokenIdentifier,
			domain.TokenSpecial,
			domain.TokenDotRef,
			domain.TokenColonRef,
			domain.TokenIdentifier,
			domain.TokenInteger,
			domain.TokenWord,
		}, kinds)
	})

	t.Run("Verb is uppercased", func(t *testing.T) {
		tokens, err := runtime.Tokenize("create pane left")
		require.NoError(t, err)
		verb, rest, err := runtime.SplitVerb(tokens)
		require.NoError(t, err)
		assert.Equal(t, "CREATE", verb)
		assert.Equal(t, []string{"pane", "left"}, domain.TokenValues(rest))
	})
}
