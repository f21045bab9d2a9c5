package runtime_test

import (
	"testing"

	"github.com/aretw0/ali/internal/runtime"
	"github.com/aretw0/ali/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	t.Run("Two level composition", func(t *testing.T) {
		values := map[string]string{
			"direction":  "left",
			"split_left": "tmux split-window -h -b",
		}
		assert.Equal(t, "tmux split-window -h -b", runtime.Substitute("{split_{direction}}", values))
	})

	t.Run("Fragment placeholders resolve on the second pass", func(t *testing.T) {
		values := map[string]string{
			"split": "tmux split-window {flags} -l {size|50%}",
			"flags": "-v",
		}
		assert.Equal(t, "tmux split-window -v -l 50%", runtime.Substitute("{split}", values))
	})

	t.Run("Missing key resolves to default or empty", func(t *testing.T) {
		values := map[string]string{"name": ""}
		assert.Equal(t, "rename untitled", runtime.Substitute("rename {name|untitled}", values))
		assert.Equal(t, "kill-pane", runtime.Substitute("kill-pane {target}", values))
	})

	t.Run("No more than two passes", func(t *testing.T) {
		values := map[string]string{
			"a": "{b}",
			"b": "{c}",
			"c": "deep",
		}
		assert.Equal(t, "{c}", runtime.Substitute("{a}", values))
	})

	t.Run("Self referential fragment terminates", func(t *testing.T) {
		values := map[string]string{"loop": "x{loop}"}
		assert.Equal(t, "xx{loop}", runtime.Substitute("{loop}", values))
	})

	t.Run("Stray braces are kept", func(t *testing.T) {
		values := map[string]string{"x": "1"}
		assert.Equal(t, "a } 1 {", runtime.Substitute("a } {x} {", values))
		assert.Equal(t, "} 1", runtime.Substitute("} {x}", values))
	})

	t.Run("Result is trimmed", func(t *testing.T) {
		assert.Equal(t, "tmux kill-pane", runtime.Substitute("  tmux kill-pane {target} ", nil))
	})
}

func TestBuildContext(t *testing.T) {
	services := map[string]string{"flag": "service", "pane": "tmux split-window"}
	state := domain.FieldState{"verb": "CREATE", "flag": "raw", "count": int64(3), "args": []string{"a", "b"}}
	expanded := map[string]string{"flag": "-h"}

	values := runtime.BuildContext(services, state, expanded)
	assert.Equal(t, "-h", values["flag"])
	assert.Equal(t, "tmux split-window", values["pane"])
	assert.Equal(t, "3", values["count"])
	assert.Equal(t, "a b", values["args"])
}
