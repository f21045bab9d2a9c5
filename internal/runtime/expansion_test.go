package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/ali/internal/runtime"
	"github.com/aretw0/ali/pkg/domain"
	"github.com/aretw0/ali/pkg/registry"
	"github.com/stretchr/testify/assert"
)

type fakeShell struct {
	outputs map[string]string
	calls   []string
}

func (f *fakeShell) Output(_ context.Context, command string) (string, error) {
	f.calls = append(f.calls, command)
	out, ok := f.outputs[command]
	if !ok {
		return "", errors.New("exit status 1")
	}
	return out, nil
}

func base(name, def string) domain.ExpansionBase {
	return domain.ExpansionBase{Name: name, Default: def}
}

func TestExpander(t *testing.T) {
	ctx := context.Background()

	callbacks := registry.NewRegistry()
	callbacks.Register("shout", func(ctx context.Context, fields domain.FieldState) (string, error) {
		return fields.Verb() + "!", nil
	})
	callbacks.Register("fail", func(ctx context.Context, fields domain.FieldState) (string, error) {
		return "", errors.New("nope")
	})

	shell := &fakeShell{outputs: map[string]string{"tmux display -p '#S'": "main\n"}}
	env := map[string]string{"EDITOR": "nvim"}

	x := &runtime.Expander{
		Callbacks: callbacks,
		Shell:     shell,
		LookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	}

	nested := map[string]any{
		"PANE": map[string]any{"left": "-h -b"},
		"COL":  map[string]any{"left": "-h -f -b"},
		"default": map[string]any{
			"left": "-generic",
		},
	}

	tests := []struct {
		name  string
		state domain.FieldState
		exp   domain.Expansion
		want  string
	}{
		{
			name:  "map direct",
			state: domain.FieldState{"direction": "up"},
			exp:   domain.MapExpansion{ExpansionBase: base("flag", "-x"), Field: "direction", Mappings: map[string]any{"up": "-v -b"}},
			want:  "-v -b",
		},
		{
			name:  "map missing field uses default",
			state: domain.FieldState{},
			exp:   domain.MapExpansion{ExpansionBase: base("flag", "-x"), Field: "direction", Mappings: map[string]any{"up": "-v -b"}},
			want:  "-x",
		},
		{
			name:  "map nested per object",
			state: domain.FieldState{"object": "COL", "direction": "left"},
			exp:   domain.MapExpansion{ExpansionBase: base("flag", ""), Field: "direction", Mappings: nested},
			want:  "-h -f -b",
		},
		{
			name:  "map object bucket without value",
			state: domain.FieldState{"object": "PANE", "direction": "down"},
			exp:   domain.MapExpansion{ExpansionBase: base("flag", "none"), Field: "direction", Mappings: nested},
			want:  "none",
		},
		{
			name:  "map default bucket",
			state: domain.FieldState{"object": "WINDOW", "direction": "left"},
			exp:   domain.MapExpansion{ExpansionBase: base("flag", ""), Field: "direction", Mappings: nested},
			want:  "-generic",
		},
		{
			name: "env set",
			exp:  domain.EnvExpansion{ExpansionBase: base("editor", "vi"), Var: "EDITOR"},
			want: "nvim",
		},
		{
			name: "env missing",
			exp:  domain.EnvExpansion{ExpansionBase: base("pager", "less"), Var: "PAGER"},
			want: "less",
		},
		{
			name: "shell output trimmed",
			exp:  domain.ShellExpansion{ExpansionBase: base("session", "0"), Command: "tmux display -p '#S'"},
			want: "main",
		},
		{
			name: "shell failure uses default",
			exp:  domain.ShellExpansion{ExpansionBase: base("session", "0"), Command: "false"},
			want: "0",
		},
		{
			name:  "format",
			state: domain.FieldState{"target": ":1"},
			exp:   domain.FormatExpansion{ExpansionBase: base("target_flag", ""), Template: "-t {target}"},
			want:  "-t :1",
		},
		{
			name:  "format with empty field uses default",
			state: domain.FieldState{"target": ""},
			exp:   domain.FormatExpansion{ExpansionBase: base("target_flag", ""), Template: "-t {target}"},
			want:  "",
		},
		{
			name:  "callback",
			state: domain.FieldState{"verb": "GO"},
			exp:   domain.CallbackExpansion{ExpansionBase: base("loud", ""), Callback: "shout"},
			want:  "GO!",
		},
		{
			name:  "callback error uses default",
			state: domain.FieldState{"verb": "GO"},
			exp:   domain.CallbackExpansion{ExpansionBase: base("loud", "quiet"), Callback: "fail"},
			want:  "quiet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := tt.state
			if state == nil {
				state = domain.FieldState{}
			}
			out := x.Expand(ctx, state, []domain.Expansion{tt.exp})
			assert.Equal(t, tt.want, out[tt.exp.ExpansionName()])
		})
	}

	t.Run("Expansions never mutate the state", func(t *testing.T) {
		state := domain.FieldState{"verb": "GO", "direction": "up"}
		x.Expand(ctx, state, []domain.Expansion{
			domain.MapExpansion{ExpansionBase: base("direction", ""), Field: "direction", Mappings: map[string]any{"up": "-U"}},
		})
		assert.Equal(t, "up", state["direction"])
	})
}

func TestMergeExpansions(t *testing.T) {
	global := []domain.Expansion{
		domain.EnvExpansion{ExpansionBase: base("z", ""), Var: "Z"},
		domain.EnvExpansion{ExpansionBase: base("flag", "global"), Var: "FLAG"},
	}
	local := []domain.Expansion{
		domain.FormatExpansion{ExpansionBase: base("flag", "local"), Template: "x"},
	}

	merged := runtime.MergeExpansions(global, local)
	names := make([]string, len(merged))
	for i, m := range merged {
		names[i] = m.ExpansionName()
	}
	assert.Equal(t, []string{"flag", "z"}, names)
	assert.Equal(t, "local", merged[0].Fallback())
}
