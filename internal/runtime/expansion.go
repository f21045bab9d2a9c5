package runtime

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/aretw0/ali/internal/logging"
	"github.com/aretw0/ali/pkg/domain"
	"github.com/aretw0/ali/pkg/ports"
	"github.com/aretw0/ali/pkg/registry"
)

var formatFieldPattern = regexp.MustCompile(`\{(\w+)\}`)

// EnvLookup reads an environment variable. os.LookupEnv satisfies it.
type EnvLookup func(key string) (string, bool)

// Expander computes expansion values for a matched command.
type Expander struct {
	Callbacks *registry.Registry
	Shell     ports.ShellRunner
	LookupEnv EnvLookup
	Logger    *slog.Logger
}

// MergeExpansions combines global and command-local expansions by name,
// local ones winning, and returns them sorted by name.
func MergeExpansions(global, local []domain.Expansion) []domain.Expansion {
	byName := make(map[string]domain.Expansion, len(global)+len(local))
	for _, x := range global {
		byName[x.ExpansionName()] = x
	}
	for _, x := range local {
		byName[x.ExpansionName()] = x
	}
	merged := make([]domain.Expansion, 0, len(byName))
	for _, x := range byName {
		merged = append(merged, x)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ExpansionName() < merged[j].ExpansionName()
	})
	return merged
}

// Expand evaluates every expansion against state. Failures never surface:
// the expansion's default is used instead.
func (x *Expander) Expand(ctx context.Context, state domain.FieldState, expansions []domain.Expansion) map[string]string {
	out := make(map[string]string, len(expansions))
	for _, exp := range expansions {
		out[exp.ExpansionName()] = x.expandOne(ctx, state, exp)
	}
	return out
}

func (x *Expander) expandOne(ctx context.Context, state domain.FieldState, exp domain.Expansion) string {
	switch e := exp.(type) {
	case domain.MapExpansion:
		return expandMap(state, e)
	case domain.EnvExpansion:
		return x.expandEnv(e)
	case domain.ShellExpansion:
		return x.expandShell(ctx, e)
	case domain.FormatExpansion:
		return expandFormat(state, e)
	case domain.CallbackExpansion:
		return x.expandCallback(ctx, state, e)
	}
	return exp.Fallback()
}

func expandMap(state domain.FieldState, e domain.MapExpansion) string {
	value := state.String(e.Field)
	if value == "" {
		return e.Default
	}

	if obj := state.Object(); obj != "" {
		if bucket, ok := e.Mappings[obj].(map[string]any); ok {
			return lookupMapping(bucket, value, e.Default)
		}
	}
	if bucket, ok := e.Mappings["default"].(map[string]any); ok {
		return lookupMapping(bucket, value, e.Default)
	}
	return lookupMapping(e.Mappings, value, e.Default)
}

func lookupMapping(table map[string]any, key, fallback string) string {
	v, ok := table[key]
	if !ok {
		return fallback
	}
	if _, nested := v.(map[string]any); nested {
		return fallback
	}
	return domain.Stringify(v)
}

func (x *Expander) expandEnv(e domain.EnvExpansion) string {
	if e.Var == "" {
		return e.Default
	}
	lookup := x.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(e.Var); ok {
		return v
	}
	return e.Default
}

func (x *Expander) expandShell(ctx context.Context, e domain.ShellExpansion) string {
	if e.Command == "" || x.Shell == nil {
		return e.Default
	}
	out, err := x.Shell.Output(ctx, e.Command)
	if err != nil {
		x.logger().Debug("shell expansion failed", "name", e.Name, "command", e.Command, "error", err)
		return e.Default
	}
	return strings.TrimSpace(out)
}

func expandFormat(state domain.FieldState, e domain.FormatExpansion) string {
	for _, m := range formatFieldPattern.FindAllStringSubmatch(e.Template, -1) {
		if !state.Truthy(m[1]) {
			return e.Default
		}
	}
	return formatFieldPattern.ReplaceAllStringFunc(e.Template, func(match string) string {
		return state.String(match[1 : len(match)-1])
	})
}

func (x *Expander) expandCallback(ctx context.Context, state domain.FieldState, e domain.CallbackExpansion) string {
	out, err := x.Callbacks.Invoke(ctx, e.Callback, state.Clone())
	if err != nil {
		x.logger().Debug("callback expansion failed", "name", e.Name, "callback", e.Callback, "error", err)
		return e.Default
	}
	return out
}

func (x *Expander) logger() *slog.Logger {
	if x.Logger == nil {
		return logging.NewNop()
	}
	return x.Logger
}
