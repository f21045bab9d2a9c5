package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/ali"
	"github.com/aretw0/ali/internal/adapters/file"
	"github.com/aretw0/ali/internal/adapters/redis"
	"github.com/aretw0/ali/pkg/persistence/middleware"
	"github.com/aretw0/ali/pkg/ports"
)

// resolvePluginsDir maps the --plugins value to what ali.New expects:
// a directory, or "" for the built-in plugins. An explicit directory must exist;
// the default one falls back to the built-ins.
func resolvePluginsDir(dir string) (string, error) {
	switch dir {
	case BuiltinPlugins:
		return "", nil
	case "":
		if isDir(DefaultPluginsDir()) {
			return DefaultPluginsDir(), nil
		}
		return "", nil
	}
	if !isDir(dir) {
		return "", fmt.Errorf("plugins directory not found: %s", dir)
	}
	return dir, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// newInterpreter initializes an interpreter with standard CLI conventions.
func newInterpreter(ctx context.Context, opts Options, logger *slog.Logger, extra ...ali.Option) (*ali.Interpreter, error) {
	dir, err := resolvePluginsDir(opts.PluginsDir)
	if err != nil {
		return nil, err
	}
	aliOpts := append([]ali.Option{ali.WithLogger(logger)}, extra...)
	it, err := ali.New(ctx, dir, aliOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing ali: %w", err)
	}
	return it, nil
}

var redact = middleware.NewPIIMiddleware(middleware.DefaultSecretPatterns)

// OpenHistory returns the store selected by spec: "" disables history,
// a redis:// or rediss:// URL selects Redis and anything else is a JSONL file.
// Captured secrets are masked before they reach the store.
// The returned close function is always safe to call.
func OpenHistory(spec string) (ports.HistoryStore, func() error, error) {
	noop := func() error { return nil }
	switch {
	case spec == "":
		return nil, noop, nil
	case strings.HasPrefix(spec, "redis://"), strings.HasPrefix(spec, "rediss://"):
		store, err := redis.New(spec)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open redis history: %w", err)
		}
		return redact(store), store.Close, nil
	default:
		return redact(file.NewHistoryStore(spec)), noop, nil
	}
}
