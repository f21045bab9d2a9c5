package ali

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/ali/internal/adapters/file"
	"github.com/aretw0/ali/internal/compiler"
	"github.com/aretw0/ali/internal/logging"
	"github.com/aretw0/ali/internal/runtime"
	loamAdapter "github.com/aretw0/ali/pkg/adapters/loam"
	"github.com/aretw0/ali/pkg/adapters/process"
	"github.com/aretw0/ali/pkg/domain"
	"github.com/aretw0/ali/pkg/plugins/tmux"
	"github.com/aretw0/ali/pkg/ports"
	"github.com/aretw0/ali/pkg/registry"
	"github.com/aretw0/ali/plugins"
)

// Interpreter is the high-level entry point for the ali library.
// It loads rule sets, keeps the active catalog and runs commands through it.
type Interpreter struct {
	engine    *runtime.Engine
	loader    ports.RuleSetLoader
	callbacks *registry.Registry
	shell     ports.ShellRunner
	observer  ports.DispatchObserver
	lookupEnv runtime.EnvLookup
	logger    *slog.Logger
	Name      string
}

// Option defines a functional option for configuring the Interpreter.
type Option func(*Interpreter)

// WithLoader injects a custom RuleSetLoader, bypassing the default sources.
func WithLoader(l ports.RuleSetLoader) Option {
	return func(i *Interpreter) {
		i.loader = l
	}
}

// WithCallbacks replaces the callback registry. The built-in tmux callbacks
// are only registered on the default one.
func WithCallbacks(reg *registry.Registry) Option {
	return func(i *Interpreter) {
		i.callbacks = reg
	}
}

// WithShellRunner sets the runner used by shell expansions.
func WithShellRunner(r ports.ShellRunner) Option {
	return func(i *Interpreter) {
		i.shell = r
	}
}

// WithObserver registers a dispatch observer, typically metrics.
func WithObserver(o ports.DispatchObserver) Option {
	return func(i *Interpreter) {
		i.observer = o
	}
}

// WithEnv sets the environment seen by activation and env expansions.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(i *Interpreter) {
		i.lookupEnv = lookup
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

// New initializes an Interpreter and loads its rule sets.
// With an empty pluginsDir and no WithLoader option, the built-in plugins
// are used; otherwise pluginsDir is opened as a Loam repository.
// Rule sets that fail to compile are logged and left out; Reload reports them.
func New(ctx context.Context, pluginsDir string, opts ...Option) (*Interpreter, error) {
	it := &Interpreter{}
	for _, opt := range opts {
		opt(it)
	}

	if it.loader == nil {
		if pluginsDir == "" {
			it.loader = file.NewLoader(plugins.FS)
			it.Name = "builtin"
		} else {
			absPath, err := filepath.Abs(pluginsDir)
			if err != nil {
				return nil, fmt.Errorf("invalid path: %w", err)
			}
			loader, err := loamAdapter.Open(absPath)
			if err != nil {
				return nil, err
			}
			it.loader = loader
			it.Name = filepath.Base(absPath)
		}
	} else if pluginsDir != "" {
		it.Name = filepath.Base(pluginsDir)
	}

	if it.callbacks == nil {
		it.callbacks = registry.NewRegistry()
		tmux.Register(it.callbacks)
	}
	if it.shell == nil {
		it.shell = process.NewRunner()
	}
	if it.logger == nil {
		it.logger = logging.NewNop()
	}
	if it.Name != "" {
		it.logger = it.logger.With("plugins", it.Name)
	}

	engineOpts := []runtime.Option{
		runtime.WithLogger(it.logger),
		runtime.WithCallbacks(it.callbacks),
		runtime.WithShellRunner(it.shell),
	}
	if it.lookupEnv != nil {
		engineOpts = append(engineOpts, runtime.WithEnv(it.lookupEnv))
	}
	if it.observer != nil {
		engineOpts = append(engineOpts, runtime.WithObserver(it.observer))
	}
	it.engine = runtime.NewEngine(nil, engineOpts...)

	if err := it.Reload(ctx); err != nil {
		it.logger.Warn("some rule sets were not loaded", "error", err)
	}
	return it, nil
}

// Reload recompiles every rule set and swaps the catalog atomically.
// The returned error lists the rule sets that failed; the ones that compiled
// are active regardless.
func (i *Interpreter) Reload(ctx context.Context) error {
	sets, loadErr := compiler.NewParser(i.callbacks).LoadAll(ctx, i.loader)
	if sets == nil && loadErr != nil {
		return loadErr
	}

	catalogOpts := []runtime.CatalogOption{runtime.WithCatalogLogger(i.logger)}
	if i.lookupEnv != nil {
		catalogOpts = append(catalogOpts, runtime.WithCatalogEnv(i.lookupEnv))
	}
	catalog := runtime.NewCatalog(sets, catalogOpts...)
	i.engine.SetCatalog(catalog)
	i.logger.Debug("catalog loaded", "rulesets", len(catalog.RuleSets()), "verbs", len(catalog.Verbs()))
	return loadErr
}

// Resolve turns a raw command into an executable command string.
func (i *Interpreter) Resolve(ctx context.Context, raw string) (string, error) {
	return i.engine.Resolve(ctx, raw)
}

// Dispatch returns either an executable command or a message starting
// with "Error:" or "Unknown verb:".
func (i *Interpreter) Dispatch(ctx context.Context, raw string) string {
	return i.engine.Dispatch(ctx, raw)
}

// Trace runs the pipeline and returns the verb, fields and command it produced.
func (i *Interpreter) Trace(ctx context.Context, raw string) (*domain.Resolution, error) {
	return i.engine.Trace(ctx, raw)
}

// Catalog returns the active catalog.
func (i *Interpreter) Catalog() *runtime.Catalog {
	return i.engine.Catalog()
}

// Watch returns a channel that signals when the underlying rule sets change.
// Returns error if the loader does not support watching.
func (i *Interpreter) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := i.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying RuleSetLoader.
func (i *Interpreter) Loader() ports.RuleSetLoader {
	return i.loader
}

// Callbacks returns the registry shared by the compiler and the engine.
func (i *Interpreter) Callbacks() *registry.Registry {
	return i.callbacks
}
