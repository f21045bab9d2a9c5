package runtime

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aretw0/ali/internal/logging"
	"github.com/aretw0/ali/pkg/domain"
	"github.com/aretw0/ali/pkg/ports"
	"github.com/aretw0/ali/pkg/registry"
)

// Engine runs raw commands through the rule-processing pipeline.
// The catalog can be swapped at any time; every call works on the
// catalog that was current when it started.
type Engine struct {
	catalog   atomic.Pointer[Catalog]
	callbacks *registry.Registry
	shell     ports.ShellRunner
	lookupEnv EnvLookup
	observer  ports.DispatchObserver
	logger    *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Pipeline stages log at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCallbacks sets the registry used by callback commands and expansions.
func WithCallbacks(reg *registry.Registry) Option {
	return func(e *Engine) {
		e.callbacks = reg
	}
}

// WithShellRunner sets the runner used by shell expansions.
func WithShellRunner(runner ports.ShellRunner) Option {
	return func(e *Engine) {
		e.shell = runner
	}
}

// WithEnv sets the environment lookup used by env expansions.
func WithEnv(lookup EnvLookup) Option {
	return func(e *Engine) {
		e.lookupEnv = lookup
	}
}

// WithObserver registers an observer notified after every dispatch.
func WithObserver(observer ports.DispatchObserver) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// NewEngine creates an engine over catalog.
func NewEngine(catalog *Catalog, opts ...Option) *Engine {
	e := &Engine{
		callbacks: registry.NewRegistry(),
		lookupEnv: os.LookupEnv,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if catalog == nil {
		catalog = NewCatalog(nil)
	}
	e.catalog.Store(catalog)
	return e
}

// Catalog returns the current catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog.Load()
}

// SetCatalog replaces the catalog used by subsequent calls.
func (e *Engine) SetCatalog(c *Catalog) {
	e.catalog.Store(c)
}

// Resolve turns raw into an executable command string.
func (e *Engine) Resolve(ctx context.Context, raw string) (string, error) {
	res, err := e.Trace(ctx, raw)
	if err != nil {
		return "", err
	}
	return res.Command, nil
}

// Dispatch is Resolve folded into the string contract: the result is either
// a command or a message starting with "Error:" or "Unknown verb:".
func (e *Engine) Dispatch(ctx context.Context, raw string) string {
	cmd, err := e.Resolve(ctx, raw)
	if err != nil {
		return domain.FormatResult(err)
	}
	return cmd
}

// Trace runs the pipeline and returns everything it learned along the way.
// On failure the partial resolution is returned with the error.
func (e *Engine) Trace(ctx context.Context, raw string) (res *domain.Resolution, err error) {
	start := time.Now()
	res = &domain.Resolution{Input: raw, Template: -1}
	defer func() {
		if e.observer != nil {
			e.observer.ObserveDispatch(res.Verb, domain.OutcomeOf(err), time.Since(start))
		}
		if err != nil {
			e.logger.Debug("command failed", "input", raw, "error", err)
		}
	}()

	tokens, err := Tokenize(raw)
	if err != nil {
		return res, err
	}
	verb, rest, err := SplitVerb(tokens)
	if err != nil {
		return res, err
	}
	res.Verb = verb
	e.logger.Debug("tokens", "verb", verb, "tokens", domain.TokenValues(rest))

	catalog := e.Catalog()
	rs, canonical, ok := catalog.Lookup(verb)
	if !ok {
		available := catalog.Verbs()
		return res, &domain.UnknownVerbError{
			Verb:        verb,
			Available:   available,
			Suggestions: Suggest(verb, available),
		}
	}
	res.Verb = canonical
	res.RuleSet = rs.Name

	state, err := ExtractFields(rs, canonical, rest)
	if err != nil {
		return res, err
	}
	state = ApplyInference(state, rs.Inference)
	res.Fields = state
	e.logger.Debug("fields", "ruleset", rs.Name, "fields", map[string]any(state))

	if err := Validate(state, rs.Validation); err != nil {
		return res, err
	}

	cmd, index, err := e.resolveCommand(ctx, catalog, rs, state)
	if err != nil {
		return res, err
	}
	res.Command = cmd
	res.Template = index
	e.logger.Debug("result", "command", cmd)
	return res, nil
}

func (e *Engine) resolveCommand(ctx context.Context, catalog *Catalog, rs *domain.RuleSet, state domain.FieldState) (string, int, error) {
	next := 0
	for {
		i, cmd := MatchCommand(rs, state, next)
		if cmd == nil {
			return "", -1, NoMatch(rs, state)
		}
		next = i + 1
		e.logger.Debug("command", "ruleset", rs.Name, "index", i)

		if cmd.Callback != "" {
			out, err := e.callbacks.Invoke(ctx, cmd.Callback, state.Clone())
			if err != nil {
				e.logger.Warn("callback command failed", "callback", cmd.Callback, "error", err)
				continue
			}
			if out = strings.TrimSpace(out); out != "" {
				return out, i, nil
			}
			continue
		}

		out, err := e.render(ctx, catalog, rs, cmd, state)
		return out, i, err
	}
}

func (e *Engine) render(ctx context.Context, catalog *Catalog, rs *domain.RuleSet, cmd *domain.CommandTemplate, state domain.FieldState) (string, error) {
	expander := &Expander{
		Callbacks: e.callbacks,
		Shell:     e.shell,
		LookupEnv: e.lookupEnv,
		Logger:    e.logger,
	}
	expanded := expander.Expand(ctx, state, MergeExpansions(rs.Expansions, cmd.Expansions))
	values := BuildContext(catalog.Services(), state, expanded)

	inner := Substitute(cmd.Exec, values)
	if len(cmd.Needs) == 0 {
		return inner, nil
	}

	return Wrap(catalog, cmd, inner, values)
}
