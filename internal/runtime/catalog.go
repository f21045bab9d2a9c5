package runtime

import (
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/ali/internal/logging"
	"github.com/aretw0/ali/pkg/domain"
)

// Catalog indexes the active rule sets by verb and collects the services
// they share. It is immutable once built and safe for concurrent reads.
type Catalog struct {
	ruleSets  []*domain.RuleSet
	skipped   []string
	verbs     map[string]*domain.RuleSet
	aliases   map[string]string
	services  map[string]string
	providers map[string]domain.ServiceProvider
}

// CatalogOption configures catalog construction.
type CatalogOption func(*catalogConfig)

type catalogConfig struct {
	lookupEnv EnvLookup
	logger    *slog.Logger
}

// WithCatalogEnv sets the environment used to evaluate activation.
func WithCatalogEnv(lookup EnvLookup) CatalogOption {
	return func(c *catalogConfig) {
		c.lookupEnv = lookup
	}
}

// WithCatalogLogger sets the logger that records overrides and skipped rule sets.
func WithCatalogLogger(logger *slog.Logger) CatalogOption {
	return func(c *catalogConfig) {
		c.logger = logger
	}
}

// NewCatalog registers rule sets in name order. The first rule set to
// declare a verb owns it; for services the last one wins.
func NewCatalog(ruleSets []*domain.RuleSet, opts ...CatalogOption) *Catalog {
	cfg := &catalogConfig{lookupEnv: os.LookupEnv, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	sorted := append([]*domain.RuleSet(nil), ruleSets...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	c := &Catalog{
		verbs:     make(map[string]*domain.RuleSet),
		aliases:   make(map[string]string),
		services:  make(map[string]string),
		providers: make(map[string]domain.ServiceProvider),
	}

	for _, rs := range sorted {
		if missing := missingEnv(rs.Activation, cfg.lookupEnv); missing != "" {
			cfg.logger.Debug("rule set inactive", "ruleset", rs.Name, "requires_env", missing)
			c.skipped = append(c.skipped, rs.Name)
			continue
		}
		c.register(rs, cfg.logger)
	}
	return c
}

func (c *Catalog) register(rs *domain.RuleSet, logger *slog.Logger) {
	c.ruleSets = append(c.ruleSets, rs)

	for _, verb := range rs.Verbs() {
		if owner, ok := c.verbs[verb]; ok {
			logger.Debug("verb already registered", "verb", verb, "owner", owner.Name, "ruleset", rs.Name)
			continue
		}
		c.verbs[verb] = rs
	}
	for alias, canonical := range rs.Vocabulary.VerbAliases {
		alias = strings.ToUpper(alias)
		if _, ok := c.aliases[alias]; !ok {
			c.aliases[alias] = strings.ToUpper(canonical)
		}
	}
	for name, fragment := range rs.Services {
		if _, ok := c.services[name]; ok {
			logger.Debug("service overridden", "service", name, "ruleset", rs.Name)
		}
		c.services[name] = fragment
	}
	for name, provider := range rs.Provides {
		if _, ok := c.providers[name]; ok {
			continue
		}
		c.providers[name] = provider
	}
}

func missingEnv(a domain.Activation, lookup EnvLookup) string {
	for _, key := range a.RequiresEnv {
		if _, ok := lookup(key); !ok {
			return key
		}
	}
	return ""
}

// Lookup returns the rule set owning verb (aliases resolved) and the canonical verb.
func (c *Catalog) Lookup(verb string) (*domain.RuleSet, string, bool) {
	verb = strings.ToUpper(verb)
	if rs, ok := c.verbs[verb]; ok {
		return rs, verb, true
	}
	if canonical, ok := c.aliases[verb]; ok {
		if rs, ok := c.verbs[canonical]; ok {
			return rs, canonical, true
		}
	}
	return nil, verb, false
}

// Verbs returns every registered verb, sorted.
func (c *Catalog) Verbs() []string {
	verbs := make([]string, 0, len(c.verbs))
	for v := range c.verbs {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)
	return verbs
}

// Owner returns the name of the rule set that owns verb.
func (c *Catalog) Owner(verb string) string {
	if rs, ok := c.verbs[strings.ToUpper(verb)]; ok {
		return rs.Name
	}
	return ""
}

// RuleSets returns the active rule sets in registration order.
func (c *Catalog) RuleSets() []*domain.RuleSet {
	return append([]*domain.RuleSet(nil), c.ruleSets...)
}

// Skipped returns the names of rule sets left out by activation.
func (c *Catalog) Skipped() []string {
	return append([]string(nil), c.skipped...)
}

// Services returns the merged template fragments of every active rule set.
func (c *Catalog) Services() map[string]string {
	return c.services
}

// Provider returns the first registered provider of service.
func (c *Catalog) Provider(service string) (domain.ServiceProvider, bool) {
	p, ok := c.providers[service]
	return p, ok
}
