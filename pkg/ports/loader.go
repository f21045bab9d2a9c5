package ports

import "context"

// RuleSetLoader defines how the interpreter retrieves rule-set definitions.
// This allows the storage layer (embedded FS, Loam, Memory) to be decoupled.
type RuleSetLoader interface {
	// GetRuleSet retrieves the raw definition (YAML or JSON) of a rule set by name.
	GetRuleSet(ctx context.Context, name string) ([]byte, error)

	// ListRuleSets returns the names of all available rule sets.
	ListRuleSets(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is used by the REPL to rebuild its catalog when plugin files change.
type Watchable interface {
	// Watch returns a channel that receives the ID of every changed document.
	Watch(ctx context.Context) (<-chan string, error)
}
