package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Loader implements ports.RuleSetLoader using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu       sync.RWMutex
	ruleSets map[string][]byte
}

// NewLoader creates a new Loader with the provided raw documents (YAML or JSON).
func NewLoader(data map[string]string) *Loader {
	ruleSets := make(map[string][]byte, len(data))
	for k, v := range data {
		ruleSets[k] = []byte(v)
	}
	return &Loader{
		ruleSets: ruleSets,
	}
}

// Put adds or replaces a rule set document.
func (l *Loader) Put(name string, data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ruleSets[name] = data
}

// GetRuleSet retrieves the raw definition of a rule set by name.
func (l *Loader) GetRuleSet(_ context.Context, name string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	content, ok := l.ruleSets[name]
	if !ok {
		return nil, fmt.Errorf("rule set not found: %s", name)
	}
	return content, nil
}

// ListRuleSets returns all available rule-set names.
func (l *Loader) ListRuleSets(_ context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.ruleSets))
	for k := range l.ruleSets {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
