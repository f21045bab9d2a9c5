package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/ali/pkg/domain"
)

// Callback is a named function rule sets can invoke, either as an expansion
// or in place of a command template. An empty result from a callback command
// means "not handled" and lets the next matching command run.
type Callback func(ctx context.Context, fields domain.FieldState) (string, error)

// Registry maps stable names to callbacks. It is filled before rule sets are
// compiled so unknown names can be rejected at load time.
type Registry struct {
	mu        sync.RWMutex
	callbacks map[string]Callback
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		callbacks: make(map[string]Callback),
	}
}

// Register adds a callback to the registry.
// If a callback with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks[name] = fn
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.callbacks[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.callbacks))
	for name := range r.callbacks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke looks up a callback by name and executes it.
// Returns an error if the callback is not found.
func (r *Registry) Invoke(ctx context.Context, name string, fields domain.FieldState) (string, error) {
	if r == nil {
		return "", fmt.Errorf("callback not found: %s", name)
	}
	r.mu.RLock()
	fn, ok := r.callbacks[name]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("callback not found: %s", name)
	}

	return fn(ctx, fields)
}
