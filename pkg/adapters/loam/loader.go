package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/ali/internal/dto"
)

// pluginFile is the document name that marks a plugin directory.
const pluginFile = "plugin"

// Loader adapts the Loam library to the ports.RuleSetLoader interface.
// A rule set is either "<name>/plugin.yaml" or a flat "<name>.yaml".
type Loader struct {
	Repo *loam.TypedRepository[dto.RuleSetDocument]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[dto.RuleSetDocument]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository over dir and wraps it.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[dto.RuleSetDocument](repo)), nil
}

// GetRuleSet retrieves a rule set and re-encodes its document as JSON for the compiler.
func (l *Loader) GetRuleSet(ctx context.Context, name string) ([]byte, error) {
	doc, err := l.Repo.Get(ctx, path.Join(name, pluginFile))
	if err != nil {
		flat, flatErr := l.Repo.Get(ctx, name)
		if flatErr != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", name, err)
		}
		doc = flat
	}

	data := doc.Data
	if data.Name == "" {
		data.Name = name
	}
	bytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rule set %s: %w", name, err)
	}
	return bytes, nil
}

// ListRuleSets lists every rule set in the repository, sorted.
func (l *Loader) ListRuleSets(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		name, ok := ruleSetName(doc.ID)
		if !ok {
			continue
		}
		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: rule set '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ruleSetName maps a document ID to its rule-set name. Documents nested
// deeper than a plugin directory (scripts, fixtures) are not rule sets.
func ruleSetName(id string) (string, bool) {
	id = trimExtension(id)
	dir, base := path.Split(id)
	dir = strings.TrimSuffix(dir, "/")
	switch {
	case dir == "":
		return base, base != ""
	case base == pluginFile && !strings.Contains(dir, "/"):
		return dir, true
	default:
		return "", false
	}
}

func trimExtension(id string) string {
	id = filepath.ToSlash(id)
	return strings.TrimSuffix(id, path.Ext(id))
}

// Watch implements ports.Watchable. It emits the rule-set name of every changed file.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				name, ok := ruleSetName(evt.ID)
				if !ok {
					continue
				}
				select {
				case ch <- name:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
