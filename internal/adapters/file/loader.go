package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
)

// pluginFiles are the accepted names of a plugin definition, in lookup order.
var pluginFiles = []string{"plugin.yaml", "plugin.yml", "plugin.json"}

// Loader implements ports.RuleSetLoader over any fs.FS laid out as
// "<name>/plugin.yaml". It serves the embedded built-ins and plain directories.
type Loader struct {
	FS fs.FS
}

// NewLoader wraps fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{FS: fsys}
}

// NewDirLoader reads plugins from dir on the local filesystem.
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir))
}

// GetRuleSet reads the plugin definition of name.
func (l *Loader) GetRuleSet(_ context.Context, name string) ([]byte, error) {
	for _, file := range pluginFiles {
		data, err := fs.ReadFile(l.FS, path.Join(name, file))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read rule set %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("rule set not found: %s", name)
}

// ListRuleSets returns the names of every directory holding a plugin definition, sorted.
func (l *Loader) ListRuleSets(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, file := range pluginFiles {
		matches, err := fs.Glob(l.FS, path.Join("*", file))
		if err != nil {
			return nil, fmt.Errorf("failed to list rule sets: %w", err)
		}
		for _, m := range matches {
			name := path.Dir(m)
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
