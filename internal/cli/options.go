package cli

import (
	"os"
	"path/filepath"
	"strconv"
)

// Environment variables read as flag defaults.
const (
	EnvPluginsDir = "ALI_PLUGINS_DIR"
	EnvDebug      = "ALI_DEBUG"
	EnvHistory    = "ALI_HISTORY"
	EnvCaller     = "ALI_CALLER"
)

// BuiltinPlugins selects the plugins embedded in the binary.
const BuiltinPlugins = "builtin"

// Options contains the configuration shared by every command.
type Options struct {
	// PluginsDir is a plugins directory, BuiltinPlugins, or empty for the
	// default directory with the built-ins as fallback.
	PluginsDir string
	Debug      bool
	// History is a JSONL file path or a redis:// URL. Empty disables history.
	History string
	Caller  string
}

// DefaultPluginsDir returns $XDG_CONFIG_HOME/ali/plugins, or ~/.config/ali/plugins.
func DefaultPluginsDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "ali", "plugins")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "ali", "plugins")
	}
	return filepath.Join(home, ".config", "ali", "plugins")
}

// EnvDefault returns the value of key, or fallback when it is unset or empty.
func EnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvBool reports whether key holds a true value ("1", "true", ...).
func EnvBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
