package runtime

import (
	"strings"

	"github.com/aretw0/ali/pkg/domain"
)

const (
	defaultPosition = "right"
	defaultSize     = "50%"
	// defaultWrapper is used when a provider declares the service without a template.
	defaultWrapper = "tmux split-window {position_flags} -l {size} {command}"
	// commandSentinel stands in for the inner command until the wrapper is resolved,
	// so braces inside the inner command are never substituted twice.
	commandSentinel = "\x00command\x00"
)

// positionFlags maps a hint position to split flags.
var positionFlags = map[string]string{
	"left":   "-h -b",
	"right":  "-h",
	"up":     "-v -b",
	"top":    "-v -b",
	"above":  "-v -b",
	"down":   "-v",
	"bottom": "-v",
	"below":  "-v",
}

// Wrap nests inner inside the provider of every service the command needs,
// innermost first.
func Wrap(catalog *Catalog, cmd *domain.CommandTemplate, inner string, values map[string]string) (string, error) {
	out := inner
	for _, need := range cmd.Needs {
		provider, ok := catalog.Provider(need)
		if !ok {
			return "", &domain.MissingServiceError{Service: need}
		}
		out = wrapWith(provider, cmd.Hints, out, values)
	}
	return out, nil
}

func wrapWith(provider domain.ServiceProvider, hints domain.Hints, inner string, values map[string]string) string {
	position := strings.ToLower(hints.Position)
	if position == "" {
		position = defaultPosition
	}
	size := hints.Size
	if size == "" {
		size = defaultSize
	}

	flags, ok := provider.Positions[position]
	if !ok {
		flags, ok = positionFlags[position]
	}
	if !ok {
		flags = positionFlags[defaultPosition]
	}

	wrapperValues := make(map[string]string, len(values)+4)
	for k, v := range values {
		wrapperValues[k] = v
	}
	wrapperValues["position"] = position
	wrapperValues["position_flags"] = flags
	wrapperValues["size"] = size
	wrapperValues["command"] = commandSentinel

	template := provider.Exec
	if template == "" {
		template = defaultWrapper
	}
	resolved := Substitute(template, wrapperValues)
	return strings.ReplaceAll(resolved, commandSentinel, ShellQuote(inner))
}

// ShellQuote wraps s in single quotes for a POSIX shell.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
