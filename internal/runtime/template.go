package runtime

import (
	"strings"

	"github.com/aretw0/ali/pkg/domain"
)

// maxPasses caps fragment composition. A fragment naming another fragment
// resolves; anything nested deeper is left as text.
const maxPasses = 2

// BuildContext assembles the substitution context: services first, then
// the field state, then expansion results.
func BuildContext(services map[string]string, state domain.FieldState, expanded map[string]string) map[string]string {
	values := make(map[string]string, len(services)+len(state)+len(expanded))
	for k, v := range services {
		values[k] = v
	}
	for k, v := range state {
		values[k] = domain.Stringify(v)
	}
	for k, v := range expanded {
		values[k] = v
	}
	return values
}

// Substitute resolves {key} and {key|default} placeholders in template.
// A second pass runs only when braces remain after the first one.
func Substitute(template string, values map[string]string) string {
	out := template
	for pass := 0; pass < maxPasses; pass++ {
		if pass > 0 && !strings.ContainsAny(out, "{}") {
			break
		}
		out = substitutePass(out, values)
	}
	return strings.TrimSpace(out)
}

// substitutePass repeatedly replaces the innermost placeholder. Text inserted
// during the pass is frozen: its braces are never treated as placeholders,
// but it can still form part of an enclosing key, which is how
// {split_{direction}} composes.
func substitutePass(s string, values map[string]string) string {
	buf := []byte(s)
	active := make([]bool, len(buf))
	for i := range active {
		active[i] = true
	}

	for {
		closeIdx := -1
		for i, c := range buf {
			if c == '}' && active[i] {
				closeIdx = i
				break
			}
		}
		if closeIdx < 0 {
			return string(buf)
		}

		openIdx := -1
		for i := closeIdx - 1; i >= 0; i-- {
			if buf[i] == '{' && active[i] {
				openIdx = i
				break
			}
		}
		if openIdx < 0 {
			// Stray closing brace: keep it as text.
			active[closeIdx] = false
			continue
		}

		replacement := lookupPlaceholder(string(buf[openIdx+1:closeIdx]), values)

		next := make([]byte, 0, len(buf)-(closeIdx-openIdx+1)+len(replacement))
		next = append(next, buf[:openIdx]...)
		next = append(next, replacement...)
		next = append(next, buf[closeIdx+1:]...)

		mask := make([]bool, 0, len(next))
		mask = append(mask, active[:openIdx]...)
		mask = append(mask, make([]bool, len(replacement))...)
		mask = append(mask, active[closeIdx+1:]...)

		buf, active = next, mask
	}
}

func lookupPlaceholder(key string, values map[string]string) string {
	fallback := ""
	if name, def, ok := strings.Cut(key, "|"); ok {
		key, fallback = name, def
	}
	if v, ok := values[key]; ok && v != "" {
		return v
	}
	return fallback
}
