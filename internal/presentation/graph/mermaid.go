package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/ali/pkg/domain"
)

// Overlay marks the path a traced command took through the graph.
type Overlay struct {
	RuleSet string
	Verb    string
	// Command is the index of the command template that matched, or -1.
	Command int
}

// GenerateMermaid produces a Mermaid flowchart of how each rule set dispatches
// its verbs. It applies semantic styling:
// - Verb: ((Circle))
// - Callback: [[Subroutine]]
// - Service: [/Parallelogram/]
// - Exec template: [Rectangle]
// Edges carry the remaining match conditions; dotted edges lead to services.
func GenerateMermaid(sets []*domain.RuleSet, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	services := map[string]bool{}
	for _, rs := range sets {
		prefix := sanitizeMermaidID(rs.Name)
		sb.WriteString(fmt.Sprintf("    subgraph %s[\"%s\"]\n", prefix, escape(rs.Name)))

		verbs := rs.Verbs()
		for _, verb := range verbs {
			sb.WriteString(fmt.Sprintf("    %s_%s((\"%s\"))\n", prefix, sanitizeMermaidID(verb), verb))
		}

		for i, cmd := range rs.Commands {
			id := fmt.Sprintf("%s_c%d", prefix, i)
			if cmd.Callback != "" {
				sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", id, escape(cmd.Callback)))
			} else {
				sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", id, escape(cmd.Exec)))
			}

			from, rest := splitVerb(cmd.Match, verbs)
			arrow := "-->"
			if label := describe(rest); label != "" {
				arrow = fmt.Sprintf("-- \"%s\" -->", escape(label))
			}
			for _, verb := range from {
				sb.WriteString(fmt.Sprintf("    %s_%s %s %s\n", prefix, sanitizeMermaidID(verb), arrow, id))
			}

			for _, need := range cmd.Needs {
				services[need] = true
				sb.WriteString(fmt.Sprintf("    %s -. needs .-> svc_%s\n", id, sanitizeMermaidID(need)))
			}
		}
		sb.WriteString("    end\n")
	}

	if len(services) > 0 {
		names := make([]string, 0, len(services))
		for name := range services {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("    svc_%s[/\"%s\"/]\n", sanitizeMermaidID(name), escape(name)))
		}
		for _, rs := range sets {
			for _, name := range sortedProvides(rs) {
				if services[name] {
					sb.WriteString(fmt.Sprintf("    svc_%s -. provided by .-> %s\n", sanitizeMermaidID(name), sanitizeMermaidID(rs.Name)))
				}
			}
		}
	}

	if overlay != nil && overlay.RuleSet != "" {
		prefix := sanitizeMermaidID(overlay.RuleSet)
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		if overlay.Verb != "" {
			sb.WriteString(fmt.Sprintf("    class %s_%s visited;\n", prefix, sanitizeMermaidID(overlay.Verb)))
		}
		if overlay.Command >= 0 {
			sb.WriteString(fmt.Sprintf("    class %s_c%d current;\n", prefix, overlay.Command))
		}
	}

	return sb.String()
}

// splitVerb returns the verbs a command applies to and the conditions left
// once the verb condition is removed. Commands without one apply to every verb.
func splitVerb(match domain.ConditionSet, verbs []string) ([]string, domain.ConditionSet) {
	var rest domain.ConditionSet
	var from []string
	found := false
	for _, c := range match {
		if c.Field != domain.FieldVerb || found {
			rest = append(rest, c)
			continue
		}
		switch c.Op {
		case domain.OpEquals:
			from = append(from, domain.Stringify(c.Value))
			found = true
		case domain.OpOneOf:
			for _, o := range c.Options {
				from = append(from, domain.Stringify(o))
			}
			found = true
		default:
			rest = append(rest, c)
		}
	}
	if !found {
		return verbs, rest
	}
	return from, rest
}

func describe(conds domain.ConditionSet) string {
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		switch c.Op {
		case domain.OpEquals:
			parts = append(parts, fmt.Sprintf("%s=%s", c.Field, domain.Stringify(c.Value)))
		case domain.OpRegex:
			parts = append(parts, fmt.Sprintf("%s~%s", c.Field, c.Pattern))
		case domain.OpOneOf:
			opts := make([]string, len(c.Options))
			for i, o := range c.Options {
				opts[i] = domain.Stringify(o)
			}
			parts = append(parts, fmt.Sprintf("%s in %s", c.Field, strings.Join(opts, "|")))
		case domain.OpElse:
			parts = append(parts, "else")
		default:
			parts = append(parts, fmt.Sprintf("%s %s", c.Field, c.Op))
		}
	}
	return strings.Join(parts, ", ")
}

func sortedProvides(rs *domain.RuleSet) []string {
	names := make([]string, 0, len(rs.Provides))
	for name := range rs.Provides {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
