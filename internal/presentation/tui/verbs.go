package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/ali/internal/runtime"
)

// VerbsMarkdown lists the verbs of every active rule set, grouped by the
// rule set that owns them, followed by the rule sets left out by activation.
func VerbsMarkdown(catalog *runtime.Catalog) string {
	var b strings.Builder
	b.WriteString("# Available verbs\n")

	ruleSets := catalog.RuleSets()
	if len(ruleSets) == 0 {
		b.WriteString("\nNo plugins loaded.\n")
	}

	for _, rs := range ruleSets {
		fmt.Fprintf(&b, "\n## %s", rs.Name)
		if rs.Version != "" {
			fmt.Fprintf(&b, " (%s)", rs.Version)
		}
		b.WriteString("\n\n")
		if rs.Description != "" {
			b.WriteString(rs.Description + "\n\n")
		}

		aliases := make(map[string][]string)
		for alias, canonical := range rs.Vocabulary.VerbAliases {
			canonical = strings.ToUpper(canonical)
			aliases[canonical] = append(aliases[canonical], strings.ToUpper(alias))
		}

		owned := 0
		for _, verb := range rs.Verbs() {
			if catalog.Owner(verb) != rs.Name {
				continue
			}
			owned++
			fmt.Fprintf(&b, "- `%s`", verb)
			if alts := aliases[verb]; len(alts) > 0 {
				sort.Strings(alts)
				fmt.Fprintf(&b, " (alias: %s)", strings.Join(alts, ", "))
			}
			b.WriteString("\n")
		}
		if owned == 0 {
			b.WriteString("_no verbs of its own_\n")
		}
	}

	if skipped := catalog.Skipped(); len(skipped) > 0 {
		b.WriteString("\n## Inactive\n\n")
		for _, name := range skipped {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}
	return b.String()
}
