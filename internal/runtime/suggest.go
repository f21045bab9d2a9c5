package runtime

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const maxSuggestions = 3

// Suggest returns the known verbs closest to verb: prefix matches first,
// then small edit distances. At most three are returned.
func Suggest(verb string, known []string) []string {
	type scored struct {
		verb string
		dist int
	}
	verb = strings.ToUpper(verb)

	var results []scored
	for _, cand := range known {
		switch {
		case cand == verb:
			continue
		case len(verb) >= 2 && strings.HasPrefix(cand, verb):
			results = append(results, scored{verb: cand, dist: 0})
		default:
			dist := levenshtein.ComputeDistance(verb, cand)
			if dist > distanceLimit(len(cand)) {
				continue
			}
			results = append(results, scored{verb: cand, dist: dist})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].dist != results[j].dist {
			return results[i].dist < results[j].dist
		}
		return results[i].verb < results[j].verb
	})
	if len(results) > maxSuggestions {
		results = results[:maxSuggestions]
	}

	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.verb
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
