package runtime

import (
	"slices"
	"sort"

	"github.com/aretw0/ali/pkg/domain"
)

// MatchCommand returns the first command template at or after index start
// whose match set holds, together with its index. It returns -1 when none do.
func MatchCommand(rs *domain.RuleSet, state domain.FieldState, start int) (int, *domain.CommandTemplate) {
	for i := start; i < len(rs.Commands); i++ {
		if Matches(state, rs.Commands[i].Match) {
			return i, &rs.Commands[i]
		}
	}
	return -1, nil
}

// NoMatch builds the failure for a state no command accepted, naming the
// required fields the input did not provide.
func NoMatch(rs *domain.RuleSet, state domain.FieldState) *domain.NoMatchError {
	return &domain.NoMatchError{
		Verb:    state.Verb(),
		Object:  state.Object(),
		Missing: missingFields(rs, state),
	}
}

func missingFields(rs *domain.RuleSet, state domain.FieldState) []string {
	var missing []string
	if expectations, ok := rs.ExpectationsFor(state.Verb()); ok {
		for _, exp := range expectations {
			if exp.Optional || state.Has(exp.Field) {
				continue
			}
			missing = append(missing, exp.Field)
		}
	}
	if len(missing) > 0 {
		return missing
	}

	// No required expectation is missing: fall back to the fields that
	// commands for this verb test with "present".
	for _, cmd := range rs.Commands {
		if !matchesVerb(state, cmd.Match) {
			continue
		}
		for _, c := range cmd.Match {
			if c.Op == domain.OpPresent && !state.Truthy(c.Field) && !slices.Contains(missing, c.Field) {
				missing = append(missing, c.Field)
			}
		}
	}
	sort.Strings(missing)
	return missing
}

func matchesVerb(state domain.FieldState, set domain.ConditionSet) bool {
	for _, c := range set {
		if c.Field == domain.FieldVerb || c.Field == domain.FieldObject {
			if !matchCondition(state, c) {
				return false
			}
		}
	}
	return true
}
