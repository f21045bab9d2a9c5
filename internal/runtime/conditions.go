package runtime

import "github.com/aretw0/ali/pkg/domain"

// Matches reports whether state satisfies every condition of set.
// An empty set always matches.
func Matches(state domain.FieldState, set domain.ConditionSet) bool {
	for _, c := range set {
		if !matchCondition(state, c) {
			return false
		}
	}
	return true
}

func matchCondition(state domain.FieldState, c domain.Condition) bool {
	actual, exists := state[c.Field]

	switch c.Op {
	case domain.OpElse:
		return true
	case domain.OpPresent:
		return exists && domain.Truthy(actual)
	case domain.OpAbsent:
		return !exists || actual == nil
	case domain.OpRegex:
		if !exists || actual == nil || c.Pattern == nil {
			return false
		}
		return c.Pattern.MatchString(domain.Stringify(actual))
	case domain.OpOneOf:
		if !exists {
			return false
		}
		for _, opt := range c.Options {
			if domain.ValuesEqual(actual, opt) {
				return true
			}
		}
		return false
	default:
		if !exists {
			return c.Value == nil
		}
		return domain.ValuesEqual(actual, c.Value)
	}
}
