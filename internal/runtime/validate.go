package runtime

import (
	"slices"

	"github.com/aretw0/ali/pkg/domain"
)

// CommandKey is the validation lookup key: "VERB OBJECT" or "VERB".
func CommandKey(state domain.FieldState) string {
	if obj := state.Object(); obj != "" {
		return state.Verb() + " " + obj
	}
	return state.Verb()
}

// Validate checks the final state against the rule set's allow-lists and
// returns the first violation found.
func Validate(state domain.FieldState, rules domain.ValidationRules) error {
	key := CommandKey(state)

	if allowed, ok := rules.AllowedParams[key]; ok {
		for _, param := range state.Keys() {
			if domain.IsReserved(param) || slices.Contains(allowed, param) {
				continue
			}
			return &domain.ValidationError{
				Kind:       domain.ViolationParameter,
				CommandKey: key,
				Param:      param,
				Allowed:    allowed,
			}
		}
	}

	if !state.Truthy(domain.FieldDirection) {
		return nil
	}
	obj := state.Object()
	allowed, ok := rules.AllowedDirections[obj]
	if !ok {
		return nil
	}
	direction := state.String(domain.FieldDirection)
	if !slices.Contains(allowed, direction) {
		return &domain.ValidationError{
			Kind:      domain.ViolationDirection,
			Object:    obj,
			Direction: direction,
			Allowed:   allowed,
		}
	}
	return nil
}
