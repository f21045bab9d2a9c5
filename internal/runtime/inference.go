package runtime

import "github.com/aretw0/ali/pkg/domain"

// ApplyInference runs every rule in order against the evolving state.
// Each rule sees the effects of the ones before it; there is no fixed point.
func ApplyInference(state domain.FieldState, rules []domain.InferenceRule) domain.FieldState {
	for _, rule := range rules {
		if !Matches(state, rule.When) {
			continue
		}
		for _, a := range rule.Set {
			state[a.Field] = a.Value
		}
		for _, a := range rule.Transform {
			if _, ok := state[a.Field]; ok {
				state[a.Field] = a.Value
			}
		}
	}
	return state
}
