package runtime

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aretw0/ali/pkg/domain"
)

// ExtractFields consumes tokens into a FieldState following the verb's
// expectations. Unmatched fields are left unset (or defaulted); only
// leftover tokens are an error.
func ExtractFields(rs *domain.RuleSet, verb string, tokens []domain.Token) (domain.FieldState, error) {
	state := domain.NewFieldState(verb)
	values := domain.TokenValues(tokens)

	expectations, ok := rs.ExpectationsFor(verb)
	if !ok || len(expectations) == 0 {
		if len(values) > 0 {
			state[domain.FieldArgs] = values
		}
		return state, nil
	}

	cursor := 0
	for _, exp := range expectations {
		if cursor >= len(values) {
			applyDefault(state, exp)
			continue
		}

		if exp.Field == domain.FieldArgs {
			state[domain.FieldArgs] = append([]string(nil), values[cursor:]...)
			cursor = len(values)
			continue
		}

		rule := grammarFor(rs, exp.Field)

		if exp.Clause != "" {
			if cursor+1 < len(values) && strings.EqualFold(values[cursor], exp.Clause) {
				if v, ok := MatchToken(rule, values[cursor+1]); ok {
					state[exp.Field] = v
					cursor += 2
					continue
				}
			}
			applyDefault(state, exp)
			continue
		}

		if v, ok := MatchToken(rule, values[cursor]); ok {
			state[exp.Field] = v
			cursor++
			continue
		}
		applyDefault(state, exp)
	}

	if cursor < len(values) {
		return nil, &domain.UnexpectedTokensError{Verb: state.Verb(), Tokens: values[cursor:]}
	}
	return state, nil
}

func applyDefault(state domain.FieldState, exp domain.Expectation) {
	if exp.HasDefault {
		state[exp.Field] = exp.Default
	}
}

// MatchToken tests a single token against a grammar rule and returns the
// value to store when it matches.
func MatchToken(rule domain.GrammarRule, token string) (any, bool) {
	switch r := rule.(type) {
	case domain.PatternRule:
		if r.Pattern == nil || !r.Pattern.MatchString(token) {
			return nil, false
		}
		return r.Transform.Apply(token), true

	case domain.EnumRule:
		for _, candidate := range r.Values {
			matched := strings.EqualFold(candidate, token)
			if r.CaseSensitive {
				matched = candidate == token
			}
			if !matched {
				continue
			}
			if r.Transform == domain.TransformOriginal {
				return candidate, true
			}
			return r.Transform.Apply(token), true
		}
		return nil, false

	case domain.PrimitiveRule:
		switch r.Type {
		case domain.PrimitiveInteger:
			n, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				return nil, false
			}
			return n, true
		case domain.PrimitiveFloat:
			f, err := strconv.ParseFloat(token, 64)
			if err != nil {
				return nil, false
			}
			return f, true
		default:
			return r.Transform.Apply(token), true
		}
	}
	return nil, false
}

// grammarFor returns the declared rule for field, or one derived from the vocabulary.
func grammarFor(rs *domain.RuleSet, field string) domain.GrammarRule {
	if rule, ok := rs.Grammar[field]; ok && rule != nil {
		return rule
	}

	vocab := rs.Vocabulary
	switch field {
	case domain.FieldObject:
		if len(vocab.Objects) > 0 {
			return domain.EnumRule{Values: vocab.Objects, Transform: domain.TransformUpper}
		}
	case domain.FieldDirection:
		if len(vocab.Directions) > 0 {
			return domain.EnumRule{Values: vocab.Directions, Transform: domain.TransformLower}
		}
	case domain.FieldTarget:
		if re := targetPattern(vocab.TargetPatterns); re != nil {
			return domain.PatternRule{Source: re.String(), Pattern: re}
		}
	}
	return domain.PrimitiveRule{Type: domain.PrimitiveString}
}

func targetPattern(patterns []domain.TargetPattern) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}
	alts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p.Regex != nil {
			alts = append(alts, "(?:"+p.Regex.String()+")")
			continue
		}
		alts = append(alts, regexp.QuoteMeta(p.Literal))
	}
	re, err := regexp.Compile("^(?:" + strings.Join(alts, "|") + ")$")
	if err != nil {
		return nil
	}
	return re
}
