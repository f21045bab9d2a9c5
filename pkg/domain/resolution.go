package domain

import "errors"

// Resolution is the full outcome of running one command through the pipeline.
type Resolution struct {
	Input    string
	// Verb is canonical: aliases are already resolved.
	Verb     string
	RuleSet  string
	Fields   FieldState
	Command  string
	// Template is the index of the command template that produced Command, or -1.
	Template int
}

// Outcome labels used by metrics and history.
const (
	OutcomeResolved         = "resolved"
	OutcomeEmpty            = "empty"
	OutcomeUnknownVerb      = "unknown_verb"
	OutcomeUnexpectedTokens = "unexpected_tokens"
	OutcomeValidation       = "validation"
	OutcomeNoMatch          = "no_match"
	OutcomeMissingService   = "missing_service"
	OutcomeError            = "error"
)

// OutcomeOf classifies err into one of the outcome labels.
func OutcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeResolved
	case errors.Is(err, ErrEmptyCommand):
		return OutcomeEmpty
	case errors.Is(err, ErrUnknownVerb):
		return OutcomeUnknownVerb
	case errors.Is(err, ErrUnexpectedTokens):
		return OutcomeUnexpectedTokens
	case errors.Is(err, ErrValidation):
		return OutcomeValidation
	case errors.Is(err, ErrNoMatchingCommand):
		return OutcomeNoMatch
	case errors.Is(err, ErrMissingService):
		return OutcomeMissingService
	default:
		return OutcomeError
	}
}
