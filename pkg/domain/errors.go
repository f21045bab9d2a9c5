package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCommand is returned when the command string holds no tokens.
var ErrEmptyCommand = errors.New("Empty command")

// ErrUnknownVerb is returned when no loaded rule set registers the verb.
var ErrUnknownVerb = errors.New("unknown verb")

// ErrUnexpectedTokens is returned when tokens remain after grammar consumption.
var ErrUnexpectedTokens = errors.New("unexpected tokens")

// ErrValidation is returned when the field state breaks a validation rule.
var ErrValidation = errors.New("validation violation")

// ErrNoMatchingCommand is returned when no command template matches the field state.
var ErrNoMatchingCommand = errors.New("no matching command")

// ErrMissingService is returned when a needed service has no provider.
var ErrMissingService = errors.New("missing service")

// UnknownVerbError names the verb and everything that could have been used instead.
type UnknownVerbError struct {
	Verb        string
	Available   []string // sorted
	Suggestions []string
}

func (e *UnknownVerbError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s.", UnknownVerbPrefix, e.Verb)
	if len(e.Available) == 0 {
		b.WriteString(" No plugins loaded.")
		return b.String()
	}
	fmt.Fprintf(&b, " Available: %s", strings.Join(e.Available, ", "))
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, ". Did you mean %s?", strings.Join(e.Suggestions, " or "))
	}
	return b.String()
}

func (e *UnknownVerbError) Unwrap() error { return ErrUnknownVerb }

// UnexpectedTokensError lists the tokens the grammar could not place.
type UnexpectedTokensError struct {
	Verb   string
	Tokens []string
}

func (e *UnexpectedTokensError) Error() string {
	quoted := make([]string, len(e.Tokens))
	for i, t := range e.Tokens {
		quoted[i] = "'" + t + "'"
	}
	return fmt.Sprintf("Unexpected tokens for %s: %s", e.Verb, strings.Join(quoted, ", "))
}

func (e *UnexpectedTokensError) Unwrap() error { return ErrUnexpectedTokens }

// ViolationKind distinguishes the validation checks.
type ViolationKind string

const (
	ViolationParameter ViolationKind = "parameter"
	ViolationDirection ViolationKind = "direction"
)

// ValidationError is the first violation found by the validator.
type ValidationError struct {
	Kind ViolationKind
	// CommandKey is "VERB" or "VERB OBJECT".
	CommandKey string
	// Param is the offending field (parameter violations).
	Param     string
	Object    string
	Direction string
	Allowed   []string
}

func (e *ValidationError) Error() string {
	if e.Kind == ViolationDirection {
		return fmt.Sprintf("%s does not support direction '%s'. Allowed: %s", e.Object, e.Direction, strings.Join(e.Allowed, ", "))
	}
	return fmt.Sprintf("'%s' doesn't accept parameter '%s'", e.CommandKey, e.Param)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NoMatchError reports that no command template matched, with the
// required fields the input failed to provide.
type NoMatchError struct {
	Verb    string
	Object  string
	Missing []string
}

func (e *NoMatchError) Error() string {
	subject := e.Verb
	if e.Object != "" {
		subject += " " + e.Object
	}
	msg := fmt.Sprintf("No matching command for '%s'", subject)
	if len(e.Missing) > 0 {
		msg += fmt.Sprintf(": missing required field(s): %s", strings.Join(e.Missing, ", "))
	}
	return msg
}

func (e *NoMatchError) Unwrap() error { return ErrNoMatchingCommand }

// MissingServiceError names a service without provider.
type MissingServiceError struct {
	Service string
	Reason  string
}

func (e *MissingServiceError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("Service '%s' unavailable: %s", e.Service, e.Reason)
	}
	return fmt.Sprintf("No provider for service '%s'", e.Service)
}

func (e *MissingServiceError) Unwrap() error { return ErrMissingService }

// IsNotFound reports whether err means "no verb or command available",
// which callers treat differently from other failures.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownVerb)
}

// FormatResult folds an error into the prefixed string contract.
func FormatResult(err error) string {
	if err == nil {
		return ""
	}
	if IsNotFound(err) {
		return err.Error()
	}
	return ErrorPrefix + " " + err.Error()
}

// IsErrorResult reports whether a resolved string is an error rather than a command.
func IsErrorResult(result string) bool {
	return strings.HasPrefix(result, ErrorPrefix) || IsNotFoundResult(result)
}

// IsNotFoundResult reports whether a resolved string is the not-found error.
func IsNotFoundResult(result string) bool {
	return strings.HasPrefix(result, UnknownVerbPrefix)
}
