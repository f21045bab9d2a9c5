package domain

import (
	"regexp"
	"sort"
	"strings"
)

// TargetPattern is one entry of vocabulary.target_patterns:
// either an exact literal or a regular expression.
type TargetPattern struct {
	Literal string
	Regex   *regexp.Regexp
}

// Vocabulary lists the words a rule set understands.
type Vocabulary struct {
	Verbs      []string
	Objects    []string
	Directions []string
	Clauses    []string
	// VerbAliases maps an alias (uppercased) to its canonical verb.
	VerbAliases    map[string]string
	TargetPatterns []TargetPattern
}

// ValidationRules constrain the final field state.
type ValidationRules struct {
	// AllowedParams is keyed by "VERB" or "VERB OBJECT".
	AllowedParams map[string][]string
	// AllowedDirections is keyed by object.
	AllowedDirections map[string][]string
}

// Hints carry composition parameters for commands that need a wrapping service.
type Hints struct {
	Position string
	Size     string
}

// CommandTemplate is one candidate output of a rule set.
type CommandTemplate struct {
	Match ConditionSet
	Exec  string
	// Needs names abstract services that must wrap the resolved command.
	Needs []string
	Hints Hints
	// Callback, when set, replaces Exec with a registered function.
	Callback string
	// Expansions are command-local and override global ones of the same name.
	Expansions []Expansion
}

// ServiceProvider is how a rule set fulfils an abstract service.
type ServiceProvider struct {
	Name string
	// Exec is the wrapping template; {command} receives the quoted inner command.
	Exec string
	// Positions overrides the default position → flags table.
	Positions map[string]string
}

// Activation decides whether a rule set participates at all.
type Activation struct {
	RequiresEnv []string
}

// RuleSet is the immutable, compiled form of one plugin.
type RuleSet struct {
	Name        string
	Version     string
	Description string
	Source      string

	Vocabulary   Vocabulary
	Grammar      map[string]GrammarRule
	Expectations map[string][]Expectation
	Inference    []InferenceRule
	Validation   ValidationRules
	Commands     []CommandTemplate
	// Expansions are sorted by name.
	Expansions []Expansion
	// Services are named template fragments visible to every rule set.
	Services map[string]string
	Provides map[string]ServiceProvider
	Requires []string

	Activation Activation
	// CaptureEnv lists environment variables worth recording in history.
	CaptureEnv []string
}

// Verbs returns the uppercased verbs this rule set handles, sorted.
func (r *RuleSet) Verbs() []string {
	seen := make(map[string]bool)
	var verbs []string
	add := func(v string) {
		v = strings.ToUpper(v)
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		verbs = append(verbs, v)
	}
	for _, v := range r.Vocabulary.Verbs {
		add(v)
	}
	for v := range r.Expectations {
		add(v)
	}
	sort.Strings(verbs)
	return verbs
}

// ExpectationsFor returns the ordered expectations of verb and whether any were declared.
func (r *RuleSet) ExpectationsFor(verb string) ([]Expectation, bool) {
	exp, ok := r.Expectations[strings.ToUpper(verb)]
	return exp, ok
}
