package domain

import "regexp"

// Sentinel strings understood in condition-sets.
const (
	CondPresent = "present"
	CondAbsent  = "absent"
	CondNull    = "null"
	CondElse    = "else"
)

// ConditionOp is the kind of predicate a Condition applies.
type ConditionOp int

const (
	OpEquals  ConditionOp = iota // literal equality
	OpPresent                    // field exists and is truthy
	OpAbsent                     // field missing or nil
	OpRegex                      // string form matches Pattern
	OpOneOf                      // value is a member of Options
	OpElse                       // always satisfied
)

func (op ConditionOp) String() string {
	switch op {
	case OpPresent:
		return "present"
	case OpAbsent:
		return "absent"
	case OpRegex:
		return "regex"
	case OpOneOf:
		return "one-of"
	case OpElse:
		return "else"
	default:
		return "equals"
	}
}

// Condition is a single field predicate.
type Condition struct {
	Field   string
	Op      ConditionOp
	Value   any
	Pattern *regexp.Regexp
	Options []any
}

// ConditionSet is a conjunction of conditions. An empty set is always satisfied.
type ConditionSet []Condition

// Assignment is one field/value pair of an inference rule.
type Assignment struct {
	Field string
	Value any
}

// InferenceRule sets or transforms fields when its condition-set holds.
type InferenceRule struct {
	When ConditionSet
	// Set is applied unconditionally once When holds.
	Set []Assignment
	// Transform only overwrites fields already present.
	Transform []Assignment
}
