package domain

import (
	"regexp"
	"strings"
)

// CaseTransform is the casing applied to a matched token.
type CaseTransform string

const (
	TransformNone     CaseTransform = ""
	TransformLower    CaseTransform = "lower"
	TransformUpper    CaseTransform = "upper"
	TransformOriginal CaseTransform = "original"
)

// Apply transforms s. TransformOriginal is handled by EnumRule matching,
// for any other rule it leaves s untouched.
func (t CaseTransform) Apply(s string) string {
	switch t {
	case TransformLower:
		return strings.ToLower(s)
	case TransformUpper:
		return strings.ToUpper(s)
	default:
		return s
	}
}

// PrimitiveType names the built-in token types.
type PrimitiveType string

const (
	PrimitiveString  PrimitiveType = "string"
	PrimitiveInteger PrimitiveType = "integer"
	PrimitiveFloat   PrimitiveType = "float"
)

// GrammarRule is the per-field matcher. It is a closed set:
// PatternRule, EnumRule or PrimitiveRule.
type GrammarRule interface {
	Case() CaseTransform
	grammarRule()
}

// PatternRule accepts tokens that fully match Pattern.
type PatternRule struct {
	Source    string
	Pattern   *regexp.Regexp
	Transform CaseTransform
}

// EnumRule accepts tokens equal to one of Values.
type EnumRule struct {
	Values        []string
	CaseSensitive bool
	Transform     CaseTransform
}

// PrimitiveRule accepts tokens parseable as Type.
type PrimitiveRule struct {
	Type      PrimitiveType
	Transform CaseTransform
}

func (r PatternRule) Case() CaseTransform   { return r.Transform }
func (r EnumRule) Case() CaseTransform      { return r.Transform }
func (r PrimitiveRule) Case() CaseTransform { return r.Transform }

func (PatternRule) grammarRule()   {}
func (EnumRule) grammarRule()      {}
func (PrimitiveRule) grammarRule() {}

// Expectation describes one positional field a verb consumes.
type Expectation struct {
	Field    string
	Optional bool
	// Default is applied when the field cannot be filled; only meaningful if HasDefault.
	Default    any
	HasDefault bool
	// Clause, when set, is a keyword that must precede the value (e.g. WITH).
	Clause string
}
