package runtime_test

import (
	"regexp"

	"github.com/aretw0/ali/pkg/domain"
)

func cond(field string, value any) domain.Condition {
	return domain.Condition{Field: field, Op: domain.OpEquals, Value: value}
}

func present(field string) domain.Condition {
	return domain.Condition{Field: field, Op: domain.OpPresent}
}

// paneRuleSet is a small tmux-flavoured rule set shared by the pipeline tests.
func paneRuleSet() *domain.RuleSet {
	return &domain.RuleSet{
		Name: "panes",
		Vocabulary: domain.Vocabulary{
			Verbs:       []string{"CREATE", "GO", "RENAME"},
			Objects:     []string{"PANE", "WINDOW"},
			Directions:  []string{"left", "right", "up", "down"},
			VerbAliases: map[string]string{"NEW": "CREATE"},
			TargetPatterns: []domain.TargetPattern{
				{Literal: ".?"},
				{Regex: regexp.MustCompile(`\.[0-9]+`)},
				{Regex: regexp.MustCompile(`:[0-9A-Za-z]+`)},
			},
		},
		Grammar: map[string]domain.GrammarRule{
			"name": domain.PrimitiveRule{Type: domain.PrimitiveString},
		},
		Expectations: map[string][]domain.Expectation{
			"CREATE": {
				{Field: "object"},
				{Field: "direction", Optional: true},
			},
			"GO": {
				{Field: "target"},
			},
			"RENAME": {
				{Field: "object"},
				{Field: "name"},
			},
		},
		Inference: []domain.InferenceRule{
			{
				When: domain.ConditionSet{cond("verb", "CREATE"), {Field: "direction", Op: domain.OpAbsent}},
				Set:  []domain.Assignment{{Field: "direction", Value: "right"}},
			},
		},
		Validation: domain.ValidationRules{
			AllowedParams: map[string][]string{
				"CREATE PANE": {"direction"},
			},
			AllowedDirections: map[string][]string{
				"WINDOW": {"right"},
			},
		},
		Commands: []domain.CommandTemplate{
			{
				Match: domain.ConditionSet{cond("verb", "CREATE"), cond("object", "PANE")},
				Exec:  "tmux split-window {flag}",
			},
			{
				Match: domain.ConditionSet{cond("verb", "CREATE"), cond("object", "WINDOW")},
				Exec:  "tmux new-window",
			},
			{
				Match: domain.ConditionSet{cond("verb", "GO"), present("target")},
				Exec:  "tmux select-pane -t {target}",
			},
			{
				Match: domain.ConditionSet{cond("verb", "RENAME"), cond("object", "WINDOW")},
				Exec:  "tmux rename-window {name|untitled}",
			},
		},
		Expansions: []domain.Expansion{
			domain.MapExpansion{
				ExpansionBase: domain.ExpansionBase{Name: "flag"},
				Field:         "direction",
				Mappings: map[string]any{
					"left":  "-h -b",
					"right": "-h",
					"up":    "-v -b",
					"down":  "-v",
				},
			},
		},
	}
}
