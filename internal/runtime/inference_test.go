package runtime_test

import (
	"regexp"
	"testing"

	"github.com/aretw0/ali/internal/runtime"
	"github.com/aretw0/ali/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	state := domain.FieldState{
		"verb":   "GO",
		"target": ":main",
		"count":  int64(2),
		"empty":  "",
		"nil":    nil,
	}

	tests := []struct {
		name string
		cond domain.Condition
		want bool
	}{
		{"equals", cond("verb", "GO"), true},
		{"equals mismatch", cond("verb", "CREATE"), false},
		{"numeric equality across types", cond("count", 2.0), true},
		{"present", present("target"), true},
		{"present but empty", present("empty"), false},
		{"present missing", present("object"), false},
		{"absent missing", domain.Condition{Field: "object", Op: domain.OpAbsent}, true},
		{"absent nil", domain.Condition{Field: "nil", Op: domain.OpAbsent}, true},
		{"absent set", domain.Condition{Field: "target", Op: domain.OpAbsent}, false},
		{"regex", domain.Condition{Field: "target", Op: domain.OpRegex, Pattern: regexp.MustCompile(`^:`)}, true},
		{"regex mismatch", domain.Condition{Field: "target", Op: domain.OpRegex, Pattern: regexp.MustCompile(`^\.`)}, false},
		{"regex on missing", domain.Condition{Field: "object", Op: domain.OpRegex, Pattern: regexp.MustCompile(`.*`)}, false},
		{"one of", domain.Condition{Field: "verb", Op: domain.OpOneOf, Options: []any{"SWITCH", "GO"}}, true},
		{"one of mismatch", domain.Condition{Field: "verb", Op: domain.OpOneOf, Options: []any{"SWITCH"}}, false},
		{"else", domain.Condition{Op: domain.OpElse}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runtime.Matches(state, domain.ConditionSet{tt.cond}))
		})
	}

	t.Run("Empty set always matches", func(t *testing.T) {
		assert.True(t, runtime.Matches(state, nil))
	})
}

func TestApplyInference(t *testing.T) {
	t.Run("Rules observe earlier rules", func(t *testing.T) {
		rules := []domain.InferenceRule{
			{When: domain.ConditionSet{present("a")}, Set: []domain.Assignment{{Field: "b", Value: int64(1)}}},
			{When: domain.ConditionSet{cond("b", int64(1))}, Set: []domain.Assignment{{Field: "c", Value: int64(2)}}},
		}
		state := runtime.ApplyInference(domain.FieldState{"verb": "X", "a": "yes"}, rules)
		assert.Equal(t, int64(1), state["b"])
		assert.Equal(t, int64(2), state["c"])
	})

	t.Run("Declared order matters", func(t *testing.T) {
		rules := []domain.InferenceRule{
			{When: domain.ConditionSet{cond("b", int64(1))}, Set: []domain.Assignment{{Field: "c", Value: int64(2)}}},
			{When: domain.ConditionSet{present("a")}, Set: []domain.Assignment{{Field: "b", Value: int64(1)}}},
		}
		state := runtime.ApplyInference(domain.FieldState{"verb": "X", "a": "yes"}, rules)
		assert.Equal(t, int64(1), state["b"])
		assert.False(t, state.Has("c"))
	})

	t.Run("Set overwrites and transform only touches existing fields", func(t *testing.T) {
		rules := []domain.InferenceRule{{
			When:      domain.ConditionSet{{Op: domain.OpElse}},
			Set:       []domain.Assignment{{Field: "object", Value: "PANE"}},
			Transform: []domain.Assignment{{Field: "target", Value: ""}, {Field: "ghost", Value: "boo"}},
		}}
		state := runtime.ApplyInference(domain.FieldState{"verb": "DELETE", "object": "WINDOW", "target": ".THIS"}, rules)
		assert.Equal(t, "PANE", state["object"])
		assert.Equal(t, "", state["target"])
		assert.False(t, state.Has("ghost"))
	})

	t.Run("All rules are evaluated", func(t *testing.T) {
		rules := []domain.InferenceRule{
			{When: domain.ConditionSet{present("a")}, Set: []domain.Assignment{{Field: "x", Value: "1"}}},
			{When: domain.ConditionSet{present("missing")}, Set: []domain.Assignment{{Field: "y", Value: "2"}}},
			{When: domain.ConditionSet{present("a")}, Set: []domain.Assignment{{Field: "z", Value: "3"}}},
		}
		state := runtime.ApplyInference(domain.FieldState{"verb": "X", "a": "yes"}, rules)
		assert.Equal(t, "1", state["x"])
		assert.False(t, state.Has("y"))
		assert.Equal(t, "3", state["z"])
	})
}
