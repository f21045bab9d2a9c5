package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/ali/internal/presentation/graph"
	"github.com/aretw0/ali/pkg/domain"
)

func panes() *domain.RuleSet {
	return &domain.RuleSet{
		Name:       "tmux-panes",
		Vocabulary: domain.Vocabulary{Verbs: []string{"CREATE", "GO"}},
		Commands: []domain.CommandTemplate{
			{
				Match: domain.ConditionSet{
					{Field: "verb", Op: domain.OpEquals, Value: "CREATE"},
					{Field: "object", Op: domain.OpEquals, Value: "PANE"},
				},
				Exec: "tmux split-window {flag}",
			},
			{
				Match: domain.ConditionSet{
					{Field: "target", Op: domain.OpOneOf, Options: []any{".?", ":?"}},
				},
				Callback: "visual_selector",
			},
			{
				Match: domain.ConditionSet{{Field: "verb", Op: domain.OpEquals, Value: "GO"}, {Field: "target", Op: domain.OpPresent}},
				Exec:  `echo "{target}"`,
				Needs: []string{"pane"},
			},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	provider := &domain.RuleSet{
		Name:     "layout",
		Provides: map[string]domain.ServiceProvider{"pane": {Name: "pane", Exec: "tmux split-window {command}"}},
	}

	tests := []struct {
		name     string
		sets     []*domain.RuleSet
		overlay  *graph.Overlay
		contains []string
		excludes []string
	}{
		{
			name: "Verb and Command Shapes",
			sets: []*domain.RuleSet{panes()},
			contains: []string{
				"subgraph tmux_panes[\"tmux-panes\"]",
				"tmux_panes_CREATE((\"CREATE\"))",
				"tmux_panes_c0[\"tmux split-window {flag}\"]",
				"tmux_panes_c1[[\"visual_selector\"]]",
			},
		},
		{
			name: "Edges Carry Remaining Conditions",
			sets: []*domain.RuleSet{panes()},
			contains: []string{
				"tmux_panes_CREATE -- \"object=PANE\" --> tmux_panes_c0",
				"tmux_panes_CREATE -- \"target in .?|:?\" --> tmux_panes_c1",
				"tmux_panes_GO -- \"target in .?|:?\" --> tmux_panes_c1",
				"tmux_panes_GO -- \"target present\" --> tmux_panes_c2",
				"tmux_panes_c2[\"echo '{target}'\"]",
			},
			excludes: []string{"tmux_panes_GO -- \"object=PANE\""},
		},
		{
			name: "Services",
			sets: []*domain.RuleSet{panes(), provider},
			contains: []string{
				"tmux_panes_c2 -. needs .-> svc_pane",
				"svc_pane[/\"pane\"/]",
				"svc_pane -. provided by .-> layout",
			},
		},
		{
			name:    "Overlay",
			sets:    []*domain.RuleSet{panes()},
			overlay: &graph.Overlay{RuleSet: "tmux-panes", Verb: "GO", Command: 2},
			contains: []string{
				"class tmux_panes_GO visited;",
				"class tmux_panes_c2 current;",
			},
		},
		{
			name:     "Overlay Without Match",
			sets:     []*domain.RuleSet{panes()},
			overlay:  &graph.Overlay{RuleSet: "tmux-panes", Verb: "GO", Command: -1},
			excludes: []string{"current;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.sets, tt.overlay)
			assert.True(t, strings.HasPrefix(got, "graph TD\n"))
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}
