// Package tmux holds the callbacks used by the built-in tmux rule set.
package tmux

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/ali/pkg/domain"
	"github.com/aretw0/ali/pkg/registry"
)

// Callback names referenced from plugins/tmux/plugin.yaml.
const (
	ExpandDirection = "tmux.expand_direction"
	TargetFlag      = "tmux.target_flag"
	VisualSelector  = "tmux.visual_selector"
	GenerateCommand = "tmux.generate_command"
)

// displayTime keeps the pane-number overlay visible long enough to choose.
const displayTime = "-d 2000"

// directionFlags maps object and direction to split-window flags.
// ROW and COL span the whole window (-f).
var directionFlags = map[string]map[string]string{
	"PANE": {
		"left":  "-h -b",
		"right": "-h",
		"up":    "-v -b",
		"down":  "-v",
		"above": "-v -b",
		"below": "-v",
	},
	"COL": {
		"left":  "-h -f -b",
		"right": "-h -f",
	},
	"ROW": {
		"up":    "-v -f -b",
		"down":  "-v -f",
		"above": "-v -f -b",
		"below": "-v -f",
	},
}

// baseCommands maps verb and object to the tmux subcommand.
var baseCommands = map[[2]string]string{
	{"CREATE", "PANE"}:    "split-window",
	{"CREATE", "WINDOW"}:  "new-window",
	{"CREATE", "SESSION"}: "new-session",
	{"CREATE", "ROW"}:     "split-window",
	{"CREATE", "COL"}:     "split-window",
	{"DELETE", "PANE"}:    "kill-pane",
	{"DELETE", "WINDOW"}:  "kill-window",
	{"DELETE", "SESSION"}: "kill-session",
	{"GO", "PANE"}:        "select-pane",
	{"GO", "WINDOW"}:      "select-window",
	{"SWITCH", "PANE"}:    "select-pane",
	{"SWITCH", "WINDOW"}:  "select-window",
	{"SWITCH", "SESSION"}: "switch-client",
	{"SWAP", "PANE"}:      "swap-pane",
	{"SWAP", "WINDOW"}:    "swap-window",
	{"RENAME", "WINDOW"}:  "rename-window",
	{"RENAME", "SESSION"}: "rename-session",
	{"LIST", "PANES"}:     "list-panes",
	{"LIST", "WINDOWS"}:   "list-windows",
	{"LIST", "SESSIONS"}:  "list-sessions",
}

// Register adds every tmux callback to reg.
func Register(reg *registry.Registry) {
	reg.Register(ExpandDirection, adapt(Direction))
	reg.Register(TargetFlag, adapt(Target))
	reg.Register(VisualSelector, adapt(Selector))
	reg.Register(GenerateCommand, adapt(Generate))
}

func adapt(fn func(domain.FieldState) string) registry.Callback {
	return func(_ context.Context, fields domain.FieldState) (string, error) {
		return fn(fields), nil
	}
}

// Direction returns the split flags for the object and direction in fields.
func Direction(fields domain.FieldState) string {
	obj := fields.Object()
	if obj == "" {
		obj = "PANE"
	}
	return directionFlags[obj][strings.ToLower(fields.String(domain.FieldDirection))]
}

// Target returns "-t <target>", or nothing when no target was given.
func Target(fields domain.FieldState) string {
	if target := NormalizeTarget(fields.String(domain.FieldTarget)); target != "" {
		return "-t " + target
	}
	return ""
}

// Selector returns an interactive chooser when the target is a "?" form:
// ".?" for panes, ":?" for windows and "?" for sessions. Any other input
// yields "" so the next command can handle it.
func Selector(fields domain.FieldState) string {
	verb := fields.Verb()
	target := fields.String(domain.FieldTarget)
	with := fields.String("with")

	switch fields.Object() {
	case "PANE":
		if target != ".?" && with != ".?" {
			return ""
		}
		action := map[string]string{
			"DELETE": `'kill-pane -t "%%"'`,
			"SWAP":   `'swap-pane -t "%%"'`,
		}[verb]
		return strings.TrimSpace(fmt.Sprintf("tmux display-panes %s %s", displayTime, action))
	case "WINDOW":
		if target != ":?" && with != ":?" {
			return ""
		}
		switch verb {
		case "GO":
			return "tmux choose-window"
		case "DELETE":
			return `tmux choose-window 'kill-window -t "%%"'`
		default:
			return `tmux choose-window 'select-window -t "%%"'`
		}
	case "SESSION":
		if target == "?" {
			return "tmux choose-session"
		}
	}
	return ""
}

// Generate builds a command straight from the field state. It is the
// catch-all for verb and object pairs no template covers.
func Generate(fields domain.FieldState) string {
	if cmd := Selector(fields); cmd != "" {
		return cmd
	}

	verb, obj := fields.Verb(), fields.Object()
	if verb == "" || obj == "" {
		return ""
	}
	sub, ok := baseCommands[[2]string{verb, obj}]
	if !ok {
		return ""
	}

	parts := []string{"tmux", sub}
	switch verb {
	case "CREATE":
		if obj == "PANE" || obj == "ROW" || obj == "COL" {
			if flags := Direction(fields); flags != "" {
				parts = append(parts, flags)
			}
		}
	case "SWAP":
		if with := fields.String("with"); with != "" {
			return fmt.Sprintf("tmux %s -s %s -t %s", sub, NormalizeTarget(fields.String(domain.FieldTarget)), with)
		}
	}
	if flag := Target(fields); flag != "" {
		parts = append(parts, flag)
	}
	if verb == "RENAME" {
		if name := fields.String("name"); name != "" {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, " ")
}

// NormalizeTarget maps the spellings of "current" to an empty target.
func NormalizeTarget(target string) string {
	switch strings.ToUpper(target) {
	case ".", ":", ".THIS", ":THIS", "THIS", "CURRENT":
		return ""
	}
	return target
}
