package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/ali/internal/presentation/graph"
	"github.com/aretw0/ali/pkg/domain"
)

// Graph prints a Mermaid flowchart of the active rule sets. When trace is
// set, the path that command takes is highlighted; a failing trace is
// reported on w and the graph is still printed.
func Graph(ctx context.Context, opts Options, trace string, w io.Writer) error {
	it, err := newInterpreter(ctx, opts, createLogger(opts.Debug))
	if err != nil {
		return err
	}

	var overlay *graph.Overlay
	if trace != "" {
		res, err := it.Trace(ctx, trace)
		if err != nil {
			printSystemMessage(w, "%s", domain.FormatResult(err))
		}
		if res != nil && res.RuleSet != "" {
			overlay = &graph.Overlay{RuleSet: res.RuleSet, Verb: res.Verb, Command: res.Template}
		}
	}

	_, err = fmt.Fprint(w, graph.GenerateMermaid(it.Catalog().RuleSets(), overlay))
	return err
}
