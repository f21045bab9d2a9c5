package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/ali/internal/presentation/tui"
)

// ListVerbs prints the active verbs grouped by rule set. On a terminal the
// listing is rendered with glamour; otherwise the markdown is written as is.
func ListVerbs(ctx context.Context, opts Options, w io.Writer) error {
	it, err := newInterpreter(ctx, opts, createLogger(opts.Debug))
	if err != nil {
		return err
	}

	md := tui.VerbsMarkdown(it.Catalog())
	if f, ok := w.(*os.File); ok && tui.IsInteractive(f) {
		if rendered, rerr := tui.NewRenderer(0)(md); rerr == nil {
			md = rendered
		}
	}
	_, err = fmt.Fprint(w, md)
	return err
}
