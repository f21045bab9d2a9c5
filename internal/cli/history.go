package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// ShowHistory prints the most recent entries, oldest first.
func ShowHistory(ctx context.Context, opts Options, limit int, asJSON bool, w io.Writer) error {
	store, closeStore, err := OpenHistory(opts.History)
	if err != nil {
		return err
	}
	defer closeStore()
	if store == nil {
		return fmt.Errorf("history is disabled (set --history or %s)", EnvHistory)
	}

	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	}

	if len(entries) == 0 {
		printSystemMessage(w, "No history recorded yet.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tOUTCOME\tINPUT\tRESULT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Timestamp.Local().Format(time.DateTime), e.Outcome, e.Input, e.Result)
	}
	return tw.Flush()
}
