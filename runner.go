package ali

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/ali/pkg/domain"
)

// ResultHandler receives every command the Runner interprets.
// A non-nil return stops the loop; io.EOF stops it without an error.
type ResultHandler func(ctx context.Context, res *domain.Resolution, err error) error

// Runner reads commands line by line and interprets them until EOF, "exit"
// or "quit". It backs the interactive shell and piped input.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Prompt   string
	Handler  ResultHandler
}

// NewRunner creates a Runner over in and out that prints each result.
func NewRunner(in io.Reader, out io.Writer) *Runner {
	return &Runner{Input: in, Output: out, Prompt: "ali> "}
}

// Run executes the read-interpret loop.
func (r *Runner) Run(ctx context.Context, it *Interpreter) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	handler := r.Handler
	if handler == nil {
		handler = r.print
	}

	lines := bufio.NewScanner(r.Input)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.Headless {
			fmt.Fprint(r.Output, r.Prompt)
		}
		if !lines.Scan() {
			if err := lines.Err(); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
			return nil
		}

		line, err := SanitizeInput(lines.Text())
		if err != nil {
			if herr := handler(ctx, &domain.Resolution{Input: lines.Text(), Template: -1}, err); herr != nil {
				return stopErr(herr)
			}
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			if !r.Headless {
				fmt.Fprintln(r.Output, "Bye!")
			}
			return nil
		}

		res, err := it.Trace(ctx, line)
		if herr := handler(ctx, res, err); herr != nil {
			return stopErr(herr)
		}
	}
}

func stopErr(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (r *Runner) print(_ context.Context, res *domain.Resolution, err error) error {
	if err != nil {
		fmt.Fprintln(r.Output, domain.FormatResult(err))
		return nil
	}
	fmt.Fprintln(r.Output, res.Command)
	return nil
}
