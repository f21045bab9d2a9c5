package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/ali/pkg/adapters/process"
	"github.com/aretw0/ali/pkg/domain"
	"github.com/aretw0/ali/pkg/ports"
)

// Exit codes of the run command. A command that was executed exits with its own code.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitNotFound = 127
)

// RunOptions contains the configuration for the run command.
type RunOptions struct {
	Options
	DryRun bool
	// Executor runs the resolved command. Defaults to a shell process.
	Executor ports.CommandExecutor
}

// Run interprets input and, unless DryRun is set, executes the result.
// It returns the process exit code.
func Run(ctx context.Context, opts RunOptions, input string, stdout, stderr io.Writer) int {
	logger := createLogger(opts.Debug)
	style := styler(stderr)

	it, err := newInterpreter(ctx, opts.Options, logger)
	if err != nil {
		fmt.Fprintln(stderr, style.Error(domain.FormatResult(err)))
		return ExitFailure
	}

	store, closeStore, err := OpenHistory(opts.History)
	if err != nil {
		logger.Warn("history disabled", "error", err)
	}
	defer closeStore()
	recorder := NewRecorder(store, opts.Caller, logger)

	res, err := it.Trace(ctx, input)
	if err != nil {
		recorder.Record(ctx, it.Catalog(), res, err, Execution{DryRun: opts.DryRun})
		fmt.Fprintln(stderr, style.Error(domain.FormatResult(err)))
		if domain.IsNotFound(err) {
			return ExitNotFound
		}
		return ExitFailure
	}

	if opts.DryRun {
		recorder.Record(ctx, it.Catalog(), res, nil, Execution{DryRun: true})
		fmt.Fprintf(stdout, "Would execute: %s\n", res.Command)
		return ExitOK
	}

	executor := opts.Executor
	if executor == nil {
		executor = process.NewRunner()
	}
	logger.Debug("executing", "command", res.Command)
	code, err := executor.Execute(ctx, res.Command, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, style.Error(fmt.Sprintf("Failed to execute: %v", err)))
		code = ExitFailure
	}
	recorder.Record(ctx, it.Catalog(), res, nil, Execution{ExitCode: &code})
	return code
}
