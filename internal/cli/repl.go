package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/ali"
	"github.com/aretw0/ali/internal/presentation/tui"
	"github.com/aretw0/ali/pkg/adapters/process"
	"github.com/aretw0/ali/pkg/domain"
	"github.com/aretw0/ali/pkg/ports"
)

// REPLOptions contains the configuration for the interactive shell.
type REPLOptions struct {
	Options
	// Watch reloads the plugins whenever their files change.
	Watch bool
	// Execute runs each resolved command instead of printing it.
	Execute  bool
	Executor ports.CommandExecutor
}

// RunREPL reads commands from in until EOF, "exit" or an interrupt signal.
func RunREPL(opts REPLOptions, in io.Reader, out io.Writer) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()
	err := runREPL(sigCtx, opts, in, out)
	reportSignal(out, sigCtx)
	return err
}

func runREPL(ctx context.Context, opts REPLOptions, in io.Reader, out io.Writer) error {
	logger := createLogger(opts.Debug)
	it, err := newInterpreter(ctx, opts.Options, logger)
	if err != nil {
		return err
	}

	f, isFile := in.(*os.File)
	interactive := isFile && tui.IsInteractive(f)
	style := styler(out)
	if interactive {
		style.PrintBanner(out, strings.TrimSpace(ali.Version))
	}

	if opts.Watch {
		events, err := it.Watch(ctx)
		if err != nil {
			logger.Warn("hot reload unavailable", "error", err)
		} else {
			printSystemMessage(out, "Watching plugins for changes.")
			go WatchReload(ctx, events, it.Reload, func(name string, err error) {
				if err != nil {
					logger.Warn("reload finished with errors", "ruleset", name, "error", err)
				}
				logger.Info("plugins reloaded", "ruleset", name, "verbs", len(it.Catalog().Verbs()))
			})
		}
	}

	store, closeStore, err := OpenHistory(opts.History)
	if err != nil {
		logger.Warn("history disabled", "error", err)
	}
	defer closeStore()
	recorder := NewRecorder(store, opts.Caller, logger)

	executor := opts.Executor
	if executor == nil {
		executor = process.NewRunner()
	}

	runner := ali.NewRunner(in, out)
	runner.Headless = !interactive
	runner.Handler = func(ctx context.Context, res *domain.Resolution, err error) error {
		if err != nil {
			recorder.Record(ctx, it.Catalog(), res, err, Execution{})
			fmt.Fprintln(out, style.Error(domain.FormatResult(err)))
			return nil
		}
		if !opts.Execute {
			recorder.Record(ctx, it.Catalog(), res, nil, Execution{DryRun: true})
			fmt.Fprintln(out, style.Command(res.Command))
			return nil
		}

		code, xerr := executor.Execute(ctx, res.Command, out, out)
		if xerr != nil {
			fmt.Fprintln(out, style.Error(fmt.Sprintf("Failed to execute: %v", xerr)))
			code = ExitFailure
		}
		recorder.Record(ctx, it.Catalog(), res, nil, Execution{ExitCode: &code})
		if code != ExitOK {
			fmt.Fprintln(out, style.Faint(fmt.Sprintf("exit status %d", code)))
		}
		return nil
	}

	// The scanner blocks on input, so the loop runs apart from signal handling.
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx, it) }()

	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if isInterrupted(err) {
		return nil
	}
	return err
}
