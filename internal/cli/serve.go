package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/ali"
	httpAdapter "github.com/aretw0/ali/internal/adapters/http"
	"github.com/aretw0/ali/pkg/adapters/mcp"
	"github.com/aretw0/ali/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions contains the configuration for the HTTP server.
type ServeOptions struct {
	Options
	Addr  string
	Watch bool
}

// Serve exposes command resolution over HTTP until SIGINT or SIGTERM.
func Serve(opts ServeOptions, out io.Writer) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	logger := createLogger(opts.Debug)
	metrics := observability.NewMetrics()
	it, err := newInterpreter(sigCtx, opts.Options, logger, ali.WithObserver(metrics))
	if err != nil {
		return err
	}

	if opts.Watch {
		if events, err := it.Watch(sigCtx); err == nil {
			go WatchReload(sigCtx, events, it.Reload, func(name string, err error) {
				logger.Info("plugins reloaded", "ruleset", name, "error", err)
			})
		} else {
			logger.Warn("hot reload unavailable", "error", err)
		}
	}

	srv := &http.Server{
		Addr: opts.Addr,
		Handler: httpAdapter.NewHandler(it,
			httpAdapter.WithVersion(strings.TrimSpace(ali.Version)),
			httpAdapter.WithMetrics(metrics.Handler()),
			httpAdapter.WithLogger(logger),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(out, "Serving ali on %s (%d verbs)", srv.Addr, len(it.Catalog().Verbs()))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-sigCtx.Done():
		reportSignal(out, sigCtx)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			return srv.Close()
		}
		printSystemMessage(out, "Server stopped gracefully.")
		return nil
	}
}

// ServeMCP exposes command resolution as MCP tools on stdin and stdout.
// Logs go to stderr so they never corrupt the JSON-RPC stream.
func ServeMCP(ctx context.Context, opts Options) error {
	logger := createLogger(opts.Debug)
	it, err := newInterpreter(ctx, opts, logger)
	if err != nil {
		return err
	}
	logger.Info("starting MCP server", "verbs", len(it.Catalog().Verbs()))
	return mcp.NewServer(it, strings.TrimSpace(ali.Version)).ServeStdio()
}
