package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/ali/internal/logging"
	"github.com/aretw0/ali/internal/runtime"
	"github.com/aretw0/ali/pkg/domain"
	"github.com/aretw0/ali/pkg/ports"
)

// Recorder turns interpreted commands into history entries.
// A nil Store makes every call a no-op.
type Recorder struct {
	Store     ports.HistoryStore
	SessionID string
	Caller    string
	Cwd       string
	LookupEnv func(string) (string, bool)
	Logger    *slog.Logger
	Now       func() time.Time
}

// NewRecorder creates a recorder with a fresh session id.
func NewRecorder(store ports.HistoryStore, caller string, logger *slog.Logger) *Recorder {
	if caller == "" {
		caller = "cli"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	cwd, _ := os.Getwd()
	return &Recorder{
		Store:     store,
		SessionID: domain.NewSessionID(time.Now()),
		Caller:    caller,
		Cwd:       cwd,
		LookupEnv: os.LookupEnv,
		Logger:    logger,
		Now:       time.Now,
	}
}

// Execution describes what happened to a resolved command.
type Execution struct {
	DryRun   bool
	ExitCode *int
}

// Record appends one entry. Store failures are logged and otherwise ignored.
func (r *Recorder) Record(ctx context.Context, catalog *runtime.Catalog, res *domain.Resolution, err error, exec Execution) {
	if r == nil || r.Store == nil || res == nil {
		return
	}
	entry := r.entry(catalog, res, err, exec)
	if aerr := r.Store.Append(ctx, entry); aerr != nil {
		r.Logger.Warn("failed to record history", "error", aerr)
	}
}

func (r *Recorder) entry(catalog *runtime.Catalog, res *domain.Resolution, err error, exec Execution) domain.HistoryEntry {
	entry := domain.HistoryEntry{
		Timestamp: r.Now(),
		SessionID: r.SessionID,
		Input:     res.Input,
		Verb:      res.Verb,
		RuleSet:   res.RuleSet,
		Fields:    res.Fields,
		Result:    res.Command,
		Outcome:   domain.OutcomeOf(err),
		Success:   err == nil && (exec.ExitCode == nil || *exec.ExitCode == 0),
		DryRun:    exec.DryRun,
		ExitCode:  exec.ExitCode,
		Caller:    r.Caller,
		Cwd:       r.Cwd,
	}
	if tokens, terr := runtime.Tokenize(res.Input); terr == nil {
		entry.Tokens = domain.TokenValues(tokens)
	}
	if err != nil {
		entry.Result = domain.FormatResult(err)
		entry.Error = err.Error()
	}
	entry.Env = r.captureEnv(catalog, res.RuleSet)
	return entry
}

// captureEnv reads the variables the owning rule set asked to record.
func (r *Recorder) captureEnv(catalog *runtime.Catalog, ruleSet string) map[string]string {
	if catalog == nil || ruleSet == "" || r.LookupEnv == nil {
		return nil
	}
	var env map[string]string
	for _, rs := range catalog.RuleSets() {
		if rs.Name != ruleSet {
			continue
		}
		for _, key := range rs.CaptureEnv {
			if v, ok := r.LookupEnv(key); ok {
				if env == nil {
					env = make(map[string]string)
				}
				env[key] = v
			}
		}
	}
	return env
}
