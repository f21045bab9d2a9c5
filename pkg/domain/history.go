package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HistoryEntry records one interpreted command.
type HistoryEntry struct {
	Timestamp time.Time         `json:"timestamp"`
	SessionID string            `json:"session_id"`
	Input     string            `json:"command_raw"`
	Tokens    []string          `json:"tokens,omitempty"`
	Verb      string            `json:"verb,omitempty"`
	RuleSet   string            `json:"plugin,omitempty"`
	Fields    FieldState        `json:"state,omitempty"`
	Result    string            `json:"result,omitempty"`
	Outcome   string            `json:"outcome"`
	Error     string            `json:"error,omitempty"`
	Success   bool              `json:"success"`
	DryRun    bool              `json:"dry_run,omitempty"`
	ExitCode  *int              `json:"exit_code,omitempty"`
	Caller    string            `json:"caller,omitempty"`
	Cwd       string            `json:"cwd,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// NewSessionID returns a sortable identifier: a local timestamp plus a short random suffix.
func NewSessionID(now time.Time) string {
	return fmt.Sprintf("%s_%s", now.Format("20060102_150405"), uuid.NewString()[:8])
}
