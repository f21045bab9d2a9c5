package memory

import (
	"context"
	"sync"

	"github.com/aretw0/ali/pkg/domain"
)

// HistoryStore implements ports.HistoryStore in memory.
// Safe for concurrent use.
type HistoryStore struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
}

// NewHistoryStore creates a new in-memory history.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Append records entry.
func (s *HistoryStore) Append(_ context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, copyEntry(entry))
	return nil
}

// Recent returns up to limit entries, oldest first. A limit <= 0 returns everything.
func (s *HistoryStore) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if limit > 0 && len(s.entries) > limit {
		start = len(s.entries) - limit
	}
	out := make([]domain.HistoryEntry, 0, len(s.entries)-start)
	for _, e := range s.entries[start:] {
		out = append(out, copyEntry(e))
	}
	return out, nil
}

// copyEntry detaches the maps and slices so callers can't mutate stored entries.
func copyEntry(e domain.HistoryEntry) domain.HistoryEntry {
	e.Tokens = append([]string(nil), e.Tokens...)
	e.Fields = e.Fields.Clone()
	if e.Env != nil {
		env := make(map[string]string, len(e.Env))
		for k, v := range e.Env {
			env[k] = v
		}
		e.Env = env
	}
	if e.ExitCode != nil {
		code := *e.ExitCode
		e.ExitCode = &code
	}
	return e
}
