package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/ali/pkg/domain"
)

// DefaultHistoryPath is where the CLI keeps its command log when no path is given.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ali", "commands.jsonl")
	}
	return filepath.Join(home, ".local", "share", "ali", "logs", "commands.jsonl")
}

// HistoryStore implements ports.HistoryStore as an append-only JSON Lines file.
type HistoryStore struct {
	Path string
	mu   sync.Mutex
}

// NewHistoryStore creates a store writing to path.
// If path is empty, it defaults to DefaultHistoryPath.
func NewHistoryStore(path string) *HistoryStore {
	if path == "" {
		path = DefaultHistoryPath()
	}
	return &HistoryStore{Path: path}
}

// Append writes entry as one JSON line.
func (s *HistoryStore) Append(ctx context.Context, entry domain.HistoryEntry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to ensure history directory: %w", err)
	}
	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write history entry: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close history file: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, oldest first. A limit <= 0 returns everything.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	entries := []domain.HistoryEntry{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var entry domain.HistoryEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("failed to parse history line %d: %w", lineNo, err)
		}
		entries = append(entries, entry)
		if limit > 0 && len(entries) > limit {
			entries = entries[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	return entries, nil
}
