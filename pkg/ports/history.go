package ports

import (
	"context"
	"time"

	"github.com/aretw0/ali/pkg/domain"
)

// HistoryStore persists interpreted commands for later analysis.
type HistoryStore interface {
	// Append records one entry.
	Append(ctx context.Context, entry domain.HistoryEntry) error

	// Recent returns up to limit entries, oldest first.
	// A limit of zero or less returns everything.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
}

// DispatchObserver receives the outcome of every dispatched command.
type DispatchObserver interface {
	ObserveDispatch(verb, outcome string, elapsed time.Duration)
}
