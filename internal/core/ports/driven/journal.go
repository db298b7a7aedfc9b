package driven

import (
	"context"
	"time"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

// ImportJournal records the outcome of every dispatch.
// It never stores the records an adapter produced.
type ImportJournal interface {
	// Record appends a journal entry.
	Record(ctx context.Context, rec *domain.ImportRecord) error

	// Last returns the most recent entry for a path.
	// Returns domain.ErrNotFound if the path was never imported.
	Last(ctx context.Context, path string) (*domain.ImportRecord, error)

	// List returns entries, most recent first.
	List(ctx context.Context, filter domain.JournalFilter) ([]domain.ImportRecord, error)

	// Prune removes entries started before the cutoff and returns how many were removed.
	Prune(ctx context.Context, before time.Time) (int, error)
}
