package driving

import (
	"context"
	"time"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

// Importer imports single report files.
type Importer interface {
	// ImportFile dispatches the file at path and journals the outcome.
	// The returned record is always non-nil when the file could be opened;
	// the result is nil unless the status is imported.
	ImportFile(ctx context.Context, path string, opts domain.ImportOptions) (*domain.ImportRecord, *domain.AdapterReadResult, error)
}

// BatchImporter imports many files concurrently.
type BatchImporter interface {
	// Run imports the given files and directories.
	// Per-file failures are reported in the BatchReport, not returned as errors.
	Run(ctx context.Context, roots []string, opts domain.BatchOptions) (*domain.BatchReport, error)
}

// Watcher imports files as they appear in a directory.
type Watcher interface {
	// Watch blocks until ctx is cancelled.
	Watch(ctx context.Context, dir string, onRecord func(domain.ImportRecord)) error
}

// JournalService exposes import history.
type JournalService interface {
	// List returns recent journal entries.
	List(ctx context.Context, filter domain.JournalFilter) ([]domain.ImportRecord, error)

	// Last returns the most recent entry for a file.
	Last(ctx context.Context, path string) (*domain.ImportRecord, error)

	// Prune removes entries older than the given age.
	Prune(ctx context.Context, olderThan time.Duration) (int, error)
}
