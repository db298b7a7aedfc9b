package driving

import (
	"context"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

// Scheduler runs background tasks such as periodic scans of monitored folders.
type Scheduler interface {
	// Start begins running scheduled tasks.
	// Blocks until context is cancelled or an error occurs.
	Start(ctx context.Context) error

	// Stop gracefully stops all running tasks.
	Stop() error

	// History returns the most recent folder-scan results, newest first.
	History(ctx context.Context, limit int) ([]domain.TaskResult, error)
}
