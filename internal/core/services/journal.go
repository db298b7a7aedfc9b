package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driving"
)

// Ensure JournalService implements the interface.
var _ driving.JournalService = (*JournalService)(nil)

// JournalService exposes the import history.
type JournalService struct {
	journal driven.ImportJournal
	now     func() time.Time
}

// NewJournalService creates a journal service.
func NewJournalService(journal driven.ImportJournal) *JournalService {
	return &JournalService{journal: journal, now: time.Now}
}

// List returns journal entries, most recent first.
func (s *JournalService) List(ctx context.Context, filter domain.JournalFilter) ([]domain.ImportRecord, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("unknown status %q: %w", filter.Status, domain.ErrInvalidInput)
	}
	if filter.Limit < 0 {
		return nil, fmt.Errorf("negative limit: %w", domain.ErrInvalidInput)
	}
	return s.journal.List(ctx, filter)
}

// Last returns the most recent entry for path. Relative paths are made absolute
// to match how imports record them.
func (s *JournalService) Last(ctx context.Context, path string) (*domain.ImportRecord, error) {
	if path == "" {
		return nil, domain.ErrInvalidInput
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return s.journal.Last(ctx, path)
}

// Prune removes entries that started more than olderThan ago.
func (s *JournalService) Prune(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan <= 0 {
		return 0, fmt.Errorf("prune age must be positive: %w", domain.ErrInvalidInput)
	}
	return s.journal.Prune(ctx, s.now().Add(-olderThan))
}
