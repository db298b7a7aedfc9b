package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
)

// Ensure JournalStore implements the interface.
var _ driven.ImportJournal = (*JournalStore)(nil)

// JournalStore is an in-memory implementation of driven.ImportJournal.
type JournalStore struct {
	mu      sync.RWMutex
	records []domain.ImportRecord
}

// NewJournalStore creates a new in-memory journal.
func NewJournalStore() *JournalStore {
	return &JournalStore{}
}

// Record appends a journal entry.
func (s *JournalStore) Record(_ context.Context, rec *domain.ImportRecord) error {
	if rec == nil || rec.Path == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *rec)
	return nil
}

// Last returns the most recent entry for a path.
func (s *JournalStore) Last(_ context.Context, path string) (*domain.ImportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var last *domain.ImportRecord
	for i := range s.records {
		rec := &s.records[i]
		if rec.Path != path {
			continue
		}
		if last == nil || !rec.StartedAt.Before(last.StartedAt) {
			last = rec
		}
	}
	if last == nil {
		return nil, domain.ErrNotFound
	}
	out := *last
	return &out, nil
}

// List returns entries, most recent first.
func (s *JournalStore) List(_ context.Context, filter domain.JournalFilter) ([]domain.ImportRecord, error) {
	s.mu.RLock()
	out := make([]domain.ImportRecord, 0, len(s.records))
	for _, rec := range s.records {
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		out = append(out, rec)
	}
	s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b domain.ImportRecord) int {
		return cmp.Compare(b.StartedAt.UnixNano(), a.StartedAt.UnixNano())
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Prune removes entries started before the cutoff.
func (s *JournalStore) Prune(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.records)
	s.records = slices.DeleteFunc(s.records, func(rec domain.ImportRecord) bool {
		return rec.StartedAt.Before(before)
	})
	return n - len(s.records), nil
}
