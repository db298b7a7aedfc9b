package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

func journalRecord(path string, status domain.ImportStatus, started time.Time) *domain.ImportRecord {
	return &domain.ImportRecord{
		ID:        path + started.String(),
		Path:      path,
		Status:    status,
		StartedAt: started,
	}
}

func TestJournalStore_Record_Invalid(t *testing.T) {
	store := NewJournalStore()

	assert.ErrorIs(t, store.Record(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Record(context.Background(), &domain.ImportRecord{}), domain.ErrInvalidInput)
}

func TestJournalStore_Last(t *testing.T) {
	ctx := context.Background()
	store := NewJournalStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, journalRecord("/a.xml", domain.ImportStatusImported, base.Add(time.Hour))))
	require.NoError(t, store.Record(ctx, journalRecord("/a.xml", domain.ImportStatusFailed, base)))
	require.NoError(t, store.Record(ctx, journalRecord("/b.xml", domain.ImportStatusImported, base.Add(2*time.Hour))))

	last, err := store.Last(ctx, "/a.xml")
	require.NoError(t, err)
	assert.Equal(t, domain.ImportStatusImported, last.Status)

	_, err = store.Last(ctx, "/missing.xml")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJournalStore_Last_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewJournalStore()
	require.NoError(t, store.Record(ctx, journalRecord("/a.xml", domain.ImportStatusImported, time.Now())))

	last, err := store.Last(ctx, "/a.xml")
	require.NoError(t, err)
	last.Status = domain.ImportStatusFailed

	again, err := store.Last(ctx, "/a.xml")
	require.NoError(t, err)
	assert.Equal(t, domain.ImportStatusImported, again.Status)
}

func TestJournalStore_List(t *testing.T) {
	ctx := context.Background()
	store := NewJournalStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, journalRecord("/1.xml", domain.ImportStatusImported, base)))
	require.NoError(t, store.Record(ctx, journalRecord("/2.csv", domain.ImportStatusUnsupported, base.Add(time.Minute))))
	require.NoError(t, store.Record(ctx, journalRecord("/3.xml", domain.ImportStatusImported, base.Add(2*time.Minute))))

	all, err := store.List(ctx, domain.JournalFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "/3.xml", all[0].Path)
	assert.Equal(t, "/1.xml", all[2].Path)

	imported, err := store.List(ctx, domain.JournalFilter{Status: domain.ImportStatusImported, Limit: 1})
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, "/3.xml", imported[0].Path)
}

func TestJournalStore_Prune(t *testing.T) {
	ctx := context.Background()
	store := NewJournalStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, journalRecord("/old.xml", domain.ImportStatusImported, base)))
	require.NoError(t, store.Record(ctx, journalRecord("/new.xml", domain.ImportStatusImported, base.Add(48*time.Hour))))

	n, err := store.Prune(ctx, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = store.Last(ctx, "/old.xml")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Last(ctx, "/new.xml")
	assert.NoError(t, err)
}
