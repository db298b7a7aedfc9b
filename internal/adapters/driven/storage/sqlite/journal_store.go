package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
)

// journalStore implements driven.ImportJournal.
type journalStore struct {
	store *Store
}

var _ driven.ImportJournal = (*journalStore)(nil)

const journalColumns = `id, path, file_name, extension, size, mod_time, adapter, status,
	records, findings, candidates, error, started_at, duration_ns`

// Record appends a journal entry. Re-recording an ID replaces the entry.
func (s *journalStore) Record(ctx context.Context, rec *domain.ImportRecord) error {
	if rec == nil || rec.Path == "" || rec.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO import_journal (`+journalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Path, rec.FileName, rec.Extension, rec.Size,
		unixOrNull(rec.ModTime), nullString(rec.Adapter), string(rec.Status),
		rec.Records, rec.Findings, rec.Candidates, nullString(rec.Error),
		rec.StartedAt.UnixNano(), int64(rec.Duration))
	if err != nil {
		return fmt.Errorf("recording import: %w", err)
	}
	return nil
}

// Last returns the most recent entry for a path.
func (s *journalStore) Last(ctx context.Context, path string) (*domain.ImportRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+journalColumns+`
		FROM import_journal
		WHERE path = ?
		ORDER BY started_at DESC
		LIMIT 1
	`, path)

	rec, err := scanImportRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns entries, most recent first.
func (s *journalStore) List(ctx context.Context, filter domain.JournalFilter) ([]domain.ImportRecord, error) {
	var (
		query strings.Builder
		args  []any
	)
	query.WriteString("SELECT " + journalColumns + " FROM import_journal")
	if filter.Status != "" {
		query.WriteString(" WHERE status = ?")
		args = append(args, string(filter.Status))
	}
	query.WriteString(" ORDER BY started_at DESC")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	records := []domain.ImportRecord{}
	for rows.Next() {
		rec, err := scanImportRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal: %w", err)
	}
	return records, nil
}

// Prune removes entries started before the cutoff.
func (s *journalStore) Prune(ctx context.Context, before time.Time) (int, error) {
	res, err := s.store.db.ExecContext(ctx,
		"DELETE FROM import_journal WHERE started_at < ?", before.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("pruning journal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning journal: %w", err)
	}
	return int(n), nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanImportRecord(row rowScanner) (*domain.ImportRecord, error) {
	var (
		rec              domain.ImportRecord
		modTime          sql.NullInt64
		adapter, errMsg  sql.NullString
		status           string
		startedAt, durNs int64
	)

	err := row.Scan(&rec.ID, &rec.Path, &rec.FileName, &rec.Extension, &rec.Size,
		&modTime, &adapter, &status, &rec.Records, &rec.Findings, &rec.Candidates,
		&errMsg, &startedAt, &durNs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning import record: %w", err)
	}

	if modTime.Valid {
		rec.ModTime = time.Unix(modTime.Int64, 0).UTC()
	}
	rec.Adapter = adapter.String
	rec.Status = domain.ImportStatus(status)
	rec.Error = errMsg.String
	rec.StartedAt = time.Unix(0, startedAt).UTC()
	rec.Duration = time.Duration(durNs)
	return &rec, nil
}

// unixOrNull stores whole seconds, matching the journal's change detection.
func unixOrNull(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Unix()
}
