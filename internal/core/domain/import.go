package domain

import (
	"context"
	"errors"
	"time"
)

// ImportStatus is the outcome of importing one file.
type ImportStatus string

// Import statuses.
const (
	ImportStatusImported    ImportStatus = "imported"
	ImportStatusSkipped     ImportStatus = "skipped"
	ImportStatusUnsupported ImportStatus = "unsupported"
	ImportStatusNoAdapter   ImportStatus = "no_adapter"
	ImportStatusFailed      ImportStatus = "failed"
	ImportStatusCancelled   ImportStatus = "cancelled"
)

// IsValid returns true if the status is recognised.
func (s ImportStatus) IsValid() bool {
	switch s {
	case ImportStatusImported, ImportStatusSkipped, ImportStatusUnsupported,
		ImportStatusNoAdapter, ImportStatusFailed, ImportStatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ImportStatus) String() string {
	return string(s)
}

// AllImportStatuses returns every status in display order.
func AllImportStatuses() []ImportStatus {
	return []ImportStatus{
		ImportStatusImported,
		ImportStatusSkipped,
		ImportStatusUnsupported,
		ImportStatusNoAdapter,
		ImportStatusFailed,
		ImportStatusCancelled,
	}
}

// StatusForError maps a dispatch error to an import status.
func StatusForError(err error) ImportStatus {
	switch {
	case err == nil:
		return ImportStatusImported
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ImportStatusCancelled
	case errors.Is(err, ErrUnsupportedFileType):
		return ImportStatusUnsupported
	case errors.Is(err, ErrNoValidAdapter):
		return ImportStatusNoAdapter
	default:
		return ImportStatusFailed
	}
}

// ImportRecord is the journal entry for one imported (or skipped) file.
// It records the dispatch outcome, never the records themselves.
type ImportRecord struct {
	ID         string
	Path       string
	FileName   string
	Extension  string
	Size       int64
	ModTime    time.Time
	Adapter    string
	Status     ImportStatus
	Records    int
	Findings   int
	Candidates int
	Error      string
	StartedAt  time.Time
	Duration   time.Duration
}

// Unchanged reports whether the record was a successful import of a file
// with the given size and modification time.
func (r *ImportRecord) Unchanged(size int64, modTime time.Time) bool {
	if r == nil || r.Status != ImportStatusImported {
		return false
	}
	return r.Size == size && r.ModTime.Equal(modTime.Truncate(time.Second))
}

// ImportOptions controls a single-file import.
type ImportOptions struct {
	// Force re-imports files the journal marks as unchanged.
	Force bool
}

// BatchOptions controls a batch import.
type BatchOptions struct {
	ImportOptions

	// Workers overrides the configured worker count when > 0.
	Workers int

	// Progress is called after each file completes. It may be called concurrently.
	Progress func(ImportRecord)
}

// BatchReport summarises a batch import.
type BatchReport struct {
	Records   []ImportRecord
	Counts    map[ImportStatus]int
	StartedAt time.Time
	Duration  time.Duration
}

// Add appends a record and updates the counts.
func (r *BatchReport) Add(rec ImportRecord) {
	if r.Counts == nil {
		r.Counts = make(map[ImportStatus]int)
	}
	r.Records = append(r.Records, rec)
	r.Counts[rec.Status]++
}

// Total returns the number of files processed.
func (r *BatchReport) Total() int {
	return len(r.Records)
}

// FileEventType describes a change to a watched file.
type FileEventType int

// File event types.
const (
	FileCreated FileEventType = iota
	FileUpdated
	FileDeleted
)

// FileEvent is a change notification from a watched directory.
type FileEvent struct {
	Type FileEventType
	Path string
}

// JournalFilter narrows a journal listing.
type JournalFilter struct {
	// Status limits results to one status when non-empty.
	Status ImportStatus

	// Limit caps the number of records. 0 means no limit.
	Limit int
}
