package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestImportStatus_IsValid(t *testing.T) {
	for _, s := range AllImportStatuses() {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, ImportStatus("bogus").IsValid())
	assert.False(t, ImportStatus("").IsValid())
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ImportStatus
	}{
		{"nil", nil, ImportStatusImported},
		{"cancelled", fmt.Errorf("dispatch: %w", context.Canceled), ImportStatusCancelled},
		{"deadline", context.DeadlineExceeded, ImportStatusCancelled},
		{"unsupported", &UnsupportedFileTypeError{FileName: "a.csv"}, ImportStatusUnsupported},
		{"no adapter", &NoValidAdapterError{FileName: "a.xml"}, ImportStatusNoAdapter},
		{"execution", &AdapterExecutionError{Adapter: "A", Err: errors.New("x")}, ImportStatusFailed},
		{"other", errors.New("disk"), ImportStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusForError(tt.err))
		})
	}
}

func TestImportRecord_Unchanged(t *testing.T) {
	mod := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := &ImportRecord{Status: ImportStatusImported, Size: 10, ModTime: mod}

	assert.True(t, rec.Unchanged(10, mod))
	assert.True(t, rec.Unchanged(10, mod.Add(300*time.Millisecond)))
	assert.False(t, rec.Unchanged(11, mod))
	assert.False(t, rec.Unchanged(10, mod.Add(time.Second)))

	failed := &ImportRecord{Status: ImportStatusFailed, Size: 10, ModTime: mod}
	assert.False(t, failed.Unchanged(10, mod))

	var none *ImportRecord
	assert.False(t, none.Unchanged(10, mod))
}

func TestBatchReport_Add(t *testing.T) {
	var r BatchReport
	r.Add(ImportRecord{Status: ImportStatusImported})
	r.Add(ImportRecord{Status: ImportStatusImported})
	r.Add(ImportRecord{Status: ImportStatusFailed})

	assert.Equal(t, 3, r.Total())
	assert.Equal(t, 2, r.Counts[ImportStatusImported])
	assert.Equal(t, 1, r.Counts[ImportStatusFailed])
	assert.Equal(t, 0, r.Counts[ImportStatusSkipped])
}
