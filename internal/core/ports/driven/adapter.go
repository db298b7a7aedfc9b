package driven

import (
	"context"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

// Adapter recognises and reads one variant of report file.
// Metadata methods are read once at registration.
type Adapter interface {
	// Name returns the unique adapter name.
	Name() string

	// Description returns plain text shown to users. HTML tags are rejected.
	Description() string

	// Priority returns the probe order (higher = probed earlier).
	// Base adapters use 10-110; custom adapters that must run first use 200 or higher.
	// Adapters with equal priority are ordered by name.
	Priority() int

	// DataSource returns the data source label of produced records.
	// Adapters whose files mix sources return domain.DataSourceUnknown and
	// set DataSource on every record.
	DataSource() string

	// FileExtensions returns the handled extensions. Must not be empty.
	// IsValid is never called for files with other extensions.
	FileExtensions() []string

	// IsValid reports whether this adapter should read the file.
	// It must not mutate shared state and should be cheap.
	// An error is treated as false by the dispatch engine.
	IsValid(ctx context.Context, fc *domain.FileReaderContext) (bool, error)

	// Read parses the file. It runs at most once per dispatch and only after
	// IsValid returned true. An error aborts the dispatch.
	Read(ctx context.Context, fc *domain.FileReaderContext) (*domain.AdapterReadResult, error)
}

// Versioned is implemented by adapters that report a version.
type Versioned interface {
	Version() string
}

// InfoOf captures the declarative metadata of an adapter.
func InfoOf(a Adapter) domain.AdapterInfo {
	exts := a.FileExtensions()
	normalised := make([]string, 0, len(exts))
	seen := make(map[string]bool, len(exts))
	for _, e := range exts {
		n := domain.NormaliseExtension(e)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		normalised = append(normalised, n)
	}

	info := domain.AdapterInfo{
		Name:           a.Name(),
		Description:    a.Description(),
		Priority:       a.Priority(),
		DataSource:     a.DataSource(),
		FileExtensions: normalised,
	}
	if v, ok := a.(Versioned); ok {
		info.Version = v.Version()
	}
	return info
}
