package driving

import (
	"context"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

// Dispatcher selects and runs exactly one adapter for a file.
type Dispatcher interface {
	// Dispatch filters candidates by extension, probes them in priority order and
	// reads the file with the first valid adapter.
	// Errors are *domain.UnsupportedFileTypeError, *domain.NoValidAdapterError,
	// *domain.AdapterExecutionError or a wrapped context error.
	Dispatch(ctx context.Context, fc *domain.FileReaderContext) (*domain.DispatchOutcome, error)
}

// AdapterCatalog exposes the registered adapters to users.
type AdapterCatalog interface {
	// List returns all adapters in priority order.
	List() []domain.AdapterInfo

	// Info returns one adapter's metadata.
	Info(name string) (domain.AdapterInfo, error)

	// Candidates returns the adapters that would be probed for a file name, in order.
	Candidates(fileName string) []domain.AdapterInfo

	// SupportedExtensions returns every declared extension.
	SupportedExtensions() []string
}

// Reader reads report files without journaling them.
type Reader interface {
	// ReadFile dispatches the file at path and post-processes the result.
	ReadFile(ctx context.Context, path string) (*domain.DispatchOutcome, error)
}
