package driven

import "github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"

// AdapterRegistry holds the registered adapters and orders them per extension.
// It is built once at start-up and read concurrently afterwards.
type AdapterRegistry interface {
	// Register adds an adapter.
	// Returns *domain.InvalidAdapterError or *domain.DuplicateNameError on rejection;
	// the registry is unchanged after a failed registration.
	Register(adapter Adapter) error

	// CandidatesFor returns the adapters declaring the file's extension,
	// ordered by priority descending then name ascending.
	// Returns an empty slice when no adapter declares the extension.
	CandidatesFor(fileName string) []Adapter

	// Get returns an adapter by name.
	Get(name string) (Adapter, error)

	// Info returns the metadata captured at registration.
	Info(name string) (domain.AdapterInfo, error)

	// List returns all adapter metadata in priority order.
	List() []domain.AdapterInfo

	// SupportedExtensions returns every declared extension, sorted.
	SupportedExtensions() []string

	// Len returns the number of registered adapters.
	Len() int
}
