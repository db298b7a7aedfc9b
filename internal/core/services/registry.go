package services

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driving"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/logger"
)

// Ensure AdapterRegistry implements the interfaces.
var (
	_ driven.AdapterRegistry = (*AdapterRegistry)(nil)
	_ driving.AdapterCatalog = (*AdapterRegistry)(nil)
)

type registeredAdapter struct {
	adapter driven.Adapter
	info    domain.AdapterInfo
}

// AdapterRegistry holds adapters indexed by name and by extension.
// Each extension bucket is kept in probe order.
type AdapterRegistry struct {
	mu     sync.RWMutex
	byName map[string]*registeredAdapter
	byExt  map[string][]*registeredAdapter
}

// NewAdapterRegistry creates an empty registry.
func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{
		byName: make(map[string]*registeredAdapter),
		byExt:  make(map[string][]*registeredAdapter),
	}
}

// Register adds an adapter after checking its metadata.
func (r *AdapterRegistry) Register(adapter driven.Adapter) error {
	if adapter == nil {
		return &domain.InvalidAdapterError{Reason: "adapter is nil"}
	}

	info := driven.InfoOf(adapter)
	if strings.TrimSpace(info.Name) == "" {
		return &domain.InvalidAdapterError{Reason: "name is empty"}
	}
	if len(info.FileExtensions) == 0 {
		return &domain.InvalidAdapterError{Name: info.Name, Reason: "no file extensions declared"}
	}
	if err := domain.ValidateDescription(info.Description); err != nil {
		return &domain.InvalidAdapterError{Name: info.Name, Reason: "description contains HTML markup"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[info.Name]; exists {
		return &domain.DuplicateNameError{Name: info.Name}
	}

	entry := &registeredAdapter{adapter: adapter, info: info}
	r.byName[info.Name] = entry
	for _, ext := range info.FileExtensions {
		bucket := append(r.byExt[ext], entry)
		slices.SortStableFunc(bucket, compareEntries)
		r.byExt[ext] = bucket
	}

	logger.Debug("registered adapter %q (priority %d, extensions %v)",
		info.Name, info.Priority, info.FileExtensions)
	return nil
}

// MustRegister is like Register but panics on error.
// It is intended for built-in adapters wired at start-up.
func (r *AdapterRegistry) MustRegister(adapter driven.Adapter) {
	if err := r.Register(adapter); err != nil {
		panic(err)
	}
}

// RegisterAll registers adapters in order and stops at the first error.
func (r *AdapterRegistry) RegisterAll(adapters ...driven.Adapter) error {
	for _, a := range adapters {
		if err := r.Register(a); err != nil {
			return err
		}
	}
	return nil
}

// compareEntries orders by priority descending, then name ascending.
func compareEntries(a, b *registeredAdapter) int {
	if c := cmp.Compare(b.info.Priority, a.info.Priority); c != 0 {
		return c
	}
	return cmp.Compare(a.info.Name, b.info.Name)
}

// CandidatesFor returns the adapters that declare the file's extension, in probe order.
func (r *AdapterRegistry) CandidatesFor(fileName string) []driven.Adapter {
	entries := r.bucket(fileName)
	out := make([]driven.Adapter, len(entries))
	for i, e := range entries {
		out[i] = e.adapter
	}
	return out
}

// Candidates returns the metadata of the adapters CandidatesFor would return.
func (r *AdapterRegistry) Candidates(fileName string) []domain.AdapterInfo {
	entries := r.bucket(fileName)
	out := make([]domain.AdapterInfo, len(entries))
	for i, e := range entries {
		out[i] = e.info
	}
	return out
}

func (r *AdapterRegistry) bucket(fileName string) []*registeredAdapter {
	ext := domain.ExtensionOf(fileName)
	if ext == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.byExt[ext])
}

// Get returns an adapter by name.
func (r *AdapterRegistry) Get(name string) (driven.Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byName[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return entry.adapter, nil
}

// Info returns the metadata captured when the adapter was registered.
func (r *AdapterRegistry) Info(name string) (domain.AdapterInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byName[name]
	if !ok {
		return domain.AdapterInfo{}, domain.ErrNotFound
	}
	return entry.info, nil
}

// List returns all adapters in probe order.
func (r *AdapterRegistry) List() []domain.AdapterInfo {
	r.mu.RLock()
	entries := make([]*registeredAdapter, 0, len(r.byName))
	for _, e := range r.byName {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	slices.SortFunc(entries, compareEntries)
	out := make([]domain.AdapterInfo, len(entries))
	for i, e := range entries {
		out[i] = e.info
	}
	return out
}

// SupportedExtensions returns every extension with at least one adapter, sorted.
func (r *AdapterRegistry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Len returns the number of registered adapters.
func (r *AdapterRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}
