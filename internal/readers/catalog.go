package readers

import (
	"fmt"
	"slices"
	"sort"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
)

// BuilderFunc creates an Adapter from generic config.
// Config is a map of adapter-specific settings derived from user config.
type BuilderFunc func(cfg map[string]any) (driven.Adapter, error)

// Catalog maps adapter names to their builders.
// It allows the set of registered adapters to be chosen from configuration.
type Catalog struct {
	builders map[string]BuilderFunc
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds an adapter builder to the catalog.
// Name should match the adapter's Name() return value.
func (c *Catalog) Register(name string, builder BuilderFunc) {
	c.builders[name] = builder
}

// Build creates an adapter by name with the given config.
// Returns an error wrapping domain.ErrNotFound if the name is not registered.
func (c *Catalog) Build(name string, cfg map[string]any) (driven.Adapter, error) {
	builder, ok := c.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown adapter %q: %w", name, domain.ErrNotFound)
	}
	return builder(cfg)
}

// Has returns true if an adapter with the given name is registered.
func (c *Catalog) Has(name string) bool {
	_, ok := c.builders[name]
	return ok
}

// Names returns all registered adapter names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.builders))
	for name := range c.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildEnabled builds every catalogued adapter that settings does not disable.
// Disabled names that match no adapter are rejected so typos surface early.
func (c *Catalog) BuildEnabled(settings domain.AppSettings) ([]driven.Adapter, error) {
	for _, name := range settings.Adapters.Disabled {
		if !c.Has(name) {
			return nil, fmt.Errorf("disabled adapter %q is not known (have %v): %w",
				name, c.Names(), domain.ErrInvalidInput)
		}
	}

	var adapters []driven.Adapter
	for _, name := range c.Names() {
		if slices.Contains(settings.Adapters.Disabled, name) {
			continue
		}
		adapter, err := c.Build(name, ConfigFor(name, settings))
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", name, err)
		}
		adapters = append(adapters, adapter)
	}
	return adapters, nil
}
