// Package artifact names records that do not identify their artifact.
package artifact

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

// Name is the processor name used in configuration.
const Name = "artifact"

// Processor sets an empty ArtifactPath to the file name without its extension.
type Processor struct{}

// New creates a new artifact processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process fills empty artifact paths in place.
func (p *Processor) Process(_ context.Context, fc *domain.FileReaderContext, result *domain.AdapterReadResult) error {
	fallback := strings.TrimSuffix(fc.Name(), filepath.Ext(fc.Name()))
	if fallback == "" {
		fallback = fc.Name()
	}

	fill := func(path *string) {
		if *path == "" {
			*path = fallback
		}
	}

	for i := range result.Data {
		fill(&result.Data[i].ArtifactPath)
	}
	for i := range result.Findings {
		f := &result.Findings[i]
		fill(&f.ArtifactPath)
		for j := range f.Data {
			fill(&f.Data[j].ArtifactPath)
		}
	}
	return nil
}
