package driven

import (
	"context"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

// ResultProcessor enriches a read result after dispatch.
// ResultProcessors are chained in a pipeline (e.g., timestamp, artifact).
type ResultProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process modifies the result in place.
	Process(ctx context.Context, fc *domain.FileReaderContext, result *domain.AdapterReadResult) error
}

// ResultPipeline chains multiple ResultProcessors.
type ResultPipeline interface {
	// Process runs the result through all processors in order.
	Process(ctx context.Context, fc *domain.FileReaderContext, result *domain.AdapterReadResult) error
}
