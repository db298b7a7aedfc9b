// Package postprocessors provides read result processing implementations.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.ResultPipeline = (*Pipeline)(nil)

// Pipeline chains multiple ResultProcessors and runs them in order.
type Pipeline struct {
	processors []driven.ResultProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.ResultProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the result through all processors in order.
// Processing stops at the first error.
func (p *Pipeline) Process(ctx context.Context, fc *domain.FileReaderContext, result *domain.AdapterReadResult) error {
	if fc == nil || result == nil {
		return fmt.Errorf("pipeline: %w", domain.ErrInvalidInput)
	}

	for _, processor := range p.processors {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := processor.Process(ctx, fc, result); err != nil {
			return fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	return nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.ResultProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.processors))
	for i, processor := range p.processors {
		names[i] = processor.Name()
	}
	return names
}
