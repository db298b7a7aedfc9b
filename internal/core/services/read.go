package services

import (
	"context"
	"fmt"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driving"
)

// Ensure ReadService implements the interface.
var _ driving.Reader = (*ReadService)(nil)

// ReadService reads single report files on demand.
// Unlike ImportService it never consults or writes the journal.
type ReadService struct {
	dispatcher driving.Dispatcher
	source     driven.FileSource
	pipeline   driven.ResultPipeline
}

// NewReadService creates a read service. pipeline may be nil.
func NewReadService(
	dispatcher driving.Dispatcher,
	source driven.FileSource,
	pipeline driven.ResultPipeline,
) *ReadService {
	return &ReadService{
		dispatcher: dispatcher,
		source:     source,
		pipeline:   pipeline,
	}
}

// ReadFile dispatches the file at path and post-processes the result.
func (s *ReadService) ReadFile(ctx context.Context, path string) (*domain.DispatchOutcome, error) {
	if path == "" {
		return nil, domain.ErrInvalidInput
	}

	fc, err := s.source.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	outcome, err := s.dispatcher.Dispatch(ctx, fc)
	if err != nil {
		return nil, err
	}

	if s.pipeline != nil {
		if err := s.pipeline.Process(ctx, fc, outcome.Result); err != nil {
			return nil, fmt.Errorf("post-process %s: %w", fc.Name(), err)
		}
	}
	return outcome, nil
}
