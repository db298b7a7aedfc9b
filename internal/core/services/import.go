package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driving"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.Importer = (*ImportService)(nil)

// ImportService imports single report files.
// It opens the file, skips it when the journal shows it unchanged, dispatches it,
// post-processes the result and journals the outcome.
type ImportService struct {
	dispatcher driving.Dispatcher
	source     driven.FileSource
	journal    driven.ImportJournal
	pipeline   driven.ResultPipeline
	now        func() time.Time
}

// NewImportService creates an import service.
// journal and pipeline may be nil.
func NewImportService(
	dispatcher driving.Dispatcher,
	source driven.FileSource,
	journal driven.ImportJournal,
	pipeline driven.ResultPipeline,
) *ImportService {
	return &ImportService{
		dispatcher: dispatcher,
		source:     source,
		journal:    journal,
		pipeline:   pipeline,
		now:        time.Now,
	}
}

// ImportFile dispatches the file at path and journals the outcome.
func (s *ImportService) ImportFile(
	ctx context.Context,
	path string,
	opts domain.ImportOptions,
) (*domain.ImportRecord, *domain.AdapterReadResult, error) {
	if path == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	fc, err := s.source.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	started := s.now()
	rec := &domain.ImportRecord{
		ID:        uuid.New().String(),
		Path:      fc.Path(),
		FileName:  fc.Name(),
		Extension: fc.Extension(),
		Size:      fc.Size(),
		ModTime:   fc.ModTime().Truncate(time.Second),
		StartedAt: started,
	}

	if !opts.Force {
		if last := s.lastImport(ctx, fc.Path()); last.Unchanged(fc.Size(), fc.ModTime()) {
			rec.Status = domain.ImportStatusSkipped
			rec.Adapter = last.Adapter
			rec.Records = last.Records
			rec.Findings = last.Findings
			logger.Debug("import %s: unchanged since %s, skipping", fc.Path(), last.StartedAt.Format(time.RFC3339))
			return rec, nil, nil
		}
	}

	outcome, err := s.dispatcher.Dispatch(ctx, fc)
	if err != nil {
		s.fail(ctx, rec, err)
		return rec, nil, err
	}

	rec.Adapter = outcome.Adapter
	rec.Candidates = len(outcome.Candidates)

	if s.pipeline != nil {
		if err := s.pipeline.Process(ctx, fc, outcome.Result); err != nil {
			err = fmt.Errorf("post-process %s: %w", fc.Name(), err)
			s.fail(ctx, rec, err)
			return rec, nil, err
		}
	}

	rec.Status = domain.ImportStatusImported
	rec.Records = len(outcome.Result.Data)
	rec.Findings = len(outcome.Result.Findings)
	rec.Duration = s.now().Sub(started)
	s.record(ctx, rec)

	logger.Info("imported %s with %s: %d record(s), %d finding(s)",
		fc.Name(), rec.Adapter, rec.Records, rec.Findings)
	return rec, outcome.Result, nil
}

func (s *ImportService) lastImport(ctx context.Context, path string) *domain.ImportRecord {
	if s.journal == nil {
		return nil
	}
	last, err := s.journal.Last(ctx, path)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("journal lookup for %s: %v", path, err)
		}
		return nil
	}
	return last
}

func (s *ImportService) fail(ctx context.Context, rec *domain.ImportRecord, err error) {
	rec.Status = domain.StatusForError(err)
	rec.Error = err.Error()
	rec.Duration = s.now().Sub(rec.StartedAt)

	var noValid *domain.NoValidAdapterError
	var execErr *domain.AdapterExecutionError
	switch {
	case errors.As(err, &noValid):
		rec.Candidates = len(noValid.Candidates)
	case errors.As(err, &execErr):
		rec.Adapter = execErr.Adapter
		rec.Candidates = execErr.Candidates
	}

	s.record(ctx, rec)
}

// record journals an outcome. Journal failures are logged, not returned.
func (s *ImportService) record(ctx context.Context, rec *domain.ImportRecord) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(context.WithoutCancel(ctx), rec); err != nil {
		logger.Warn("journal %s: %v", rec.Path, err)
	}
}
