package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driving"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/logger"
)

// Ensure BatchService implements the interface.
var _ driving.BatchImporter = (*BatchService)(nil)

// BatchService imports files and directory trees with a pool of workers.
// Each worker dispatches independently; the registry and adapters are shared.
type BatchService struct {
	importer driving.Importer
	source   driven.FileSource
	catalog  driving.AdapterCatalog
	workers  int
	limiter  *rate.Limiter
}

// BatchOption configures a BatchService.
type BatchOption func(*BatchService)

// WithWorkers sets the default worker count.
func WithWorkers(n int) BatchOption {
	return func(s *BatchService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithRateLimit caps file starts per second across all workers. Zero disables it.
func WithRateLimit(perSecond float64) BatchOption {
	return func(s *BatchService) {
		if perSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			s.limiter = nil
		}
	}
}

// NewBatchService creates a batch importer.
// The catalog's supported extensions pre-filter directory walks.
func NewBatchService(
	importer driving.Importer,
	source driven.FileSource,
	catalog driving.AdapterCatalog,
	opts ...BatchOption,
) *BatchService {
	s := &BatchService{
		importer: importer,
		source:   source,
		catalog:  catalog,
		workers:  domain.DefaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run imports every file in roots. Files are taken as given; directories are
// walked for files with a supported extension.
//
// Per-file failures are reported in the BatchReport. The returned error joins
// root-level failures (missing paths, walk errors) and cancellation; the report
// is valid in every case.
func (s *BatchService) Run(ctx context.Context, roots []string, opts domain.BatchOptions) (*domain.BatchReport, error) {
	report := &domain.BatchReport{
		Counts:    make(map[domain.ImportStatus]int),
		StartedAt: time.Now(),
	}

	workers := s.workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}

	files := make(chan string)
	records := make(chan domain.ImportRecord)

	var rootErrs []error
	go func() {
		defer close(files)
		rootErrs = s.feed(ctx, roots, files)
	}()

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range files {
				records <- s.importOne(ctx, path, opts.ImportOptions)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(records)
	}()

	for rec := range records {
		if opts.Progress != nil {
			opts.Progress(rec)
		}
		report.Add(rec)
	}

	slices.SortStableFunc(report.Records, func(a, b domain.ImportRecord) int {
		return cmp.Compare(a.Path, b.Path)
	})
	report.Duration = time.Since(report.StartedAt)

	logger.Debug("batch: %d file(s) in %s with %d worker(s)", report.Total(), report.Duration, workers)

	errs := rootErrs
	if err := ctx.Err(); err != nil {
		errs = append(errs, fmt.Errorf("batch cancelled: %w", err))
	}
	return report, errors.Join(errs...)
}

// feed sends each file once, walking directories. It returns root-level errors.
func (s *BatchService) feed(ctx context.Context, roots []string, files chan<- string) []error {
	var errs []error
	seen := make(map[string]bool)

	send := func(path string) bool {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if seen[path] {
			return true
		}
		seen[path] = true
		select {
		case <-ctx.Done():
			return false
		case files <- path:
			return true
		}
	}

	exts := s.catalog.SupportedExtensions()
	for _, root := range roots {
		if ctx.Err() != nil {
			return errs
		}

		isDir, err := s.source.IsDir(root)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", root, err))
			continue
		}
		if !isDir {
			if !send(root) {
				return errs
			}
			continue
		}

		paths, walkErrs := s.source.Walk(ctx, root, exts)
		for path := range paths {
			if !send(path) {
				// Drain so the walker can exit.
				for range paths {
				}
				break
			}
		}
		if err := <-walkErrs; err != nil && !errors.Is(err, context.Canceled) {
			errs = append(errs, fmt.Errorf("walk %s: %w", root, err))
		}
	}
	return errs
}

func (s *BatchService) importOne(ctx context.Context, path string, opts domain.ImportOptions) domain.ImportRecord {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return failedRecord(path, fmt.Errorf("rate limit: %w", err))
		}
	}

	rec, _, err := s.importer.ImportFile(ctx, path, opts)
	if rec == nil {
		return failedRecord(path, err)
	}
	if err != nil {
		logger.Debug("batch: %s: %v", path, err)
	}
	return *rec
}

// failedRecord describes a file that could not be opened or started.
func failedRecord(path string, err error) domain.ImportRecord {
	rec := domain.ImportRecord{
		Path:      path,
		FileName:  filepath.Base(path),
		Extension: domain.ExtensionOf(path),
		Status:    domain.StatusForError(err),
		StartedAt: time.Now(),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	return rec
}
