package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driving"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/logger"
)

// Ensure DispatchEngine implements the interface.
var _ driving.Dispatcher = (*DispatchEngine)(nil)

// DispatchEngine selects the adapter for a file and runs its Read.
//
// A dispatch moves through three phases:
//
//   - Filtering: candidates are the adapters declaring the file's extension.
//   - Probing: candidates are asked IsValid in priority order. Errors, panics
//     and timeouts count as "not valid" and probing continues.
//   - Executing: the first valid candidate reads the file. A read failure
//     ends the dispatch; no other candidate is tried.
//
// The engine holds no per-dispatch state and is safe for concurrent use.
type DispatchEngine struct {
	registry  driven.AdapterRegistry
	timeout   time.Duration
	probeHook func(domain.Probe)
}

// DispatchOption configures a DispatchEngine.
type DispatchOption func(*DispatchEngine)

// WithAdapterTimeout bounds each IsValid and Read call. Zero disables the bound.
// A call that outlives the bound is abandoned, not stopped: it keeps running on
// its own goroutine until the adapter observes its cancelled context, possibly
// while later candidates are probed. Adapters should honour ctx.
func WithAdapterTimeout(d time.Duration) DispatchOption {
	return func(e *DispatchEngine) {
		e.timeout = d
	}
}

// WithProbeHook registers a callback invoked after every IsValid call.
func WithProbeHook(fn func(domain.Probe)) DispatchOption {
	return func(e *DispatchEngine) {
		e.probeHook = fn
	}
}

// NewDispatchEngine creates a dispatch engine over a registry.
func NewDispatchEngine(registry driven.AdapterRegistry, opts ...DispatchOption) *DispatchEngine {
	e := &DispatchEngine{registry: registry}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dispatch reads fc with exactly one adapter.
func (e *DispatchEngine) Dispatch(ctx context.Context, fc *domain.FileReaderContext) (*domain.DispatchOutcome, error) {
	if fc == nil {
		return nil, domain.ErrInvalidInput
	}

	candidates := e.registry.CandidatesFor(fc.Name())
	if len(candidates) == 0 {
		logger.Debug("dispatch %s: no adapter for extension %q", fc.Name(), fc.Extension())
		return nil, &domain.UnsupportedFileTypeError{FileName: fc.Name(), Extension: fc.Extension()}
	}

	names := make([]string, len(candidates))
	for i, a := range candidates {
		names[i] = a.Name()
	}
	logger.Debug("dispatch %s: %d candidate(s) %v", fc.Name(), len(names), names)

	probes := make([]domain.Probe, 0, len(candidates))
	var faults []*domain.AdapterValidationFault

	for _, adapter := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("dispatch %s: %w", fc.Name(), err)
		}

		start := time.Now()
		valid, err := invoke(ctx, e.timeout, func(ctx context.Context) (bool, error) {
			return adapter.IsValid(ctx, fc)
		})
		probe := domain.Probe{
			Adapter:  adapter.Name(),
			Valid:    valid && err == nil,
			Err:      err,
			Duration: time.Since(start),
		}
		probes = append(probes, probe)
		if e.probeHook != nil {
			e.probeHook(probe)
		}

		if err != nil {
			fault := &domain.AdapterValidationFault{Adapter: adapter.Name(), FileName: fc.Name(), Err: err}
			faults = append(faults, fault)
			logger.Warn("%v", fault)
			continue
		}
		if !valid {
			logger.Debug("dispatch %s: %s declined", fc.Name(), adapter.Name())
			continue
		}

		return e.execute(ctx, adapter, fc, names, probes)
	}

	return nil, &domain.NoValidAdapterError{
		FileName:   fc.Name(),
		Extension:  fc.Extension(),
		Candidates: names,
		Faults:     faults,
	}
}

func (e *DispatchEngine) execute(
	ctx context.Context,
	adapter driven.Adapter,
	fc *domain.FileReaderContext,
	candidates []string,
	probes []domain.Probe,
) (*domain.DispatchOutcome, error) {
	name := adapter.Name()
	execErr := func(err error) error {
		return &domain.AdapterExecutionError{
			Adapter:    name,
			FileName:   fc.Name(),
			Extension:  fc.Extension(),
			Candidates: len(candidates),
			Err:        err,
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("dispatch %s: %w", fc.Name(), err)
	}

	logger.Debug("dispatch %s: reading with %s", fc.Name(), name)
	result, err := invoke(ctx, e.timeout, func(ctx context.Context) (*domain.AdapterReadResult, error) {
		return adapter.Read(ctx, fc)
	})
	if err != nil {
		if ctx.Err() == nil && isContextError(err) {
			// The caller is still live, so this is the adapter's own failure.
			err = fmt.Errorf("read: %v", err)
		}
		return nil, execErr(err)
	}
	if result == nil {
		result = domain.NewAdapterReadResult()
	}
	if result.Data == nil {
		result.Data = []domain.AdapterData{}
	}

	dataSource := adapter.DataSource()
	if info, err := e.registry.Info(name); err == nil {
		dataSource = info.DataSource
	}
	result.Adapter = name
	result.DataSource = dataSource
	if err := result.ResolveDataSources(dataSource); err != nil {
		return nil, execErr(err)
	}

	return &domain.DispatchOutcome{
		Adapter:    name,
		Result:     result,
		Candidates: candidates,
		Probes:     probes,
	}, nil
}

// invoke runs an adapter call, converting panics to errors.
// With a positive timeout the call runs on its own goroutine and is abandoned
// once the deadline passes; the adapter sees the cancelled context. An expired
// timeout yields ErrAdapterTimeout, while the caller's own cancellation is
// returned unchanged.
func invoke[T any](parent context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return protect(parent, fn)
	}

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := protect(ctx, fn)
		done <- outcome{value: v, err: err}
	}()

	var zero T
	select {
	case o := <-done:
		if o.err != nil && ctx.Err() != nil && parent.Err() == nil {
			return zero, fmt.Errorf("adapter call exceeded %s: %w", timeout, domain.ErrAdapterTimeout)
		}
		return o.value, o.err
	case <-ctx.Done():
		if err := parent.Err(); err != nil {
			return zero, err
		}
		// The call may still be running and reading the file context.
		logger.Warn("adapter call abandoned after %s; it may still be running", timeout)
		return zero, fmt.Errorf("adapter call abandoned after %s: %w", timeout, domain.ErrAdapterTimeout)
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func protect[T any](ctx context.Context, fn func(context.Context) (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			value = zero
			err = fmt.Errorf("adapter panicked: %v", r)
		}
	}()
	return fn(ctx)
}
