// Package timestamp fills in missing measurement times.
package timestamp

import (
	"context"
	"time"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

// Name is the processor name used in configuration.
const Name = "timestamp"

// Processor sets a zero DateTime on records and findings to the file's
// modification time, or to the current time when that is unknown.
type Processor struct {
	useModTime bool
	loc        *time.Location
	now        func() time.Time
}

// Option configures the timestamp processor.
type Option func(*Processor)

// WithModTime controls whether the file modification time is preferred.
func WithModTime(use bool) Option {
	return func(p *Processor) {
		p.useModTime = use
	}
}

// WithLocation sets the zone of fallback times.
func WithLocation(loc *time.Location) Option {
	return func(p *Processor) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// WithClock replaces the clock used for fallback times.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a new timestamp processor.
func New(opts ...Option) *Processor {
	p := &Processor{
		useModTime: true,
		loc:        time.UTC,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process fills zero timestamps in place.
func (p *Processor) Process(_ context.Context, fc *domain.FileReaderContext, result *domain.AdapterReadResult) error {
	stamp := p.now().In(p.loc)
	if p.useModTime && !fc.ModTime().IsZero() {
		stamp = fc.ModTime()
	}

	fill := func(t *time.Time) {
		if t.IsZero() {
			*t = stamp
		}
	}

	for i := range result.Data {
		fill(&result.Data[i].DateTime)
	}
	for i := range result.Findings {
		f := &result.Findings[i]
		fill(&f.DateTime)
		for j := range f.Data {
			fill(&f.Data[j].DateTime)
		}
	}
	return nil
}
