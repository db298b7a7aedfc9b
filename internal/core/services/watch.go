package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driving"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.Watcher = (*WatchService)(nil)

// DefaultWatchDebounce is how long a file must be quiet before it is imported.
const DefaultWatchDebounce = 500 * time.Millisecond

// WatchService imports report files as they are written to a directory.
type WatchService struct {
	importer driving.Importer
	source   driven.FileSource
	catalog  driving.AdapterCatalog
	debounce time.Duration
}

// NewWatchService creates a watch service. A non-positive debounce uses DefaultWatchDebounce.
func NewWatchService(
	importer driving.Importer,
	source driven.FileSource,
	catalog driving.AdapterCatalog,
	debounce time.Duration,
) *WatchService {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	return &WatchService{
		importer: importer,
		source:   source,
		catalog:  catalog,
		debounce: debounce,
	}
}

// Watch imports created and updated files under dir until ctx is cancelled.
// Bursts of events for one file are coalesced into a single import.
// Deleted files are ignored.
func (s *WatchService) Watch(ctx context.Context, dir string, onRecord func(domain.ImportRecord)) error {
	events, err := s.source.Watch(ctx, dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	supported := make(map[string]bool)
	for _, ext := range s.catalog.SupportedExtensions() {
		supported[ext] = true
	}

	due := make(chan debounced)
	stopped := make(chan struct{})
	timers := newDebouncer(s.debounce, func(d debounced) {
		select {
		case due <- d:
		case <-stopped:
		case <-ctx.Done():
		}
	})
	defer func() {
		close(stopped)
		timers.stopAll()
	}()

	logger.Info("watching %s for %d extension(s)", dir, len(supported))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			timers.cancel(ev.Path)
			if ev.Type == domain.FileDeleted || !supported[domain.ExtensionOf(ev.Path)] {
				continue
			}
			timers.arm(ev.Path)

		case fired := <-due:
			if !timers.claim(fired) {
				continue
			}
			path := fired.path
			rec, _, err := s.importer.ImportFile(ctx, path, domain.ImportOptions{})
			if err != nil {
				logger.Warn("watch: %s: %v", path, err)
			}
			if rec != nil && onRecord != nil {
				onRecord(*rec)
			}
		}
	}
}

// debounced is one timer firing for a path.
type debounced struct {
	path string
	gen  uint64
}

// debouncer tracks one pending timer per path. Every arm gets a new
// generation, so a firing that was already in flight when its path was
// re-armed or cancelled fails claim and is dropped.
// It is not safe for concurrent use; only the fire callback runs elsewhere.
type debouncer struct {
	delay   time.Duration
	fire    func(debounced)
	gen     uint64
	pending map[string]pendingTimer
}

type pendingTimer struct {
	gen   uint64
	timer *time.Timer
}

func newDebouncer(delay time.Duration, fire func(debounced)) *debouncer {
	return &debouncer{
		delay:   delay,
		fire:    fire,
		pending: make(map[string]pendingTimer),
	}
}

// arm replaces any pending timer for path with a fresh one.
func (d *debouncer) arm(path string) debounced {
	d.cancel(path)
	d.gen++
	ev := debounced{path: path, gen: d.gen}
	d.pending[path] = pendingTimer{
		gen:   ev.gen,
		timer: time.AfterFunc(d.delay, func() { d.fire(ev) }),
	}
	return ev
}

func (d *debouncer) cancel(path string) {
	if p, ok := d.pending[path]; ok {
		p.timer.Stop()
		delete(d.pending, path)
	}
}

// claim reports whether ev is the current timer for its path and, if so,
// clears it.
func (d *debouncer) claim(ev debounced) bool {
	p, ok := d.pending[ev.path]
	if !ok || p.gen != ev.gen {
		return false
	}
	delete(d.pending, ev.path)
	return true
}

func (d *debouncer) stopAll() {
	for path := range d.pending {
		d.cancel(path)
	}
}
