package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driven"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.FileSource = (*Source)(nil)

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("file source closed")

// Source lists, watches and opens report files on the local filesystem.
// Hidden files and directories (dot-prefixed) are skipped.
type Source struct {
	mu       sync.Mutex
	watchers []*fsnotify.Watcher
	closed   bool
}

// New creates a filesystem source.
func New() *Source {
	return &Source{}
}

// Walk sends regular files below root whose extension is in exts.
func (s *Source) Walk(ctx context.Context, root string, exts []string) (<-chan string, <-chan error) {
	paths := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(paths)
		defer close(errs)

		info, err := os.Stat(root)
		if err != nil {
			errs <- fmt.Errorf("root path error: %w", err)
			return
		}
		if !info.IsDir() {
			errs <- fmt.Errorf("root path error: %s is not a directory", root)
			return
		}

		accept := extensionFilter(exts)
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				logger.Debug("walk %s: %v", path, err)
				if d != nil && d.IsDir() && path != root {
					return fs.SkipDir
				}
				return nil
			}
			if path != root && isHidden(relative(root, path)) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() || !accept(path) {
				return nil
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case paths <- path:
				return nil
			}
		})
		if err != nil {
			errs <- err
		}
	}()

	return paths, errs
}

// Watch streams create, write and delete events below root.
// The channel closes when ctx is cancelled.
func (s *Source) Watch(ctx context.Context, root string) (<-chan domain.FileEvent, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.mu.Unlock()

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory", root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := addRecursive(watcher, root); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = watcher.Close()
		return nil, ErrClosed
	}
	s.watchers = append(s.watchers, watcher)
	s.mu.Unlock()

	events := make(chan domain.FileEvent)
	go func() {
		defer close(events)
		defer s.release(watcher)

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Create) && !isHidden(relative(root, ev.Name)) {
					if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
						if err := addRecursive(watcher, ev.Name); err != nil {
							logger.Warn("watch %s: %v", ev.Name, err)
						}
						continue
					}
				}
				change := handleFsEvent(root, ev)
				if change == nil {
					continue
				}
				select {
				case events <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch %s: %v", root, err)
			}
		}
	}()

	return events, nil
}

// IsDir reports whether path is a directory.
func (s *Source) IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// Open returns a lazily loaded context for the file at path.
func (s *Source) Open(path string) (*domain.FileReaderContext, error) {
	return NewContext(path)
}

// Close stops all active watches. It is safe to call more than once.
func (s *Source) Close() error {
	s.mu.Lock()
	watchers := s.watchers
	s.watchers = nil
	s.closed = true
	s.mu.Unlock()

	var errs []error
	for _, w := range watchers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Source) release(w *fsnotify.Watcher) {
	s.mu.Lock()
	for i, candidate := range s.watchers {
		if candidate == w {
			s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	_ = w.Close()
}

// NewContext stats path and returns a FileReaderContext that reads the file
// on first content access.
func NewContext(path string) (*domain.FileReaderContext, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, domain.ErrInvalidInput)
	}

	fc := domain.NewFileReaderContext(abs, func() ([]byte, error) {
		return os.ReadFile(abs)
	})
	return fc.WithStat(info.Size(), info.ModTime()), nil
}

// handleFsEvent converts an fsnotify event to a FileEvent.
// Returns nil for directories, hidden paths and events that are not
// create, write, remove or rename.
func handleFsEvent(root string, ev fsnotify.Event) *domain.FileEvent {
	if isHidden(relative(root, ev.Name)) {
		return nil
	}

	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return &domain.FileEvent{Type: domain.FileDeleted, Path: ev.Name}
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		info, err := os.Stat(ev.Name)
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
		typ := domain.FileUpdated
		if ev.Has(fsnotify.Create) {
			typ = domain.FileCreated
		}
		return &domain.FileEvent{Type: typ, Path: ev.Name}
	default:
		return nil
	}
}

func addRecursive(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return fs.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func extensionFilter(exts []string) func(string) bool {
	if len(exts) == 0 {
		return func(string) bool { return true }
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		if n := domain.NormaliseExtension(e); n != "" {
			set[n] = true
		}
	}
	return func(path string) bool {
		return set[domain.ExtensionOf(path)]
	}
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
