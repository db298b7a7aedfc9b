package driven

import (
	"context"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

// FileSource lists and watches report files.
type FileSource interface {
	// Walk sends the paths of regular files below root whose extension is in exts.
	// An empty exts accepts every extension. Both channels are closed when done.
	Walk(ctx context.Context, root string, exts []string) (<-chan string, <-chan error)

	// Watch streams changes below root until ctx is cancelled.
	Watch(ctx context.Context, root string) (<-chan domain.FileEvent, error)

	// IsDir reports whether path is a directory.
	IsDir(path string) (bool, error)

	// Open returns a lazily loaded context for the file at path.
	Open(path string) (*domain.FileReaderContext, error)
}
