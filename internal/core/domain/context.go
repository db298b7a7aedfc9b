package domain

import (
	"bytes"
	"errors"
	"path/filepath"
	"sync"
	"time"
)

// ContentLoader returns the raw bytes of a report file.
type ContentLoader func() ([]byte, error)

// FileReaderContext is a read-only view of one candidate report file.
// It is created once per dispatch and passed to every probed adapter.
// Content is loaded on first access and cached for the life of the context;
// a context must not be shared across dispatch calls.
type FileReaderContext struct {
	path    string
	name    string
	ext     string
	size    int64
	modTime time.Time
	loader  ContentLoader

	contentOnce sync.Once
	content     []byte
	contentErr  error

	xmlOnce sync.Once
	xmlDoc  *XMLNode
	xmlErr  error
}

// NewFileReaderContext creates a context for the file at path.
// The loader is called at most once, on first content access.
func NewFileReaderContext(path string, loader ContentLoader) *FileReaderContext {
	name := filepath.Base(path)
	return &FileReaderContext{
		path:   path,
		name:   name,
		ext:    ExtensionOf(name),
		loader: loader,
	}
}

// NewFileReaderContextFromBytes creates a context over in-memory content.
func NewFileReaderContextFromBytes(name string, data []byte) *FileReaderContext {
	fc := NewFileReaderContext(name, func() ([]byte, error) { return data, nil })
	fc.size = int64(len(data))
	return fc
}

// WithStat returns the context with file size and modification time attached.
// It must be called before the context is handed to the dispatch engine.
func (c *FileReaderContext) WithStat(size int64, modTime time.Time) *FileReaderContext {
	c.size = size
	c.modTime = modTime
	return c
}

// Path returns the full file path.
func (c *FileReaderContext) Path() string { return c.path }

// Name returns the base file name.
func (c *FileReaderContext) Name() string { return c.name }

// Extension returns the normalised file extension.
func (c *FileReaderContext) Extension() string { return c.ext }

// Size returns the file size in bytes, if known.
func (c *FileReaderContext) Size() int64 { return c.size }

// ModTime returns the file modification time, if known.
func (c *FileReaderContext) ModTime() time.Time { return c.modTime }

// Bytes returns the raw file content.
func (c *FileReaderContext) Bytes() ([]byte, error) {
	c.contentOnce.Do(func() {
		if c.loader == nil {
			c.contentErr = errors.New("no content loader")
			return
		}
		c.content, c.contentErr = c.loader()
	})
	return c.content, c.contentErr
}

// Text returns the file content as a string.
func (c *FileReaderContext) Text() (string, error) {
	data, err := c.Bytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// XMLDocument parses the content as XML and returns the root element.
// The document is parsed once; later calls return the cached tree or error.
func (c *FileReaderContext) XMLDocument() (*XMLNode, error) {
	c.xmlOnce.Do(func() {
		data, err := c.Bytes()
		if err != nil {
			c.xmlErr = err
			return
		}
		c.xmlDoc, c.xmlErr = ParseXML(bytes.NewReader(data))
	})
	return c.xmlDoc, c.xmlErr
}
