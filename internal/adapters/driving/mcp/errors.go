// Package mcp provides an MCP (Model Context Protocol) server adapter for mqc.
// It lets AI assistants inspect the adapter registry and read report files.
package mcp

import "errors"

// ErrMissingCatalog is returned when the adapter catalog is not provided.
var ErrMissingCatalog = errors.New("mcp: adapter catalog is required")

// ErrReaderUnavailable is returned by read_file when no reader is configured.
var ErrReaderUnavailable = errors.New("mcp: file reading is not configured")
