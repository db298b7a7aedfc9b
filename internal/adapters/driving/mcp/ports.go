package mcp

import (
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog lists registered adapters.
	Catalog driving.AdapterCatalog

	// Reader dispatches report files. Optional.
	Reader driving.Reader

	// Journal exposes import history. Optional.
	Journal driving.JournalService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Catalog == nil {
		return ErrMissingCatalog
	}
	return nil
}
