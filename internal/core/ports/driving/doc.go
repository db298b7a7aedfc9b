// Package driving defines the ports the CLI and the MCP server call into:
// dispatching and reading single files, importing batches, watching folders,
// the import journal, settings and the scheduler.
//
// Implementations live in internal/core/services.
package driving
