// Package readers provides the built-in MQC report adapters and a catalog
// that builds them from settings.
//
// Each adapter lives in its own subpackage and implements driven.Adapter.
// The catalog is populated at startup by RegisterDefaults and produces the
// adapters that are handed to the registry.
package readers
