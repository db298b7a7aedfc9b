// Package domain defines the core entities of the MQC adapter host.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - AdapterInfo: The declarative metadata of a registered adapter
//   - FileReaderContext: A read-only, lazily loaded view of one report file
//   - AdapterReadResult: The records an adapter produced for a file
//   - ImportRecord: The journal entry describing one dispatch
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
