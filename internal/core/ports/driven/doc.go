// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Adapter: Recognises and reads one report file variant
//   - AdapterRegistry: Holds adapters and orders candidates per extension
//   - FileSource: Lists and watches report files on disk
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ImportJournal: Dispatch history. Without it, unchanged files are never skipped.
//   - ResultProcessor: Post-dispatch result enrichment.
//   - SchedulerStore: Folder scan task state. Without it, the scheduler is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or reader package
package driven
