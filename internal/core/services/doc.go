// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters, file sources, journals).
//
// The dispatch path is AdapterRegistry, DispatchEngine, then ImportService,
// which BatchService, WatchService and the Scheduler build on.
package services
