package domain

import "time"

// Probe records one IsValid invocation during a dispatch.
type Probe struct {
	Adapter  string
	Valid    bool
	Err      error
	Duration time.Duration
}

// DispatchOutcome is the successful result of dispatching one file.
type DispatchOutcome struct {
	// Adapter is the name of the adapter whose Read ran.
	Adapter string

	// Result is the adapter's output with data sources resolved.
	Result *AdapterReadResult

	// Candidates lists the adapters matching the extension, in probe order.
	Candidates []string

	// Probes lists every IsValid call made, in order.
	Probes []Probe
}
