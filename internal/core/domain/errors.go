package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Registration Errors.

	// ErrInvalidAdapter indicates an adapter was rejected at registration.
	ErrInvalidAdapter = errors.New("invalid adapter")

	// ErrDuplicateName indicates an adapter with the same name is already registered.
	ErrDuplicateName = errors.New("duplicate adapter name")

	// Dispatch Errors.

	// ErrUnsupportedFileType indicates no adapter declares the file's extension.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrAdapterValidation indicates an adapter's IsValid call failed.
	// It is recovered by the dispatch engine and never returned to callers.
	ErrAdapterValidation = errors.New("adapter validation fault")

	// ErrNoValidAdapter indicates every candidate was probed and none matched.
	ErrNoValidAdapter = errors.New("no valid adapter")

	// ErrAdapterExecution indicates the selected adapter failed to read the file.
	ErrAdapterExecution = errors.New("adapter execution failed")

	// ErrAdapterTimeout indicates an IsValid or Read call exceeded the
	// per-invocation timeout. It does not wrap context.DeadlineExceeded, so a
	// slow adapter is a failure rather than a cancellation.
	ErrAdapterTimeout = errors.New("adapter call timed out")

	// ErrMissingDataSource indicates a record has no data source while its
	// adapter declares DataSourceUnknown.
	ErrMissingDataSource = errors.New("missing data source")
)

// InvalidAdapterError is returned when an adapter violates the registration contract.
type InvalidAdapterError struct {
	Name   string
	Reason string
}

func (e *InvalidAdapterError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid adapter: %s", e.Reason)
	}
	return fmt.Sprintf("invalid adapter %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidAdapter.
func (e *InvalidAdapterError) Unwrap() error { return ErrInvalidAdapter }

// DuplicateNameError is returned when an adapter name is already taken.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("adapter %q already registered", e.Name)
}

// Unwrap returns ErrDuplicateName.
func (e *DuplicateNameError) Unwrap() error { return ErrDuplicateName }

// UnsupportedFileTypeError is returned when no adapter declares the extension.
// No adapter was probed.
type UnsupportedFileTypeError struct {
	FileName  string
	Extension string
}

func (e *UnsupportedFileTypeError) Error() string {
	ext := e.Extension
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("%s: no adapter handles extension %s", e.FileName, ext)
}

// Unwrap returns ErrUnsupportedFileType.
func (e *UnsupportedFileTypeError) Unwrap() error { return ErrUnsupportedFileType }

// AdapterValidationFault records a failed IsValid call.
// The dispatch engine treats the adapter as not valid and continues.
type AdapterValidationFault struct {
	Adapter  string
	FileName string
	Err      error
}

func (e *AdapterValidationFault) Error() string {
	return fmt.Sprintf("adapter %q: validating %s: %v", e.Adapter, e.FileName, e.Err)
}

// Unwrap returns both ErrAdapterValidation and the underlying cause.
func (e *AdapterValidationFault) Unwrap() []error { return []error{ErrAdapterValidation, e.Err} }

// NoValidAdapterError is returned when every candidate rejected the file.
type NoValidAdapterError struct {
	FileName   string
	Extension  string
	Candidates []string
	Faults     []*AdapterValidationFault
}

func (e *NoValidAdapterError) Error() string {
	msg := fmt.Sprintf("%s: none of %d adapter(s) for %s accepted the file (%s)",
		e.FileName, len(e.Candidates), e.Extension, strings.Join(e.Candidates, ", "))
	if len(e.Faults) > 0 {
		msg += fmt.Sprintf("; %d validation fault(s)", len(e.Faults))
	}
	return msg
}

// Unwrap returns ErrNoValidAdapter.
func (e *NoValidAdapterError) Unwrap() error { return ErrNoValidAdapter }

// AdapterExecutionError is returned when the selected adapter fails in Read.
// No other candidate is tried.
type AdapterExecutionError struct {
	Adapter    string
	FileName   string
	Extension  string
	Candidates int
	Err        error
}

func (e *AdapterExecutionError) Error() string {
	return fmt.Sprintf("adapter %q failed to read %s: %v", e.Adapter, e.FileName, e.Err)
}

// Unwrap returns both ErrAdapterExecution and the underlying cause.
func (e *AdapterExecutionError) Unwrap() []error { return []error{ErrAdapterExecution, e.Err} }
