// Package process provides the types and interfaces for capturing a snapshot
// of the process table and walking its parent/child relationships.
package process

import "errors"

// Backend implementations live in their own packages:
// - process_linux: procfs reader
// - process_psutil: gopsutil reader
// The static table in this package serves fixtures and tests.

var (
	// ErrEnumerationFailed is returned when the process table cannot be enumerated.
	ErrEnumerationFailed = errors.New("process enumeration failed")

	// ErrAccessDenied is returned when the process table exists but the
	// current execution context is not allowed to read it.
	ErrAccessDenied = errors.New("process table access denied")

	// ErrInvalidSnapshot is returned when the parent/child relation of a
	// snapshot is not a forest.
	ErrInvalidSnapshot = errors.New("invalid process snapshot")
)

// IsEnumerationError reports whether err means the process table could not be
// read at all. Access denials and invalid snapshots count as enumeration failures.
func IsEnumerationError(err error) bool {
	return errors.Is(err, ErrEnumerationFailed) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrInvalidSnapshot)
}
