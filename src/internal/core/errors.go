package core

import "errors"

// Failure kinds for external tool invocation and output persistence.
// Callers classify with errors.Is and decide whether to continue.
var (
	// The external tool is not installed in the execution environment
	ErrToolAbsent = errors.New("external tool not found")

	// The external tool ran but exited with an error status
	ErrToolFailed = errors.New("external tool failed")

	// The external tool produced output that does not parse as JSON
	ErrMalformedOutput = errors.New("malformed tool output")

	// The process lacks rights to write the target path
	ErrPermissionDenied = errors.New("permission denied")
)
