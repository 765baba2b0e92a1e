// Package errors provides structured error handling for PSGC lookups.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeInvalidFormat marks a geographic code that cannot be classified.
	CodeInvalidFormat Code = "INVALID_FORMAT"

	// Remote dataset errors
	CodeNotFound     Code = "NOT_FOUND"
	CodeServerError  Code = "SERVER_ERROR"
	CodeNetworkError Code = "NETWORK_ERROR"
	CodeDecodeError  Code = "DECODE_ERROR"

	// Cache errors
	CodeCacheUnavailable Code = "CACHE_UNAVAILABLE"
)

// Retryable reports whether a failure with this code may succeed on a later
// attempt.
func (c Code) Retryable() bool {
	switch c {
	case CodeServerError, CodeNetworkError:
		return true
	default:
		return false
	}
}
