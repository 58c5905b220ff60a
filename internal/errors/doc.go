// Package errors defines sentinel errors for StormKeys operations.
//
// Errors are grouped by category: key generation, verification, and
// project state. Call sites wrap these with fmt.Errorf and %w so callers
// can match them with errors.Is while keeping the diagnostic text.
package errors
