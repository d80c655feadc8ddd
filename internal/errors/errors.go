package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorConfig   = 4   // Indicates a configuration or usage error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as missing,
// conflicting or malformed flags. It indicates that the application cannot
// proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError encapsulates a failure inside an aggregation run while
// preserving the original cause (typically a recovered task panic).
type CalculationError struct {
	// Strategy is the executor that was running when the failure occurred.
	Strategy string
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause, prefixed with the
// strategy name when known.
func (e CalculationError) Error() string {
	if e.Strategy == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Strategy, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e CalculationError) Unwrap() error { return e.Cause }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// ResourceError reports a failure to use an external resource such as the
// results log or the metrics textfile. These errors never fail a run.
type ResourceError struct {
	// Resource names the file or endpoint that could not be used.
	Resource string
	// Cause is the underlying I/O error.
	Cause error
}

// Error returns a formatted message describing the resource failure.
func (e ResourceError) Error() string {
	return fmt.Sprintf("cannot use %s: %v", e.Resource, e.Cause)
}

// Unwrap returns the underlying I/O error.
func (e ResourceError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code it should produce.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cfgErr ConfigError
	var valErr ValidationError
	switch {
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	case IsContextError(err):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}

// HandleBenchmarkError prints err to out and returns the matching exit code.
// A nil error prints nothing and returns ExitSuccess.
func HandleBenchmarkError(err error, out io.Writer) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(out, "Error: %v\n", err)
	return ExitCodeFor(err)
}
