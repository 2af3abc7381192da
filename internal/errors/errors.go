package apperrors

import (
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess      = 0   // Indicates successful execution.
	ExitErrorGeneric = 1   // Indicates a generic error.
	ExitErrorConfig  = 4   // Indicates a configuration error.
	ExitErrorCancel  = 130 // Indicates the session was interrupted (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect
// user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an operand validation failure. It identifies
// which operand (or operand combination) was rejected and why. Validation
// errors are recoverable: the caller is expected to re-prompt.
type ValidationError struct {
	// Field is the name of the operand that failed validation, or
	// "operands" when the combination as a whole is invalid.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field with a
// formatted message.
func NewValidationError(field, format string, a ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// DivisionByZeroError is the special case of validation where the second
// operand of a division-like operation is zero. It is kept distinct from
// ValidationError so callers can produce precise messaging.
type DivisionByZeroError struct {
	// Operation is the identifier of the operation that was attempted.
	Operation string
}

// Error returns a formatted message naming the offending operation.
func (e DivisionByZeroError) Error() string {
	return fmt.Sprintf("%s by zero is not allowed", e.Operation)
}

// UnknownOperationError indicates that an operation identifier is not
// present in the registry. Recoverable: the caller re-prompts.
type UnknownOperationError struct {
	// Identifier is the unrecognized operation name as given by the caller.
	Identifier string
}

// Error returns a formatted message naming the unknown identifier.
func (e UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation: %s", e.Identifier)
}

// UndoUnavailableError signals that there is nothing to undo. It is an
// informational no-op condition, not a real failure.
type UndoUnavailableError struct{}

// Error returns the fixed message for an unavailable undo.
func (UndoUnavailableError) Error() string { return "nothing to undo" }

// RedoUnavailableError signals that there is nothing to redo. It is an
// informational no-op condition, not a real failure.
type RedoUnavailableError struct{}

// Error returns the fixed message for an unavailable redo.
func (RedoUnavailableError) Error() string { return "nothing to redo" }

// CorruptHistoryError indicates that a persisted history document could not
// be restored: malformed structure, unparsable decimal fields, or a cursor
// outside the record range. It is fatal to the load call only; the prior
// in-memory ledger is preserved.
type CorruptHistoryError struct {
	// Path is the file the document was read from, when known.
	Path string
	// Cause is the underlying decode or validation error.
	Cause error
}

// Error returns a formatted message describing the corruption.
func (e CorruptHistoryError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("corrupt history: %v", e.Cause)
	}
	return fmt.Sprintf("corrupt history in %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause, allowing for error chain inspection
// (e.g., using errors.Is or errors.As).
func (e CorruptHistoryError) Unwrap() error { return e.Cause }

// NewCorruptHistoryError wraps cause as a CorruptHistoryError for path.
func NewCorruptHistoryError(path string, cause error) error {
	return CorruptHistoryError{Path: path, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsRecoverable reports whether err belongs to the recoverable part of the
// error taxonomy: validation failures, unknown operations, and the
// undo/redo no-op conditions. The interactive session continues after a
// recoverable error.
func IsRecoverable(err error) bool {
	var (
		validation ValidationError
		divZero    DivisionByZeroError
		unknown    UnknownOperationError
		noUndo     UndoUnavailableError
		noRedo     RedoUnavailableError
	)
	return errors.As(err, &validation) ||
		errors.As(err, &divZero) ||
		errors.As(err, &unknown) ||
		errors.As(err, &noUndo) ||
		errors.As(err, &noRedo)
}

// IsHistoryNoOp reports whether err is one of the undo/redo unavailability
// conditions, which are reported as informational rather than as failures.
func IsHistoryNoOp(err error) bool {
	var (
		noUndo UndoUnavailableError
		noRedo RedoUnavailableError
	)
	return errors.As(err, &noUndo) || errors.As(err, &noRedo)
}
