package errors

import "errors"

// Exit codes surfaced by the CLI layer.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitParseError indicates a malformed manifest or dependency id.
	ExitParseError = 2

	// ExitIOError indicates a filesystem operation failed.
	ExitIOError = 3

	// ExitNotFound indicates a module was not found.
	ExitNotFound = 5

	// ExitUnsupportedPlatform indicates no session launch strategy exists
	// for the current platform.
	ExitUnsupportedPlatform = 6
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed records whether the command layer already printed the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrParse):
		return ExitParseError
	case errors.Is(err, ErrIO):
		return ExitIOError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrUnsupportedPlatform):
		return ExitUnsupportedPlatform
	default:
		return ExitGeneralError
	}
}
