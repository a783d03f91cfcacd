// Package errors provides the error taxonomy for the modctx CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known failure categories.
var (
	// ErrIO indicates a directory creation, move, or copy failure.
	ErrIO = errors.New("io error")

	// ErrNotFound indicates a module absent from the registry or the
	// local module store.
	ErrNotFound = errors.New("not found")

	// ErrParse indicates a malformed dependency canonical id or a
	// malformed context manifest.
	ErrParse = errors.New("parse error")

	// ErrUnsupportedPlatform indicates a session launch was attempted on
	// a platform with no defined launch strategy.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// DetailError captures structured error information.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is a file path or offending input (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewIOError creates an io error with details.
func NewIOError(message, location string) error {
	return &DetailError{
		Type:     "io failed",
		Message:  message,
		Location: location,
		Cause:    ErrIO,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, hint string) error {
	return &DetailError{
		Type:    "not found",
		Message: message,
		Hint:    hint,
		Cause:   ErrNotFound,
	}
}

// NewParseError creates a parse error that carries the offending input.
func NewParseError(message, offending string) error {
	return &DetailError{
		Type:     "parse failed",
		Message:  message,
		Location: offending,
		Cause:    ErrParse,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
