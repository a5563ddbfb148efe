// Package errors provides centralized error definitions and error handling
// utilities for peek. It defines sentinel errors, typed domain errors with
// context wrapping, and classification helpers.
//
// # Error Types
//
// Domain-specific errors represent failures from specific subsystems:
//   - TerminalError: failures talking to the host terminal (raw mode, size,
//     output flush, event reads)
//   - LoadError: failures opening or reading the file being viewed
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewTerminalError("enable raw mode", cause)
//	err := errors.NewLoadError("notes.txt", cause)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrNotATerminal) { ... }
//
//	var loadErr *errors.LoadError
//	if errors.As(err, &loadErr) { ... }
//
// # Error Classification
//
// Errors carry a Severity. Startup failures abort and are reported on stderr;
// failed event reads inside the render loop are classified as warnings and
// only logged.
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityWarning is for errors that are swallowed and retried.
	SeverityWarning
	// SeverityError is for errors that abort the current operation.
	SeverityError
	// SeverityCritical is for errors that abort startup.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Terminal-related sentinel errors
var (
	// ErrNotATerminal indicates that stdin or stdout is not attached to a terminal.
	ErrNotATerminal = New("not a terminal")
	// ErrRawMode indicates that raw mode could not be enabled or disabled.
	ErrRawMode = New("raw mode unavailable")
	// ErrEventRead indicates that reading the next terminal event failed.
	ErrEventRead = New("could not read event")
	// ErrTerminalClosed indicates that the event source has been shut down.
	ErrTerminalClosed = New("terminal closed")
)

// Load-related sentinel errors
var (
	// ErrFileLoad indicates that the file given on the command line could not be loaded.
	ErrFileLoad = New("could not load file")
)

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// PeekError is the base interface for typed peek errors.
type PeekError interface {
	error
	Unwrap() error
	Severity() Severity
}

type baseError struct {
	message  string
	cause    error
	severity Severity
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// TerminalError represents a failed terminal operation.
//
// Example:
//
//	err := errors.NewTerminalError("enable raw mode", cause).WithSentinel(errors.ErrRawMode)
//	fmt.Println(err) // "terminal error [enable raw mode]: inappropriate ioctl for device"
type TerminalError struct {
	baseError
	Op       string
	sentinel error
}

// NewTerminalError creates a new TerminalError for the named operation.
func NewTerminalError(op string, cause error) *TerminalError {
	return &TerminalError{
		Op: op,
		baseError: baseError{
			message:  op,
			cause:    cause,
			severity: SeverityError,
		},
	}
}

// WithSentinel attaches a sentinel so errors.Is matches it.
func (e *TerminalError) WithSentinel(sentinel error) *TerminalError {
	e.sentinel = sentinel
	return e
}

// WithSeverity sets the error severity.
func (e *TerminalError) WithSeverity(s Severity) *TerminalError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *TerminalError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("terminal error [%s]: %v", e.Op, e.cause)
	}
	if e.sentinel != nil {
		return fmt.Sprintf("terminal error [%s]: %v", e.Op, e.sentinel)
	}
	return fmt.Sprintf("terminal error [%s]", e.Op)
}

// Is checks if this error matches the target.
func (e *TerminalError) Is(target error) bool {
	if _, ok := target.(*TerminalError); ok {
		return true
	}
	return e.sentinel != nil && target == e.sentinel
}

// LoadError represents a failure to load the file being viewed.
//
// Example:
//
//	err := errors.NewLoadError("notes.txt", fs.ErrNotExist)
//	fmt.Println(err) // "could not load file notes.txt: file does not exist"
type LoadError struct {
	baseError
	Path string
}

// NewLoadError creates a new LoadError for path.
func NewLoadError(path string, cause error) *LoadError {
	return &LoadError{
		Path: path,
		baseError: baseError{
			message:  "could not load file",
			cause:    cause,
			severity: SeverityCritical,
		},
	}
}

// Error returns the formatted error message.
func (e *LoadError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s %s: %v", e.message, e.Path, e.cause)
	}
	return fmt.Sprintf("%s %s", e.message, e.Path)
}

// Is checks if this error matches the target.
func (e *LoadError) Is(target error) bool {
	if _, ok := target.(*LoadError); ok {
		return true
	}
	return target == ErrFileLoad
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement PeekError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var peekErr PeekError
	if As(err, &peekErr) {
		return peekErr.Severity()
	}
	return SeverityError
}

// Wrap wraps an error with additional context.
// Returns nil if err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
