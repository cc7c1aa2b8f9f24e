// Package errors provides custom error types for the ledgermap system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the ledgermap system
var (
	// ErrMissingTable indicates that a table required for an output could not
	// be found in any of the supplied archives
	ErrMissingTable = errors.New("required table missing")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")
)

// MissingTableError is raised when a source table that an output irrecoverably
// depends on is absent from every supplied archive. Optional catalogs never
// produce this error; only the cost organization join inputs do.
type MissingTableError struct {
	File    string
	Columns []string
}

// Error implements the error interface
func (e *MissingTableError) Error() string {
	if len(e.Columns) > 0 {
		return fmt.Sprintf("required table %s (columns: %s) not found in any archive", e.File, strings.Join(e.Columns, ", "))
	}
	return fmt.Sprintf("required table %s not found in any archive", e.File)
}

// Is implements errors.Is support
func (e *MissingTableError) Is(target error) bool {
	return target == ErrMissingTable
}

// NewMissingTableError creates a new MissingTableError
func NewMissingTableError(file string, columns ...string) *MissingTableError {
	return &MissingTableError{File: file, Columns: columns}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "zip", "csv", "xml", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ExportError represents an error while producing an output artifact
type ExportError struct {
	Artifact string // "workbook", "diagram", "link"
	Message  string
	Err      error
}

// Error implements the error interface
func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export %s: %s", e.Artifact, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ExportError) Unwrap() error {
	return e.Err
}

// NewExportError creates a new ExportError
func NewExportError(artifact string, err error) *ExportError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ExportError{
		Artifact: artifact,
		Message:  message,
		Err:      err,
	}
}

// Helper functions for error checking

// IsMissingTable checks if an error indicates an irrecoverably absent source table
func IsMissingTable(err error) bool {
	return errors.Is(err, ErrMissingTable)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Helper wrapping functions for common patterns

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapExport wraps an error as an ExportError
func WrapExport(artifact string, err error) error {
	if err == nil {
		return nil
	}
	return NewExportError(artifact, err)
}
