// Package errors provides custom error types for the datadrift system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the datadrift system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflictingRemedies indicates that mutually exclusive fix actions
	// were both enabled for the same reconciliation run
	ErrConflictingRemedies = errors.New("conflicting remedies")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrReadOnly indicates an attempt to modify a read-only resource
	ErrReadOnly = errors.New("read only")
)

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
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

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IOError represents a filesystem operation failure
type IOError struct {
	Operation string // e.g. "rename", "mkdir", "read"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("io error during %s on %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// IndexError represents a failure applying a mutation to the dataset index
type IndexError struct {
	Operation string // e.g. "add_dataset", "add_location", "remove_location"
	DatasetID string
	URI       string
	Err       error
}

// Error implements the error interface
func (e *IndexError) Error() string {
	if e.URI != "" {
		return fmt.Sprintf("index error during %s for dataset %s at %s: %v", e.Operation, e.DatasetID, e.URI, e.Err)
	}
	return fmt.Sprintf("index error during %s for dataset %s: %v", e.Operation, e.DatasetID, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IndexError) Unwrap() error {
	return e.Err
}

// NewIndexError creates a new IndexError
func NewIndexError(operation, datasetID, uri string, err error) *IndexError {
	return &IndexError{
		Operation: operation,
		DatasetID: datasetID,
		URI:       uri,
		Err:       err,
	}
}

// FixError identifies the mismatch whose fix action failed, aborting the run.
// Earlier mismatches in the same run keep their already-applied fixes.
type FixError struct {
	Kind      string // mismatch kind being fixed
	DatasetID string
	URI       string
	Err       error
}

// Error implements the error interface
func (e *FixError) Error() string {
	return fmt.Sprintf("fix failed for %s mismatch (dataset %s, uri %s): %v", e.Kind, e.DatasetID, e.URI, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *FixError) Unwrap() error {
	return e.Err
}

// NewFixError creates a new FixError
func NewFixError(kind, datasetID, uri string, err error) *FixError {
	return &FixError{Kind: kind, DatasetID: datasetID, URI: uri, Err: err}
}

// ParseError represents a parsing failure for reports or configuration
type ParseError struct {
	Format  string // e.g. "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("failed to parse %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConflictingRemedies checks if an error is a conflicting remedies error
func IsConflictingRemedies(err error) bool {
	return errors.Is(err, ErrConflictingRemedies)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
