package rpcerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates the input could not be read or decoded.
	ErrParse = errors.New("parse error")

	// ErrValidation indicates the document failed shape conformance.
	ErrValidation = errors.New("validation error")

	// ErrResolution indicates a pointer could not be resolved.
	ErrResolution = errors.New("resolution error")

	// ErrShape indicates a resolved value is not of the expected kind.
	ErrShape = errors.New("shape error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to read or decode an API description.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Violation is a single failed conformance check.
type Violation struct {
	// Path is the location of the offending value (e.g., "methods[2].params")
	Path string
	// Pointer is the same location as a same-document pointer
	// (e.g., "#/methods/2/params"), when known
	Pointer string
	// Message describes the violated constraint
	Message string
}

// String returns "path: message", or just the message for root-level violations.
func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// ValidationError is returned when a document fails shape conformance.
// It carries every violation found, not just the first.
type ValidationError struct {
	// Violations lists each failed check in discovery order
	Violations []Violation
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	switch len(e.Violations) {
	case 0:
		return "validation error"
	case 1:
		return "validation error: " + e.Violations[0].String()
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("validation error: %d violations: %s", len(e.Violations), strings.Join(parts, "; "))
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ResolutionError represents a pointer whose path does not exist in the document.
type ResolutionError struct {
	// Pointer is the full pointer string that failed to resolve
	Pointer string
	// Segment is the first path segment that could not be followed (empty if unknown)
	Segment string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ResolutionError) Error() string {
	msg := "resolution error"
	if e.Pointer != "" {
		msg += ": " + e.Pointer
	}
	if e.Segment != "" {
		msg += fmt.Sprintf(" (missing segment %q)", e.Segment)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

// ShapeError represents a resolved value that does not have the shape the
// caller asked for, such as a content descriptor pointer landing on a string.
type ShapeError struct {
	// Pointer is the pointer that was resolved
	Pointer string
	// Expected names the expected target kind (e.g., "ContentDescriptor")
	Expected string
	// Got describes what was found instead
	Got string
}

// Error returns a human-readable error message.
func (e *ShapeError) Error() string {
	msg := "shape error"
	if e.Pointer != "" {
		msg += ": " + e.Pointer
	}
	if e.Expected != "" {
		msg += " does not resolve to a " + e.Expected
	}
	if e.Got != "" {
		msg += " (got " + e.Got + ")"
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
