package rpcerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ParseError{
			Path:    "openrpc.json",
			Message: "invalid syntax",
			Cause:   errors.New("underlying error"),
		}
		if err.Error() != "parse error in openrpc.json: invalid syntax: underlying error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if err.Unwrap() != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrParse only", func(t *testing.T) {
		err := &ParseError{}
		if !errors.Is(err, ErrParse) {
			t.Error("ParseError should match ErrParse")
		}
		if errors.Is(err, ErrValidation) {
			t.Error("ParseError should not match ErrValidation")
		}
	})
}

func TestValidationError(t *testing.T) {
	t.Run("No violations", func(t *testing.T) {
		err := &ValidationError{}
		if err.Error() != "validation error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Single violation", func(t *testing.T) {
		err := &ValidationError{Violations: []Violation{{Path: "info", Message: "missing required field 'title'"}}}
		if err.Error() != "validation error: info: missing required field 'title'" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Multiple violations are all reported", func(t *testing.T) {
		err := &ValidationError{Violations: []Violation{
			{Message: "missing required field 'openrpc'"},
			{Message: "missing required field 'methods'"},
		}}
		want := "validation error: 2 violations: missing required field 'openrpc'; missing required field 'methods'"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("As extracts ValidationError through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("loading: %w", &ValidationError{Violations: []Violation{{Message: "x"}}})
		var verr *ValidationError
		if !errors.As(wrapped, &verr) {
			t.Fatal("errors.As should extract ValidationError")
		}
		if len(verr.Violations) != 1 {
			t.Errorf("expected 1 violation, got %d", len(verr.Violations))
		}
		if !errors.Is(wrapped, ErrValidation) {
			t.Error("wrapped ValidationError should match ErrValidation")
		}
	})
}

func TestResolutionError(t *testing.T) {
	t.Run("Error message names pointer and segment", func(t *testing.T) {
		err := &ResolutionError{Pointer: "#/components/schemas/Missing", Segment: "Missing"}
		want := `resolution error: #/components/schemas/Missing (missing segment "Missing")`
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrResolution only", func(t *testing.T) {
		err := &ResolutionError{Pointer: "#/x"}
		if !errors.Is(err, ErrResolution) {
			t.Error("ResolutionError should match ErrResolution")
		}
		if errors.Is(err, ErrShape) {
			t.Error("ResolutionError should not match ErrShape")
		}
	})

	t.Run("Unwrap returns nil when no cause", func(t *testing.T) {
		err := &ResolutionError{}
		if err.Unwrap() != nil {
			t.Error("Unwrap should return nil when no cause")
		}
	})
}

func TestShapeError(t *testing.T) {
	err := &ShapeError{Pointer: "#/info/title", Expected: "ContentDescriptor", Got: "string"}
	want := "shape error: #/info/title does not resolve to a ContentDescriptor (got string)"
	if err.Error() != want {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrShape) {
		t.Error("ShapeError should match ErrShape")
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "input", Value: 2, Message: "must specify exactly one input source"}
	want := "configuration error for input (value: 2): must specify exactly one input source"
	if err.Error() != want {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrConfig) {
		t.Error("ConfigError should match ErrConfig")
	}
}
