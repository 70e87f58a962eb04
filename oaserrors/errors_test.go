package oaserrors

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &ParseError{
			Path:    "/path/to/swagger.yml",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   cause,
		}

		msg := err.Error()
		if msg != "parse error in /path/to/swagger.yml at line 42, column 10: invalid syntax: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with line only", func(t *testing.T) {
		err := &ParseError{Line: 10}
		if err.Error() != "parse error at line 10" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrParse only", func(t *testing.T) {
		err := &ParseError{Message: "test"}
		if !errors.Is(err, ErrParse) {
			t.Error("ParseError should match ErrParse")
		}
		if errors.Is(err, ErrConfig) || errors.Is(err, ErrWrite) {
			t.Error("ParseError should not match other sentinels")
		}
	})

	t.Run("As extracts ParseError through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("parser: %w", &ParseError{Path: "swagger.json"})
		var perr *ParseError
		if !errors.As(wrapped, &perr) {
			t.Fatal("errors.As should find ParseError")
		}
		if perr.Path != "swagger.json" {
			t.Errorf("unexpected path: %s", perr.Path)
		}
	})
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{ResourceType: "file_size", Limit: 100, Actual: 250}
	if err.Error() != "resource limit exceeded: file_size (limit: 100, actual: 250)" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrResourceLimit) {
		t.Error("ResourceLimitError should match ErrResourceLimit")
	}
	if err.Unwrap() != nil {
		t.Error("Unwrap should return nil")
	}
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := &ConfigError{Option: "json_indent", Value: -1, Message: "must not be negative"}
		if err.Error() != "configuration error for json_indent (value: -1): must not be negative" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrConfig", func(t *testing.T) {
		if !errors.Is(&ConfigError{}, ErrConfig) {
			t.Error("ConfigError should match ErrConfig")
		}
	})
}

func TestWriteError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &WriteError{Path: "swagger/swagger.yml", Format: "yaml", Message: "rename failed", Cause: os.ErrPermission}
		want := "write error (yaml) for swagger/swagger.yml: rename failed: permission denied"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrWrite and cause", func(t *testing.T) {
		err := &WriteError{Cause: os.ErrPermission}
		if !errors.Is(err, ErrWrite) {
			t.Error("WriteError should match ErrWrite")
		}
		if !errors.Is(err, os.ErrPermission) {
			t.Error("WriteError should unwrap to its cause")
		}
	})
}
