package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidArgument, "vertex %d not found", 7)

	if err.Code != ErrCodeInvalidArgument {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidArgument)
	}

	if err.Message != "vertex 7 not found" {
		t.Errorf("Message = %v, want %v", err.Message, "vertex 7 not found")
	}

	expected := "INVALID_ARGUMENT: vertex 7 not found"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected token")
	err := Wrap(ErrCodeImport, cause, "gml import failed")

	if err.Code != ErrCodeImport {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeImport)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeUnsupported, "test"),
			code:     ErrCodeUnsupported,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeUnsupported, "test"),
			code:     ErrCodeInvalidState,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeImport, New(ErrCodeInvalidArgument, "inner"), "outer"),
			code:     ErrCodeImport,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("context: %w", NoSuchElement("edge 3")),
			code:     ErrCodeNoSuchElement,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidArgument,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidArgument,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      Unsupported("read-only"),
			expected: ErrCodeUnsupported,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeClassCast, "weight is not numeric"),
			expected: "weight is not numeric",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPositionError(t *testing.T) {
	cause := errors.New("unexpected ']'")

	t.Run("with line", func(t *testing.T) {
		err := &PositionError{Format: "gml", Offset: 40, Line: 3, Err: cause}
		expected := "gml: line 3: unexpected ']'"
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})

	t.Run("with offset only", func(t *testing.T) {
		err := &PositionError{Format: "json", Offset: 12, Err: cause}
		expected := "json: offset 12: unexpected ']'"
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})

	t.Run("unknown position", func(t *testing.T) {
		err := &PositionError{Format: "dot", Offset: -1, Err: cause}
		if err.Error() != "dot: unexpected ']'" {
			t.Errorf("Error() = %v", err.Error())
		}
		if !errors.Is(err, cause) {
			t.Error("errors.Is(err, cause) = false, want true")
		}
		if err.Code() != ErrCodeImport {
			t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeImport)
		}
	})
}
