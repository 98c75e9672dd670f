package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidConfiguration, "minor angle %s", "too large")

	if err.Code != ErrCodeInvalidConfiguration {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfiguration)
	}

	if err.Message != "minor angle too large" {
		t.Errorf("Message = %v, want %v", err.Message, "minor angle too large")
	}

	expected := "INVALID_CONFIGURATION: minor angle too large"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := New(ErrCodeNodeNotFound, "node %q not in any group", "x")
	err := Wrap(ErrCodeInvalidInput, cause, "route edge 3")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
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
			err:      New(ErrCodeInvalidConfiguration, "test"),
			code:     ErrCodeInvalidConfiguration,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidConfiguration, "test"),
			code:     ErrCodeNodeNotFound,
			expected: false,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("layout: %w", New(ErrCodeGroupNotFound, "inner")),
			code:     ErrCodeGroupNotFound,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
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

func TestIsLookup(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"node", New(ErrCodeNodeNotFound, "x"), true},
		{"group", New(ErrCodeGroupNotFound, "x"), true},
		{"nested", Wrap(ErrCodeInvalidInput, New(ErrCodeNodeNotFound, "x"), "edge"), true},
		{"config", New(ErrCodeInvalidConfiguration, "x"), false},
		{"plain", errors.New("x"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLookup(tt.err); got != tt.want {
				t.Errorf("IsLookup() = %v, want %v", got, tt.want)
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
			err:      New(ErrCodeGroupNotFound, "test"),
			expected: ErrCodeGroupNotFound,
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
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
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
