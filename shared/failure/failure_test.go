package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"shareit/shared/failure"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "end must be after start",
	}

	if f.Error() != "end must be after start" {
		t.Errorf("expected error message to be 'end must be after start', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
	}{
		{
			name:    "MissingUserHeader",
			failure: failure.MissingUserHeader,
			code:    http.StatusBadRequest,
		},
		{
			name:    "InvalidUserHeader",
			failure: failure.InvalidUserHeader,
			code:    http.StatusBadRequest,
		},
		{
			name:    "InvalidIDParam",
			failure: failure.InvalidIDParam,
			code:    http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}

			if tt.failure.Message == "" {
				t.Error("expected non-empty message")
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "BadRequest",
			err:     failure.BadRequest(errors.New("validation failed")),
			code:    http.StatusBadRequest,
			message: "validation failed",
		},
		{
			name:    "BadRequestFromString",
			err:     failure.BadRequestFromString("unknown state: SOON"),
			code:    http.StatusBadRequest,
			message: "unknown state: SOON",
		},
		{
			name:    "InternalError",
			err:     failure.InternalError(errors.New("database connection failed")),
			code:    http.StatusInternalServerError,
			message: "database connection failed",
		},
		{
			name:    "NotFound",
			err:     failure.NotFound("booking not found"),
			code:    http.StatusNotFound,
			message: "booking not found",
		},
		{
			name:    "Conflict",
			err:     failure.Conflict("email already exists"),
			code:    http.StatusConflict,
			message: "email already exists",
		},
		{
			name:    "Forbidden",
			err:     failure.Forbidden("only the owner can approve a booking"),
			code:    http.StatusForbidden,
			message: "only the owner can approve a booking",
		},
		{
			name:    "Denied as forbidden",
			err:     failure.Denied("booking is not visible", false),
			code:    http.StatusForbidden,
			message: "booking is not visible",
		},
		{
			name:    "Denied as not found",
			err:     failure.Denied("booking is not visible", true),
			code:    http.StatusNotFound,
			message: "booking is not visible",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, f.Code)
			}

			if f.Message != tt.message {
				t.Errorf("expected message to be %q, got %q", tt.message, f.Message)
			}
		})
	}
}

func TestNilInputs(t *testing.T) {
	if err := failure.BadRequest(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	if err := failure.InternalError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("failed to approve booking: %w", failure.Forbidden("test")),
			expected: http.StatusForbidden,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestGetMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected string
	}{
		{
			name:     "wrapped failure drops the wrap chain",
			input:    fmt.Errorf("failed to approve booking: %w", failure.BadRequestFromString("booking already processed")),
			expected: "booking already processed",
		},
		{
			name:     "plain failure",
			input:    failure.NotFound("user not found"),
			expected: "user not found",
		},
		{
			name:     "plain error keeps its text",
			input:    errors.New("pq: connection refused"),
			expected: "pq: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := failure.GetMessage(tt.input); result != tt.expected {
				t.Errorf("expected message to be %q, got %q", tt.expected, result)
			}
		})
	}
}
