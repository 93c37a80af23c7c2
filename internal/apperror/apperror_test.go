package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFound_WrapsSentinel(t *testing.T) {
	err := NotFound("author", "abc123")

	if !errors.Is(err, ErrNotFound) {
		t.Errorf("NotFound() should wrap ErrNotFound, got %v", err)
	}
	if err.Message != "author not found with id abc123" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestValidationFailed_CarriesField(t *testing.T) {
	err := ValidationFailed("email", "email is required")

	if !errors.Is(err, ErrValidation) {
		t.Errorf("ValidationFailed() should wrap ErrValidation, got %v", err)
	}
	if err.Field != "email" {
		t.Errorf("Field = %q, want %q", err.Field, "email")
	}
}

func TestConflict_WrapsSentinel(t *testing.T) {
	err := Conflict("author", "email already registered")

	if !errors.Is(err, ErrConflict) {
		t.Errorf("Conflict() should wrap ErrConflict, got %v", err)
	}
}

func TestUnauthorized_WrapsSentinel(t *testing.T) {
	err := Unauthorized("valid authentication required")

	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Unauthorized() should wrap ErrUnauthorized, got %v", err)
	}
}

// Wrapping an AppError with fmt.Errorf must keep the sentinel reachable —
// this is how handler error mapping finds the status code.
func TestWrapped_SentinelStillReachable(t *testing.T) {
	inner := NotFound("book", "b1")
	outer := fmt.Errorf("fetching book: %w", inner)

	if !errors.Is(outer, ErrNotFound) {
		t.Error("wrapped AppError lost its sentinel")
	}

	var appErr *AppError
	if !errors.As(outer, &appErr) {
		t.Fatal("errors.As failed to extract *AppError")
	}
	if appErr.Message != inner.Message {
		t.Errorf("Message = %q, want %q", appErr.Message, inner.Message)
	}
}
