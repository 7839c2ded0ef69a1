package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("missing image", "missing_file", "Attach an image file.")

	if err.Type != ErrorTypeValidation {
		t.Errorf("expected type %s, got %s", ErrorTypeValidation, err.Type)
	}
	if err.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", err.StatusCode)
	}
	if err.Code() != "missing_file" {
		t.Errorf("expected code missing_file, got %s", err.Code())
	}
	if err.Hint != "Attach an image file." {
		t.Errorf("unexpected hint: %s", err.Hint)
	}
	if err.Error() != "missing image" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("provider not found", "invalid_provider", "")

	if err.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", err.StatusCode)
	}
	if err.Type != ErrorTypeNotFound {
		t.Errorf("expected type %s, got %s", ErrorTypeNotFound, err.Type)
	}
}

func TestNewRecipeGenerationError(t *testing.T) {
	inner := errors.New("upstream exploded")
	err := NewRecipeGenerationError("generation failed", "gemini_error", inner)

	if err.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", err.StatusCode)
	}
	if !errors.Is(err, inner) {
		t.Error("expected wrapped error to be reachable via errors.Is")
	}
	if err.Error() != "generation failed: upstream exploded" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if err.Hint == "" {
		t.Error("expected a recovery hint")
	}
}

func TestNewInternalError(t *testing.T) {
	inner := errors.New("nil pointer dereference")
	err := NewInternalError(inner)

	if err.ErrorCode != "internal_error" {
		t.Errorf("expected code internal_error, got %s", err.ErrorCode)
	}
	if err.Message != "An unexpected error occurred" {
		t.Errorf("internal error message must stay generic, got %q", err.Message)
	}
	if !errors.Is(err, inner) {
		t.Error("expected wrapped error to be reachable via errors.Is")
	}
}
