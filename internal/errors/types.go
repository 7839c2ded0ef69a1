package errors

import (
	"fmt"
	"net/http"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "VALIDATION_ERROR"
	ErrorTypeRecipeGeneration ErrorType = "RECIPE_GENERATION_ERROR"
	ErrorTypeNotFound         ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeInternal         ErrorType = "INTERNAL_ERROR"
)

// AppError represents a structured error for the application.
// Message and Hint are safe to show to end users; Debug carries underlying
// detail and is only surfaced when development mode is active.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"statusCode"`
	ErrorCode  string    `json:"errorCode"`
	Hint       string    `json:"hint,omitempty"`
	Debug      string    `json:"-"`
	Err        error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error, if any
func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the application-specific error code
func (e *AppError) Code() string {
	return e.ErrorCode
}

// NewValidationError creates a new validation error (400)
func NewValidationError(message string, errorCode string, hint string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		ErrorCode:  errorCode,
		Hint:       hint,
	}
}

// NewNotFoundError creates a new not found error (404)
func NewNotFoundError(message string, errorCode string, hint string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
		ErrorCode:  errorCode,
		Hint:       hint,
	}
}

// NewRecipeGenerationError creates a new recipe generation error (500)
func NewRecipeGenerationError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeRecipeGeneration,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  errorCode,
		Hint:       "Try adjusting the input parameters or wait for the service to be available.",
		Err:        err,
	}
}

// NewInternalError creates a new internal error (500). The underlying error
// is retained for logging but never rendered to the caller.
func NewInternalError(err error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    "An unexpected error occurred",
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  "internal_error",
		Err:        err,
	}
}
