package recipe

import (
	"errors"
	"fmt"
	"net/http"
)

// ProviderError represents a vendor-side failure translated to the uniform
// error shape. Message and Hint are safe for end users; DebugDetail carries
// the underlying vendor message and is only exposed in development mode.
type ProviderError struct {
	ErrorCode   string
	Message     string
	HTTPStatus  int
	Hint        string
	DebugDetail string
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.DebugDetail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.DebugDetail)
	}
	return e.Message
}

// Code returns the machine-readable error code
func (e *ProviderError) Code() string {
	return e.ErrorCode
}

// newEmptyResponseError is returned when a vendor call succeeds but yields
// no usable text.
func newEmptyResponseError(label string) *ProviderError {
	return &ProviderError{
		ErrorCode:  "empty_response",
		Message:    fmt.Sprintf("%s returned an empty response", label),
		HTTPStatus: http.StatusInternalServerError,
		Hint:       "Try again or switch to a different model.",
	}
}

// wrapVendorError converts any vendor SDK or transport error into a
// ProviderError with a vendor-specific code. An error that already is a
// ProviderError passes through unchanged so it is never double-wrapped.
// The original message survives only as DebugDetail.
func wrapVendorError(code, label string, err error) *ProviderError {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}
	return &ProviderError{
		ErrorCode:   code,
		Message:     fmt.Sprintf("%s request failed", label),
		HTTPStatus:  http.StatusInternalServerError,
		Hint:        "Check your API key and quota, then try again.",
		DebugDetail: err.Error(),
	}
}
