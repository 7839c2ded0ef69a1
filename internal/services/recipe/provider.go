package recipe

import (
	"context"
	"strings"

	"github.com/dishcovery/api/internal/errors"
)

// ProviderType identifies an AI provider
type ProviderType string

const (
	ProviderGemini    ProviderType = "gemini"
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
)

// ImagePayload holds raw image bytes and their MIME type for one request.
type ImagePayload struct {
	Data     []byte
	MimeType string
}

// GenerateInput is the uniform input every provider adapter accepts.
// Exactly one of Image/Text must be set.
type GenerateInput struct {
	Image  *ImagePayload
	Text   string
	Prompt string
	Model  string
	APIKey string
}

// RawResponse is the vendor's raw text output plus call metadata.
type RawResponse struct {
	Text  string
	Model string
}

// Provider defines the uniform contract over the vendor APIs. Vendor-side
// failures surface as *ProviderError; a missing input is a caller bug and
// surfaces as a validation error instead.
type Provider interface {
	Generate(ctx context.Context, in GenerateInput) (*RawResponse, error)
}

// validate fails fast when the caller supplied neither an image nor a text
// prompt. This is a local bug, not a vendor failure, so it is deliberately
// not a ProviderError.
func (in GenerateInput) validate() error {
	if in.Image == nil && strings.TrimSpace(in.Text) == "" {
		return errors.NewValidationError(
			"No image or text prompt provided",
			"missing_input",
			"Supply an image or a text description of the dish.",
		)
	}
	return nil
}
