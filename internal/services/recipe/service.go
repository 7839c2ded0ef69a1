package recipe

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dishcovery/api/internal/config"
	"github.com/dishcovery/api/internal/errors"
	"github.com/dishcovery/api/internal/metrics"
	"github.com/dishcovery/api/internal/services/ai"
	"github.com/dishcovery/api/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

// GenerationRequest is the normalized inbound request assembled by the route
// shell. Lives for one request only; never persisted.
type GenerationRequest struct {
	Image               *ImagePayload
	TextPrompt          string
	Language            string
	DietaryRestrictions string
	CuisinePreference   string
	Provider            string
	APIKey              string
	Model               string
}

// Meta describes which provider and options produced a result.
type Meta struct {
	Provider            string `json:"provider"`
	ProviderLabel       string `json:"providerLabel"`
	Model               string `json:"model"`
	Language            string `json:"language"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
	CuisinePreference   string `json:"cuisinePreference"`
}

// GenerationResult is the outcome of one generation request.
type GenerationResult struct {
	Recipe  *Recipe
	Meta    Meta
	Warning string
}

// Service orchestrates one synchronous generation: resolve the provider,
// build the prompt, call the adapter, normalize the response.
type Service struct {
	cfg      *config.Config
	registry *Registry
}

// NewService creates a new generation service
func NewService(cfg *config.Config, registry *Registry) *Service {
	return &Service{cfg: cfg, registry: registry}
}

// Generate runs the full pipeline for one request. Validation failures and
// vendor failures come back as *errors.AppError and *ProviderError
// respectively; a model response that cannot be decoded is not a failure and
// degrades to a fallback recipe plus a warning.
func (s *Service) Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	providerID := req.Provider
	if providerID == "" {
		providerID = s.cfg.Providers.Default
	}

	desc, ok := s.registry.Resolve(providerID)
	if !ok {
		return nil, errors.NewValidationError(
			fmt.Sprintf("Unsupported provider: %s", providerID),
			"invalid_provider",
			"Supported providers are gemini, openai and anthropic.",
		)
	}

	if req.Image == nil && strings.TrimSpace(req.TextPrompt) == "" {
		return nil, errors.NewValidationError(
			"No image or text prompt provided",
			"missing_input",
			"Supply an image or a text description of the dish.",
		)
	}

	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = s.registry.KeyFor(string(desc.ID))
	}
	if apiKey == "" {
		return nil, errors.NewValidationError(
			fmt.Sprintf("No API key available for %s", desc.Label),
			"missing_api_key",
			desc.KeyHint,
		)
	}

	model := req.Model
	if model == "" {
		model = desc.DefaultModel
	}

	language := req.Language
	if language == "" {
		language = s.cfg.DefaultLanguage
	}

	prompt := ai.BuildRecipePrompt(language, req.DietaryRestrictions, req.CuisinePreference)

	// Image wins when the caller sent both.
	in := GenerateInput{Prompt: prompt, Model: model, APIKey: apiKey}
	if req.Image != nil {
		in.Image = req.Image
	} else {
		in.Text = strings.TrimSpace(req.TextPrompt)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.GenerationTimeout)
	defer cancel()

	tracer := telemetry.Tracer("recipe")
	ctx, span := tracer.Start(ctx, fmt.Sprintf("generate:%s", desc.ID))
	defer span.End()
	span.SetAttributes(
		attribute.String("provider", string(desc.ID)),
		attribute.String("model", model),
		attribute.Bool("image_input", req.Image != nil),
	)

	raw, err := desc.Provider.Generate(ctx, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		var provErr *ProviderError
		var appErr *errors.AppError
		if !stderrors.As(err, &provErr) && !stderrors.As(err, &appErr) {
			// Adapters classify their own failures; anything else reaching
			// here is an unclassified bug and must not leak raw to callers.
			return nil, errors.NewRecipeGenerationError("Recipe generation failed", "internal_error", err)
		}
		return nil, err
	}

	rec, warning := Parse(raw.Text)

	attrs := []attribute.KeyValue{attribute.String("provider", string(desc.ID))}
	metrics.RecipeGenerationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	if warning != "" {
		metrics.ParseFallbacksTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
		slog.Warn("Model response fell back to raw text",
			"provider", desc.ID,
			"model", raw.Model,
		)
	}

	return &GenerationResult{
		Recipe: rec,
		Meta: Meta{
			Provider:            string(desc.ID),
			ProviderLabel:       desc.Label,
			Model:               raw.Model,
			Language:            language,
			DietaryRestrictions: req.DietaryRestrictions,
			CuisinePreference:   req.CuisinePreference,
		},
		Warning: warning,
	}, nil
}
