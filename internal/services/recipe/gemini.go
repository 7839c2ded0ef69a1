package recipe

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dishcovery/api/internal/httpclient"
	"github.com/dishcovery/api/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"
)

// GeminiProvider implements Provider for the Google Gemini API. The API key
// travels in the client configuration rather than a request header; that is
// how the Gemini SDK authenticates against AI Studio.
type GeminiProvider struct {
	httpClient *http.Client
}

// NewGeminiProvider creates a new Gemini recipe provider
func NewGeminiProvider(timeout time.Duration) *GeminiProvider {
	return &GeminiProvider{httpClient: httpclient.NewInstrumentedClient(timeout)}
}

// Generate produces recipe text from an image or text description via Gemini.
func (p *GeminiProvider) Generate(ctx context.Context, in GenerateInput) (*RawResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "gemini")}
		metrics.AIGenerationDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	ctx = httpclient.WithProvider(ctx, "Gemini")

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     in.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: p.httpClient,
	})
	if err != nil {
		return nil, wrapVendorError("gemini_error", "Gemini", err)
	}

	var parts []*genai.Part
	if in.Image != nil {
		parts = []*genai.Part{
			genai.NewPartFromText(in.Prompt),
			genai.NewPartFromBytes(in.Image.Data, in.Image.MimeType),
		}
	} else {
		parts = []*genai.Part{
			genai.NewPartFromText(in.Prompt + ". Generate a recipe for: " + in.Text),
		}
	}

	resp, err := client.Models.GenerateContent(ctx, in.Model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil)
	if err != nil {
		return nil, wrapVendorError("gemini_error", "Gemini", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, newEmptyResponseError("Gemini")
	}

	return &RawResponse{Text: text, Model: in.Model}, nil
}
