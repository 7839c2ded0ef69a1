package recipe

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/dishcovery/api/internal/httpclient"
	"github.com/dishcovery/api/internal/metrics"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OpenAIProvider implements Provider for the OpenAI API.
type OpenAIProvider struct {
	httpClient *http.Client
}

// NewOpenAIProvider creates a new OpenAI recipe provider
func NewOpenAIProvider(timeout time.Duration) *OpenAIProvider {
	return &OpenAIProvider{httpClient: httpclient.NewInstrumentedClient(timeout)}
}

// Generate produces recipe text from an image or text description via OpenAI.
// Image mode sends a text part plus a base64 data-URL image part; text mode
// sends a single text message with the prompt and description concatenated.
func (p *OpenAIProvider) Generate(ctx context.Context, in GenerateInput) (*RawResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "openai")}
		metrics.AIGenerationDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	cfg := openai.DefaultConfig(in.APIKey)
	cfg.HTTPClient = p.httpClient
	client := openai.NewClientWithConfig(cfg)

	var message openai.ChatCompletionMessage
	if in.Image != nil {
		dataURL := "data:" + in.Image.MimeType + ";base64," +
			base64.StdEncoding.EncodeToString(in.Image.Data)
		message = openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: in.Prompt},
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
			},
		}
	} else {
		message = openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: in.Prompt + "\n\nGenerate a recipe for: " + in.Text,
		}
	}

	resp, err := client.CreateChatCompletion(
		httpclient.WithProvider(ctx, "OpenAI"),
		openai.ChatCompletionRequest{
			Model:    in.Model,
			Messages: []openai.ChatCompletionMessage{message},
		},
	)
	if err != nil {
		return nil, wrapVendorError("openai_error", "OpenAI", err)
	}

	text := extractOpenAIText(resp)
	if text == "" {
		return nil, newEmptyResponseError("OpenAI")
	}

	return &RawResponse{Text: text, Model: in.Model}, nil
}

// extractOpenAIText pulls the answer out of the response envelope, walking
// every choice until a non-empty one turns up. Returns "" when nothing is
// found; it never panics on a sparse envelope.
func extractOpenAIText(resp openai.ChatCompletionResponse) string {
	for _, choice := range resp.Choices {
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			return text
		}
	}
	return ""
}
