package recipe

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dishcovery/api/internal/httpclient"
	"github.com/dishcovery/api/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const anthropicVersion = "2023-06-01"

// AnthropicProvider implements Provider for the Anthropic Messages API.
// Auth rides in a dedicated x-api-key header plus a required version header.
type AnthropicProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewAnthropicProvider creates a new Anthropic recipe provider
func NewAnthropicProvider(timeout time.Duration) *AnthropicProvider {
	return &AnthropicProvider{
		httpClient: httpclient.NewInstrumentedClient(timeout),
		baseURL:    "https://api.anthropic.com",
	}
}

type anthropicImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicContentPart struct {
	Type   string                `json:"type"`
	Text   string                `json:"text,omitempty"`
	Source *anthropicImageSource `json:"source,omitempty"`
}

type anthropicMessage struct {
	Role    string                 `json:"role"`
	Content []anthropicContentPart `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Generate produces recipe text from an image or text description via the
// Anthropic Messages API. Image mode sends the image part first, then the
// text part; text mode sends a single text part.
func (p *AnthropicProvider) Generate(ctx context.Context, in GenerateInput) (*RawResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "anthropic")}
		metrics.AIGenerationDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	var content []anthropicContentPart
	if in.Image != nil {
		content = []anthropicContentPart{
			{
				Type: "image",
				Source: &anthropicImageSource{
					Type:      "base64",
					MediaType: in.Image.MimeType,
					Data:      base64.StdEncoding.EncodeToString(in.Image.Data),
				},
			},
			{Type: "text", Text: in.Prompt},
		}
	} else {
		content = []anthropicContentPart{
			{Type: "text", Text: in.Prompt + "\n\nGenerate a recipe for: " + in.Text},
		}
	}

	body, _ := json.Marshal(anthropicRequest{
		Model:     in.Model,
		MaxTokens: 4096,
		Messages:  []anthropicMessage{{Role: "user", Content: content}},
	})

	httpReq, err := http.NewRequestWithContext(
		httpclient.WithProvider(ctx, "Anthropic"),
		"POST", p.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, wrapVendorError("anthropic_error", "Anthropic", err)
	}
	httpReq.Header.Set("x-api-key", in.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, wrapVendorError("anthropic_error", "Anthropic", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapVendorError("anthropic_error", "Anthropic", err)
	}

	if resp.StatusCode >= 400 {
		return nil, wrapVendorError("anthropic_error", "Anthropic",
			fmt.Errorf("Anthropic API error (status %d): %s", resp.StatusCode, string(respBody)))
	}

	var msgResp anthropicResponse
	if err := json.Unmarshal(respBody, &msgResp); err != nil {
		return nil, wrapVendorError("anthropic_error", "Anthropic", err)
	}

	text := extractAnthropicText(msgResp)
	if text == "" {
		return nil, newEmptyResponseError("Anthropic")
	}

	return &RawResponse{Text: text, Model: in.Model}, nil
}

// extractAnthropicText concatenates every content entry of type "text",
// joined by newline and trimmed. Returns "" when nothing is found.
func extractAnthropicText(resp anthropicResponse) string {
	var parts []string
	for _, c := range resp.Content {
		if c.Type == "text" {
			parts = append(parts, c.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
