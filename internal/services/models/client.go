// Package models implements provider API key validation and model listing.
// It is independent of the generation path: one lightweight list-models call
// per vendor confirms the key and produces a ranked, human-friendly menu.
package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dishcovery/api/internal/httpclient"
	"github.com/dishcovery/api/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const validationTimeout = 10 * time.Second

// User-safe messages for transport failures. The raw error text is never
// shown to callers.
const (
	errMsgInvalidKey = "Invalid API key"
	errMsgTimeout    = "Request timed out. Please try again."
	errMsgConnection = "Unable to connect to the API. Please check your network connection."
	errMsgHTTP       = "The API returned an error. Please try again later."
	errMsgGeneric    = "Unable to validate API key. Please check your network connection and try again."
)

// ModelInfo is one entry in the model menu.
type ModelInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Result is the outcome of one key validation call.
type Result struct {
	Valid  bool        `json:"valid"`
	Models []ModelInfo `json:"models"`
	Error  string      `json:"error,omitempty"`
}

// Client validates provider API keys against each vendor's list-models
// endpoint. Base URLs are overridable for tests.
type Client struct {
	httpClient *http.Client

	GeminiBaseURL    string
	OpenAIBaseURL    string
	AnthropicBaseURL string
}

// NewClient creates a key validation client with a fixed 10s timeout.
func NewClient() *Client {
	return &Client{
		httpClient:       httpclient.NewInstrumentedClient(validationTimeout),
		GeminiBaseURL:    "https://generativelanguage.googleapis.com",
		OpenAIBaseURL:    "https://api.openai.com",
		AnthropicBaseURL: "https://api.anthropic.com",
	}
}

// Validate dispatches to the vendor-specific validation. An unknown provider
// id is a caller bug; the route shell resolves providers before calling.
func (c *Client) Validate(ctx context.Context, provider, apiKey string) (Result, error) {
	p := strings.ToLower(strings.TrimSpace(provider))
	metrics.KeyValidationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("provider", p)))

	switch p {
	case "gemini":
		return c.ValidateGemini(ctx, apiKey), nil
	case "openai":
		return c.ValidateOpenAI(ctx, apiKey), nil
	case "anthropic":
		return c.ValidateAnthropic(ctx, apiKey), nil
	default:
		return Result{}, fmt.Errorf("unknown provider %q", provider)
	}
}

// ValidateGemini checks a Gemini key. The key rides as a URL query parameter;
// that is how the AI Studio API authenticates. A 400 response means the key
// is invalid. Models are filtered to generation-capable Gemini 1.5+/2.x.
func (c *Client) ValidateGemini(ctx context.Context, apiKey string) Result {
	ctx = httpclient.WithProvider(ctx, "Gemini")

	req, err := http.NewRequestWithContext(ctx, "GET",
		c.GeminiBaseURL+"/v1beta/models?key="+url.QueryEscape(apiKey), nil)
	if err != nil {
		return Result{Valid: false, Error: errMsgGeneric}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Valid: false, Error: transportError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return Result{Valid: false, Error: errMsgInvalidKey}
	}
	if resp.StatusCode >= 400 {
		return Result{Valid: false, Error: errMsgHTTP}
	}

	var data struct {
		Models []struct {
			Name                       string   `json:"name"`
			SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Result{Valid: false, Error: errMsgGeneric}
	}

	infos := []ModelInfo{}
	for _, m := range data.Models {
		if !supportsGeneration(m.SupportedGenerationMethods) {
			continue
		}
		if !strings.Contains(m.Name, "gemini-1.5") && !strings.Contains(m.Name, "gemini-2") {
			continue
		}
		id := strings.TrimPrefix(m.Name, "models/")
		infos = append(infos, ModelInfo{ID: id, Name: FormatModelName(id)})
	}

	return Result{Valid: true, Models: SortGeminiModels(infos)}
}

// ValidateOpenAI checks an OpenAI key via a bearer header. A 401 means the
// key is invalid. Models are filtered to vision-capable families.
func (c *Client) ValidateOpenAI(ctx context.Context, apiKey string) Result {
	ctx = httpclient.WithProvider(ctx, "OpenAI")

	req, err := http.NewRequestWithContext(ctx, "GET", c.OpenAIBaseURL+"/v1/models", nil)
	if err != nil {
		return Result{Valid: false, Error: errMsgGeneric}
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Valid: false, Error: transportError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return Result{Valid: false, Error: errMsgInvalidKey}
	}
	if resp.StatusCode >= 400 {
		return Result{Valid: false, Error: errMsgHTTP}
	}

	var data struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Result{Valid: false, Error: errMsgGeneric}
	}

	infos := []ModelInfo{}
	for _, m := range data.Data {
		if !hasVisionPrefix(m.ID) {
			continue
		}
		infos = append(infos, ModelInfo{ID: m.ID, Name: FormatModelName(m.ID)})
	}

	return Result{Valid: true, Models: SortOpenAIModels(infos)}
}

// ValidateAnthropic checks an Anthropic key via the x-api-key header plus the
// required version header. A 401 means the key is invalid. The full catalog
// is kept; every Claude model has vision.
func (c *Client) ValidateAnthropic(ctx context.Context, apiKey string) Result {
	ctx = httpclient.WithProvider(ctx, "Anthropic")

	req, err := http.NewRequestWithContext(ctx, "GET", c.AnthropicBaseURL+"/v1/models", nil)
	if err != nil {
		return Result{Valid: false, Error: errMsgGeneric}
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Valid: false, Error: transportError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return Result{Valid: false, Error: errMsgInvalidKey}
	}
	if resp.StatusCode >= 400 {
		return Result{Valid: false, Error: errMsgHTTP}
	}

	var data struct {
		Data []struct {
			ID          string `json:"id"`
			DisplayName string `json:"display_name"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Result{Valid: false, Error: errMsgGeneric}
	}

	infos := []ModelInfo{}
	for _, m := range data.Data {
		name := m.DisplayName
		if name == "" {
			name = FormatModelName(m.ID)
		}
		infos = append(infos, ModelInfo{ID: m.ID, Name: name})
	}

	return Result{Valid: true, Models: SortAnthropicModels(infos)}
}

func supportsGeneration(methods []string) bool {
	for _, m := range methods {
		if m == "generateContent" {
			return true
		}
	}
	return false
}

var visionPrefixes = []string{"gpt-4o", "gpt-4-turbo", "gpt-4-vision"}

func hasVisionPrefix(id string) bool {
	for _, p := range visionPrefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}

// transportError converts a request error to a fixed user-safe message.
func transportError(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return errMsgTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errMsgConnection
	}
	return errMsgGeneric
}
