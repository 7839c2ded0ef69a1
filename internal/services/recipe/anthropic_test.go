package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newAnthropicTestProvider(handler http.HandlerFunc) (*AnthropicProvider, *httptest.Server) {
	srv := httptest.NewServer(handler)
	p := NewAnthropicProvider(5 * time.Second)
	p.baseURL = srv.URL
	return p, srv
}

func TestAnthropicGenerateTextMode(t *testing.T) {
	var gotReq anthropicRequest
	var gotKey, gotVersion string

	p, srv := newAnthropicTestProvider(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": `{"name": "Pad Thai"}`},
			},
		})
	})
	defer srv.Close()

	resp, err := p.Generate(context.Background(), GenerateInput{
		Text:   "pad thai",
		Prompt: "You are a chef.",
		Model:  "claude-sonnet-4-20250514",
		APIKey: "sk-ant-test",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if resp.Text != `{"name": "Pad Thai"}` {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.Model != "claude-sonnet-4-20250514" {
		t.Errorf("model = %q", resp.Model)
	}
	if gotKey != "sk-ant-test" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if gotVersion != anthropicVersion {
		t.Errorf("anthropic-version = %q", gotVersion)
	}
	if len(gotReq.Messages) != 1 || len(gotReq.Messages[0].Content) != 1 {
		t.Fatalf("unexpected message shape: %#v", gotReq.Messages)
	}
	part := gotReq.Messages[0].Content[0]
	if part.Type != "text" || !strings.Contains(part.Text, "Generate a recipe for: pad thai") {
		t.Errorf("text part = %#v", part)
	}
}

func TestAnthropicGenerateImageMode(t *testing.T) {
	var gotReq anthropicRequest

	p, srv := newAnthropicTestProvider(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "ok"}},
		})
	})
	defer srv.Close()

	_, err := p.Generate(context.Background(), GenerateInput{
		Image:  &ImagePayload{Data: []byte{0x89, 0x50}, MimeType: "image/png"},
		Prompt: "You are a chef.",
		Model:  "claude-sonnet-4-20250514",
		APIKey: "k",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	content := gotReq.Messages[0].Content
	if len(content) != 2 {
		t.Fatalf("expected image + text parts, got %d", len(content))
	}
	if content[0].Type != "image" || content[0].Source == nil {
		t.Errorf("first part should be the image, got %#v", content[0])
	}
	if content[0].Source.MediaType != "image/png" || content[0].Source.Type != "base64" {
		t.Errorf("image source = %#v", content[0].Source)
	}
	if content[1].Type != "text" || content[1].Text != "You are a chef." {
		t.Errorf("second part should be the prompt, got %#v", content[1])
	}
}

func TestAnthropicGenerateHTTPError(t *testing.T) {
	p, srv := newAnthropicTestProvider(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid x-api-key"}}`))
	})
	defer srv.Close()

	_, err := p.Generate(context.Background(), GenerateInput{
		Text: "soup", Prompt: "p", Model: "m", APIKey: "bad",
	})

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %T", err)
	}
	if pe.ErrorCode != "anthropic_error" {
		t.Errorf("code = %s", pe.ErrorCode)
	}
	if pe.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("status = %d", pe.HTTPStatus)
	}
	if !strings.Contains(pe.DebugDetail, "invalid x-api-key") {
		t.Errorf("vendor detail should land in DebugDetail, got %q", pe.DebugDetail)
	}
	if strings.Contains(pe.Message, "invalid x-api-key") {
		t.Errorf("vendor detail leaked into the user message: %q", pe.Message)
	}
}

func TestAnthropicGenerateEmptyResponse(t *testing.T) {
	p, srv := newAnthropicTestProvider(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "tool_use", "text": ""}},
		})
	})
	defer srv.Close()

	_, err := p.Generate(context.Background(), GenerateInput{
		Text: "soup", Prompt: "p", Model: "m", APIKey: "k",
	})

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %T", err)
	}
	if pe.ErrorCode != "empty_response" {
		t.Errorf("code = %s", pe.ErrorCode)
	}
}

func TestAnthropicGenerateMissingInput(t *testing.T) {
	p := NewAnthropicProvider(time.Second)

	_, err := p.Generate(context.Background(), GenerateInput{
		Prompt: "p", Model: "m", APIKey: "k",
	})
	if err == nil {
		t.Fatal("expected validation failure before any network call")
	}
}

func TestExtractAnthropicText(t *testing.T) {
	resp := anthropicResponse{}
	resp.Content = []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{
		{Type: "text", Text: "first"},
		{Type: "tool_use", Text: "skipped"},
		{Type: "text", Text: "second"},
	}

	if got := extractAnthropicText(resp); got != "first\nsecond" {
		t.Errorf("extractAnthropicText = %q", got)
	}
}
