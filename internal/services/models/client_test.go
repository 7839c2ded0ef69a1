package models

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/dishcovery/api/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := metrics.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestValidateGemini(t *testing.T) {
	t.Run("valid key returns filtered sorted models", func(t *testing.T) {
		var gotKey string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.URL.Query().Get("key")
			w.Write([]byte(`{"models": [
				{"name": "models/gemini-2.0-flash", "supportedGenerationMethods": ["generateContent"]},
				{"name": "models/gemini-2.0-flash-exp", "supportedGenerationMethods": ["generateContent"]},
				{"name": "models/embedding-001", "supportedGenerationMethods": ["embedContent"]},
				{"name": "models/gemini-1.0-pro", "supportedGenerationMethods": ["generateContent"]}
			]}`))
		}))
		defer srv.Close()

		c := NewClient()
		c.GeminiBaseURL = srv.URL

		result := c.ValidateGemini(context.Background(), "test-key")

		require.True(t, result.Valid)
		assert.Equal(t, "test-key", gotKey)
		require.Len(t, result.Models, 2, "embedding and 1.0 models must be filtered out")
		assert.Equal(t, "gemini-2.0-flash-exp", result.Models[0].ID, "exp model ranks first")
		assert.Equal(t, "gemini-2.0-flash", result.Models[1].ID)
		assert.Equal(t, "Gemini 2.0 Flash", result.Models[1].Name)
	})

	t.Run("bad key yields 400", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": {"message": "API key not valid"}}`))
		}))
		defer srv.Close()

		c := NewClient()
		c.GeminiBaseURL = srv.URL

		result := c.ValidateGemini(context.Background(), "bad")
		assert.False(t, result.Valid)
		assert.Equal(t, errMsgInvalidKey, result.Error)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := NewClient()
		c.GeminiBaseURL = srv.URL

		result := c.ValidateGemini(context.Background(), "k")
		assert.False(t, result.Valid)
		assert.Equal(t, errMsgHTTP, result.Error)
	})

	t.Run("connection refused", func(t *testing.T) {
		c := NewClient()
		c.GeminiBaseURL = "http://127.0.0.1:1"

		result := c.ValidateGemini(context.Background(), "k")
		assert.False(t, result.Valid)
		assert.Equal(t, errMsgConnection, result.Error)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		c := NewClient()
		c.GeminiBaseURL = srv.URL

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		result := c.ValidateGemini(ctx, "k")
		assert.False(t, result.Valid)
		assert.Equal(t, errMsgTimeout, result.Error)
	})
}

func TestValidateOpenAI(t *testing.T) {
	t.Run("valid key returns vision models", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"data": [
				{"id": "gpt-4o-mini"},
				{"id": "gpt-4o"},
				{"id": "whisper-1"},
				{"id": "gpt-3.5-turbo"}
			]}`))
		}))
		defer srv.Close()

		c := NewClient()
		c.OpenAIBaseURL = srv.URL

		result := c.ValidateOpenAI(context.Background(), "sk-test")

		require.True(t, result.Valid)
		assert.Equal(t, "Bearer sk-test", gotAuth)
		require.Len(t, result.Models, 2, "non-vision models must be filtered out")
		assert.Equal(t, "gpt-4o", result.Models[0].ID)
		assert.Equal(t, "GPT 4O", result.Models[0].Name)
		assert.Equal(t, "gpt-4o-mini", result.Models[1].ID)
	})

	t.Run("bad key yields 401", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		c := NewClient()
		c.OpenAIBaseURL = srv.URL

		result := c.ValidateOpenAI(context.Background(), "bad")
		assert.False(t, result.Valid)
		assert.Equal(t, errMsgInvalidKey, result.Error)
	})
}

func TestValidateAnthropic(t *testing.T) {
	t.Run("valid key keeps every model and prefers display names", func(t *testing.T) {
		var gotKey, gotVersion string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("x-api-key")
			gotVersion = r.Header.Get("anthropic-version")
			w.Write([]byte(`{"data": [
				{"id": "claude-haiku-3-5-20241022", "display_name": "Claude Haiku 3.5"},
				{"id": "claude-sonnet-4-20250514", "display_name": "Claude Sonnet 4"},
				{"id": "claude-opus-4-20250514", "display_name": ""}
			]}`))
		}))
		defer srv.Close()

		c := NewClient()
		c.AnthropicBaseURL = srv.URL

		result := c.ValidateAnthropic(context.Background(), "sk-ant-test")

		require.True(t, result.Valid)
		assert.Equal(t, "sk-ant-test", gotKey)
		assert.Equal(t, "2023-06-01", gotVersion)
		require.Len(t, result.Models, 3, "anthropic keeps the full catalog")
		assert.Equal(t, "claude-sonnet-4-20250514", result.Models[0].ID, "sonnet family first")
		assert.Equal(t, "Claude Sonnet 4", result.Models[0].Name)
		assert.Equal(t, "claude-opus-4-20250514", result.Models[1].ID)
		assert.Equal(t, "Claude Opus 4 20250514", result.Models[1].Name, "empty display_name falls back to formatting")
		assert.Equal(t, "claude-haiku-3-5-20241022", result.Models[2].ID)
	})

	t.Run("bad key yields 401", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		c := NewClient()
		c.AnthropicBaseURL = srv.URL

		result := c.ValidateAnthropic(context.Background(), "bad")
		assert.False(t, result.Valid)
		assert.Equal(t, errMsgInvalidKey, result.Error)
	})
}

func TestValidateDispatch(t *testing.T) {
	c := NewClient()

	_, err := c.Validate(context.Background(), "grok", "key")
	require.Error(t, err, "unknown providers are a caller bug, not a Result")
}
