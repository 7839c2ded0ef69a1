package recipe

import (
	"context"
	"testing"
	"time"
)

func TestGeminiGenerateMissingInput(t *testing.T) {
	p := NewGeminiProvider(time.Second)

	_, err := p.Generate(context.Background(), GenerateInput{
		Prompt: "p", Model: "gemini-2.0-flash", APIKey: "k",
	})
	if err == nil {
		t.Fatal("expected validation failure before any network call")
	}
}
