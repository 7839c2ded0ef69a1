package recipe

import (
	"context"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

func TestOpenAIGenerateMissingInput(t *testing.T) {
	p := NewOpenAIProvider(time.Second)

	_, err := p.Generate(context.Background(), GenerateInput{
		Prompt: "p", Model: "gpt-4o", APIKey: "k",
	})
	if err == nil {
		t.Fatal("expected validation failure before any network call")
	}
}

func TestExtractOpenAIText(t *testing.T) {
	tests := []struct {
		name string
		resp openai.ChatCompletionResponse
		want string
	}{
		{
			name: "first choice",
			resp: openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{
					{Message: openai.ChatCompletionMessage{Content: "  recipe text  "}},
				},
			},
			want: "recipe text",
		},
		{
			name: "skips empty choices",
			resp: openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{
					{Message: openai.ChatCompletionMessage{Content: "   "}},
					{Message: openai.ChatCompletionMessage{Content: "second"}},
				},
			},
			want: "second",
		},
		{
			name: "no choices",
			resp: openai.ChatCompletionResponse{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractOpenAIText(tt.resp); got != tt.want {
				t.Errorf("extractOpenAIText = %q, want %q", got, tt.want)
			}
		})
	}
}
