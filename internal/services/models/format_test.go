package models

import "testing"

func TestFormatModelName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"gpt-4o", "GPT 4O"},
		{"gpt-4o-mini", "GPT 4O Mini"},
		{"gpt-4-turbo", "GPT 4 Turbo"},
		{"gpt-3.5-turbo", "GPT 3.5 Turbo"},
		{"gemini-2.0-flash-exp", "Gemini 2.0 Flash Exp"},
		{"gemini-1.5-pro", "Gemini 1.5 Pro"},
		{"claude-sonnet-4-20250514", "Claude Sonnet 4 20250514"},
		{"model_with_underscores", "Model With Underscores"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := FormatModelName(tt.id); got != tt.want {
				t.Errorf("FormatModelName(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	if got := capitalize("flash"); got != "Flash" {
		t.Errorf("capitalize(flash) = %q", got)
	}
	if got := capitalize("EXP"); got != "Exp" {
		t.Errorf("capitalize(EXP) = %q", got)
	}
	if got := capitalize(""); got != "" {
		t.Errorf("capitalize empty = %q", got)
	}
}
