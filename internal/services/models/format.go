package models

import "strings"

// gptAcronyms are tokens kept uppercase in GPT model names.
var gptAcronyms = map[string]bool{
	"gpt": true,
	"4o":  true,
	"4":   true,
	"3.5": true,
}

// FormatModelName converts a model identifier to a human-readable display
// name, e.g. gpt-4o -> "GPT 4O", gemini-2.0-flash-exp -> "Gemini 2.0 Flash
// Exp", claude-sonnet-4-20250514 -> "Claude Sonnet 4 20250514".
func FormatModelName(modelID string) string {
	if strings.Contains(strings.ToLower(modelID), "gpt") {
		parts := strings.Split(modelID, "-")
		formatted := make([]string, 0, len(parts))
		for _, p := range parts {
			if gptAcronyms[strings.ToLower(p)] {
				formatted = append(formatted, strings.ToUpper(p))
			} else {
				formatted = append(formatted, capitalize(p))
			}
		}
		return strings.Join(formatted, " ")
	}

	replaced := strings.NewReplacer("-", " ", "_", " ").Replace(modelID)
	parts := strings.Fields(replaced)
	formatted := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) <= 2 {
			formatted = append(formatted, strings.ToUpper(p))
		} else {
			formatted = append(formatted, capitalize(p))
		}
	}
	return strings.Join(formatted, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
