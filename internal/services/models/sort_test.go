package models

import "testing"

func ids(models []ModelInfo) []string {
	out := make([]string, len(models))
	for i, m := range models {
		out[i] = m.ID
	}
	return out
}

func fromIDs(in []string) []ModelInfo {
	out := make([]ModelInfo, len(in))
	for i, id := range in {
		out[i] = ModelInfo{ID: id}
	}
	return out
}

func assertOrder(t *testing.T, got []ModelInfo, want []string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %d models, want %d: %v", len(gotIDs), len(want), gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("order mismatch at %d:\n got %v\nwant %v", i, gotIDs, want)
		}
	}
}

func TestSortOpenAIModels(t *testing.T) {
	in := fromIDs([]string{
		"gpt-4-vision-preview",
		"gpt-4o-mini",
		"gpt-4-turbo",
		"gpt-4o",
		"gpt-4o-2024-08-06",
	})

	got := SortOpenAIModels(in)

	assertOrder(t, got, []string{
		"gpt-4o",            // exact top priority
		"gpt-4o-2024-08-06", // prefix variant of gpt-4o
		"gpt-4o-mini",
		"gpt-4-turbo",
		"gpt-4-vision-preview",
	})
}

func TestSortGeminiModels(t *testing.T) {
	in := fromIDs([]string{
		"gemini-1.5-flash",
		"gemini-2.7-ultra",
		"gemini-exp-1206",
		"gemini-2.0-flash",
		"gemini-2.0-flash-exp",
		"gemini-2.5-pro",
	})

	got := SortGeminiModels(in)

	assertOrder(t, got, []string{
		"gemini-2.0-flash-exp",
		"gemini-2.5-pro",
		"gemini-2.0-flash",
		"gemini-1.5-flash",
		"gemini-2.7-ultra", // unlisted 2.x lands in the catchall band
		"gemini-exp-1206",  // unknown sorts last
	})
}

func TestSortGeminiPrefixVariantAfterExact(t *testing.T) {
	in := fromIDs([]string{
		"gemini-2.0-flash-001",
		"gemini-2.0-flash",
	})

	got := SortGeminiModels(in)
	assertOrder(t, got, []string{"gemini-2.0-flash", "gemini-2.0-flash-001"})
}

func TestSortAnthropicModels(t *testing.T) {
	in := fromIDs([]string{
		"claude-haiku-3-5-20241022",
		"claude-opus-4-20250514",
		"claude-sonnet-4-20250514",
		"claude-sonnet-3-7-20250219",
		"claude-2.1",
	})

	got := SortAnthropicModels(in)

	assertOrder(t, got, []string{
		"claude-sonnet-4-20250514",   // sonnet family first, newest first
		"claude-sonnet-3-7-20250219",
		"claude-opus-4-20250514",
		"claude-haiku-3-5-20241022",
		"claude-2.1", // no family keyword sorts last
	})
}

func TestSortAnthropicUndatedSortsOldest(t *testing.T) {
	in := fromIDs([]string{
		"claude-sonnet-latest",
		"claude-sonnet-4-20250514",
	})

	got := SortAnthropicModels(in)
	assertOrder(t, got, []string{"claude-sonnet-4-20250514", "claude-sonnet-latest"})
}

func TestSortStability(t *testing.T) {
	// Unknown ids with equal rank fall back to lexicographic order.
	in := fromIDs([]string{"o1-preview", "chatgpt-4o-latest", "davinci"})

	got := SortOpenAIModels(in)
	assertOrder(t, got, []string{"chatgpt-4o-latest", "davinci", "o1-preview"})
}
