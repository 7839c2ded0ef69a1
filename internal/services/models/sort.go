package models

import (
	"sort"
	"strings"
)

// priorityEntry pairs a known model identifier with its recommendation rank.
// Entries are ordered; the first prefix match wins for variant ids.
type priorityEntry struct {
	id   string
	rank int
}

var openaiPriority = []priorityEntry{
	{"gpt-4o", 0},
	{"gpt-4o-mini", 1},
	{"gpt-4-turbo", 2},
	{"gpt-4-vision", 3},
}

var geminiPriority = []priorityEntry{
	{"gemini-2.0-flash-exp", 0},
	{"gemini-2.5-pro", 1},
	{"gemini-2.0-flash", 2},
	{"gemini-1.5-pro", 3},
	{"gemini-1.5-flash", 4},
}

const (
	rankGeminiTwoCatchall = 50
	rankUnknown           = 100
)

// sortKey is a composite ordering key: table rank first, exact matches ahead
// of prefix-matched variants, model id as the final tiebreak.
type sortKey struct {
	rank  int
	match int // 0 exact, 1 prefix, 2 none
	id    string
}

func (a sortKey) less(b sortKey) bool {
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	if a.match != b.match {
		return a.match < b.match
	}
	return a.id < b.id
}

func tableKey(id string, table []priorityEntry, catchall func(string) int) sortKey {
	for _, e := range table {
		if id == e.id {
			return sortKey{rank: e.rank, match: 0, id: id}
		}
	}
	for _, e := range table {
		if strings.HasPrefix(id, e.id) {
			return sortKey{rank: e.rank, match: 1, id: id}
		}
	}
	rank := rankUnknown
	if catchall != nil {
		rank = catchall(id)
	}
	return sortKey{rank: rank, match: 2, id: id}
}

// SortOpenAIModels orders OpenAI models by recommendation priority:
// gpt-4o > gpt-4o-mini > gpt-4-turbo > gpt-4-vision > everything else.
func SortOpenAIModels(models []ModelInfo) []ModelInfo {
	sort.SliceStable(models, func(i, j int) bool {
		return tableKey(models[i].ID, openaiPriority, nil).
			less(tableKey(models[j].ID, openaiPriority, nil))
	})
	return models
}

// SortGeminiModels orders Gemini models by recommendation priority, with
// unlisted 2.x models ahead of unknown identifiers.
func SortGeminiModels(models []ModelInfo) []ModelInfo {
	catchall := func(id string) int {
		if strings.Contains(id, "gemini-2") {
			return rankGeminiTwoCatchall
		}
		return rankUnknown
	}
	sort.SliceStable(models, func(i, j int) bool {
		return tableKey(models[i].ID, geminiPriority, catchall).
			less(tableKey(models[j].ID, geminiPriority, catchall))
	})
	return models
}

// SortAnthropicModels orders Anthropic models by family (sonnet, opus,
// haiku, other) and within a family by the 8-digit date suffix, newest
// first. Ids without a date sort as oldest.
func SortAnthropicModels(models []ModelInfo) []ModelInfo {
	sort.SliceStable(models, func(i, j int) bool {
		fi, di := anthropicKey(models[i].ID)
		fj, dj := anthropicKey(models[j].ID)
		if fi != fj {
			return fi < fj
		}
		if di != dj {
			return di > dj
		}
		return models[i].ID < models[j].ID
	})
	return models
}

func anthropicKey(id string) (family int, date string) {
	lower := strings.ToLower(id)
	switch {
	case strings.Contains(lower, "sonnet"):
		family = 0
	case strings.Contains(lower, "opus"):
		family = 1
	case strings.Contains(lower, "haiku"):
		family = 2
	default:
		family = 3
	}

	for _, part := range strings.Split(id, "-") {
		if len(part) == 8 && isDigits(part) {
			date = part
			break
		}
	}
	return family, date
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
