package recipe

import (
	"strings"

	"github.com/dishcovery/api/internal/config"
)

// Descriptor describes one supported provider: its adapter, human label,
// default model and a hint telling users where to obtain an API key.
// Descriptors are built once at startup and never mutated.
type Descriptor struct {
	ID           ProviderType
	Label        string
	DefaultModel string
	KeyHint      string
	Provider     Provider
}

// Registry is the single source of truth for which providers exist. It is
// immutable after construction and safe for unbounded concurrent use.
type Registry struct {
	cfg     *config.Config
	entries map[ProviderType]*Descriptor
	order   []ProviderType
}

// NewRegistry builds the static provider table from the process
// configuration. Exactly three providers are supported.
func NewRegistry(cfg *config.Config) *Registry {
	entries := map[ProviderType]*Descriptor{
		ProviderGemini: {
			ID:           ProviderGemini,
			Label:        "Google Gemini",
			DefaultModel: defaultModel(cfg.Providers.GeminiModel, "gemini-2.0-flash"),
			KeyHint:      "Get a free API key at https://aistudio.google.com/apikey",
			Provider:     NewGeminiProvider(cfg.GenerationTimeout),
		},
		ProviderOpenAI: {
			ID:           ProviderOpenAI,
			Label:        "OpenAI GPT-4o",
			DefaultModel: defaultModel(cfg.Providers.OpenAIModel, "gpt-4o"),
			KeyHint:      "Create an API key at https://platform.openai.com/api-keys",
			Provider:     NewOpenAIProvider(cfg.GenerationTimeout),
		},
		ProviderAnthropic: {
			ID:           ProviderAnthropic,
			Label:        "Anthropic Claude",
			DefaultModel: defaultModel(cfg.Providers.AnthropicModel, "claude-sonnet-4-20250514"),
			KeyHint:      "Create an API key at https://console.anthropic.com/settings/keys",
			Provider:     NewAnthropicProvider(cfg.GenerationTimeout),
		},
	}

	return &Registry{
		cfg:     cfg,
		entries: entries,
		order:   []ProviderType{ProviderGemini, ProviderOpenAI, ProviderAnthropic},
	}
}

// Resolve looks up a provider descriptor by id. The lookup is
// case-insensitive; unknown ids return false.
func (r *Registry) Resolve(id string) (*Descriptor, bool) {
	desc, ok := r.entries[ProviderType(strings.ToLower(strings.TrimSpace(id)))]
	return desc, ok
}

// KeyFor returns the configured API key for a provider, or "" when the
// provider is unknown or no key is configured.
func (r *Registry) KeyFor(id string) string {
	desc, ok := r.Resolve(id)
	if !ok {
		return ""
	}
	switch desc.ID {
	case ProviderGemini:
		return r.cfg.GeminiKey
	case ProviderOpenAI:
		return r.cfg.OpenAIKey
	case ProviderAnthropic:
		return r.cfg.AnthropicKey
	}
	return ""
}

// DefaultModelFor returns the default model for a provider, or "" when the
// provider is unknown.
func (r *Registry) DefaultModelFor(id string) string {
	desc, ok := r.Resolve(id)
	if !ok {
		return ""
	}
	return desc.DefaultModel
}

// List returns all descriptors in stable order.
func (r *Registry) List() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

func defaultModel(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}
