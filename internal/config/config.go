package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	GeminiKey    string
	OpenAIKey    string
	AnthropicKey string

	DefaultLanguage   string
	AllowedExtensions []string
	MaxUploadBytes    int64
	GenerationTimeout time.Duration

	AuthJWTSecret string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string

	Port string

	Providers ProvidersConfig
}

// ProvidersConfig selects the default provider and per-vendor model overrides.
type ProvidersConfig struct {
	Default        string `yaml:"default"`
	GeminiModel    string `yaml:"gemini_model"`
	OpenAIModel    string `yaml:"openai_model"`
	AnthropicModel string `yaml:"anthropic_model"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		GeminiKey:                os.Getenv("GEMINI_API_KEY"),
		OpenAIKey:                os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:             os.Getenv("ANTHROPIC_API_KEY"),
		DefaultLanguage:          os.Getenv("DEFAULT_LANGUAGE"),
		AuthJWTSecret:            os.Getenv("AUTH_JWT_SECRET"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		Port:                     os.Getenv("PORT"),
	}

	cfg.Providers = ProvidersConfig{
		Default:        os.Getenv("DEFAULT_PROVIDER"),
		GeminiModel:    os.Getenv("GEMINI_MODEL"),
		OpenAIModel:    os.Getenv("OPENAI_MODEL"),
		AnthropicModel: os.Getenv("ANTHROPIC_MODEL"),
	}

	if v := os.Getenv("ALLOWED_EXTENSIONS"); v != "" {
		for _, ext := range strings.Split(v, ",") {
			ext = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(ext, ".")))
			if ext != "" {
				cfg.AllowedExtensions = append(cfg.AllowedExtensions, ext)
			}
		}
	}

	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.MaxUploadBytes = n
	}

	if v := os.Getenv("GENERATION_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid GENERATION_TIMEOUT_SECONDS: %w", err)
		}
		cfg.GenerationTimeout = time.Duration(n) * time.Second
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML("config.yaml"); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Providers ProvidersConfig `yaml:"providers"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlConfig.Providers.Default != "" {
		c.Providers.Default = yamlConfig.Providers.Default
	}
	if yamlConfig.Providers.GeminiModel != "" {
		c.Providers.GeminiModel = yamlConfig.Providers.GeminiModel
	}
	if yamlConfig.Providers.OpenAIModel != "" {
		c.Providers.OpenAIModel = yamlConfig.Providers.OpenAIModel
	}
	if yamlConfig.Providers.AnthropicModel != "" {
		c.Providers.AnthropicModel = yamlConfig.Providers.AnthropicModel
	}

	return nil
}

func (c *Config) setDefaults() {
	if c.Env == "" {
		c.Env = "development"
	}
	if c.ServiceName == "" {
		c.ServiceName = "dishcovery-api"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "1.0.0"
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "en"
	}
	if len(c.AllowedExtensions) == 0 {
		c.AllowedExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = 16 << 20
	}
	if c.GenerationTimeout == 0 {
		c.GenerationTimeout = 60 * time.Second
	}
	if c.Providers.Default == "" {
		c.Providers.Default = "gemini"
	}
}

// IsDevelopment reports whether debug detail may be exposed to callers.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// OTLPHeaders parses OTEL_EXPORTER_OTLP_HEADERS ("key=value,key2=value2")
// into the header map the OTLP exporters take. Malformed entries are skipped.
func (c *Config) OTLPHeaders() map[string]string {
	if c.OtelExporterOTLPHeaders == "" {
		return nil
	}
	headers := make(map[string]string)
	for _, pair := range strings.Split(c.OtelExporterOTLPHeaders, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || key == "" {
			continue
		}
		headers[key] = value
	}
	if len(headers) == 0 {
		return nil
	}
	return headers
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Providers.Default) {
	case "gemini", "openai", "anthropic":
	default:
		return fmt.Errorf("unknown default provider %q", c.Providers.Default)
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}
