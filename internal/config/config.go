package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderBedrock = "bedrock"
	ProviderGemini  = "gemini"
)

type AppConfig struct {
	Port      string `validate:"required,numeric"`
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"`

	// LLMProvider selects the extraction model backend. The model id of the selected
	// provider enables it; an empty id means heuristic-only extraction.
	LLMProvider    string `validate:"oneof=bedrock gemini"`
	BedrockModelID string
	AWSRegion      string `validate:"required"`
	GeminiModel    string
	GeminiAPIKey   string `validate:"required_with=GeminiModel"`
	GeminiBaseURL  string `validate:"omitempty,url"`

	GeocodingURL      string `validate:"required,url"`
	GeocodingLanguage string
	ForecastURL       string `validate:"required,url"`

	HTTPConnectTimeout time.Duration `validate:"gt=0"`
	HTTPTimeout        time.Duration `validate:"gt=0"`
	ModelTimeout       time.Duration `validate:"gt=0"`

	// ProbeInterval enables the upstream probe job when positive.
	ProbeInterval    time.Duration `validate:"gte=0"`
	ProbeDestination string        `validate:"required_with=ProbeInterval"`
}

// ModelEnabled reports whether a language model is configured for the selected provider.
func (c *AppConfig) ModelEnabled() bool {
	switch c.LLMProvider {
	case ProviderGemini:
		return c.GeminiModel != ""
	default:
		return c.BedrockModelID != ""
	}
}

var validate = validator.New()

// Load reads configuration from the environment (and an optional .env file) with
// sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*AppConfig, error) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LLM_PROVIDER", ProviderBedrock)
	v.SetDefault("BEDROCK_MODEL_ID", "")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("GEMINI_MODEL", "")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_BASE_URL", "")
	v.SetDefault("GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1/search")
	v.SetDefault("GEOCODING_LANGUAGE", "cs")
	v.SetDefault("FORECAST_URL", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("HTTP_CONNECT_TIMEOUT", "5s")
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("MODEL_TIMEOUT", "10s")
	v.SetDefault("PROBE_INTERVAL", "0s")
	v.SetDefault("PROBE_DESTINATION", "Praha")

	cfg := &AppConfig{
		Port:              v.GetString("PORT"),
		LogLevel:          strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:         strings.ToLower(v.GetString("LOG_FORMAT")),
		LLMProvider:       strings.ToLower(v.GetString("LLM_PROVIDER")),
		BedrockModelID:    strings.TrimSpace(v.GetString("BEDROCK_MODEL_ID")),
		AWSRegion:         v.GetString("AWS_REGION"),
		GeminiModel:       strings.TrimSpace(v.GetString("GEMINI_MODEL")),
		GeminiAPIKey:      v.GetString("GEMINI_API_KEY"),
		GeminiBaseURL:     v.GetString("GEMINI_BASE_URL"),
		GeocodingURL:      v.GetString("GEOCODING_URL"),
		GeocodingLanguage: v.GetString("GEOCODING_LANGUAGE"),
		ForecastURL:       v.GetString("FORECAST_URL"),
		ProbeDestination:  v.GetString("PROBE_DESTINATION"),
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"HTTP_CONNECT_TIMEOUT", &cfg.HTTPConnectTimeout},
		{"HTTP_TIMEOUT", &cfg.HTTPTimeout},
		{"MODEL_TIMEOUT", &cfg.ModelTimeout},
		{"PROBE_INTERVAL", &cfg.ProbeInterval},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(v.GetString(d.key))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
