package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port           int     `toml:"port"`
	APIToken       string  `toml:"api_token"`
	RateLimitRPS   float64 `toml:"rate_limit_rps"`
	RateLimitBurst int     `toml:"rate_limit_burst"`
}

type ProviderConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type PromptsConfig struct {
	Translate string `toml:"translate"`
	Extract   string `toml:"extract"`
}

type PipelineConfig struct {
	ColorMode            string   `toml:"color_mode"`
	UniformColor         string   `toml:"uniform_color"`
	HighlightPolicy      string   `toml:"highlight_policy"`
	ReextractTranslation bool     `toml:"reextract_translation"`
	SegmentSentences     bool     `toml:"segment_sentences"`
	UnsupportedLanguages []string `toml:"unsupported_languages"`
}

type BreakerConfig struct {
	MaxFailures    uint32 `toml:"max_failures"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type Config struct {
	Server     ServerConfig   `toml:"server"`
	Translator ProviderConfig `toml:"translator"`
	Extractor  ProviderConfig `toml:"extractor"`
	Prompts    PromptsConfig  `toml:"prompts"`
	Pipeline   PipelineConfig `toml:"pipeline"`
	Breaker    BreakerConfig  `toml:"breaker"`
}

// Default returns the configuration assumed for keys absent from the file.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			RateLimitRPS:   10,
			RateLimitBurst: 20,
		},
		Pipeline: PipelineConfig{
			ColorMode:            "distinct",
			HighlightPolicy:      "all",
			ReextractTranslation: true,
			SegmentSentences:     true,
		},
		Breaker: BreakerConfig{
			MaxFailures:    3,
			TimeoutSeconds: 30,
		},
	}
}

// Load parses a TOML config file on top of the defaults, so absent keys keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}
