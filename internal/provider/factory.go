package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/duotext/duotext/internal/config"
)

func newLLMClient(ctx context.Context, cfg config.ProviderConfig) (LLMClient, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)

	case "claude":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "ollama":
		// Ollama exposes an OpenAI-compatible API under /v1.
		baseURL := strings.TrimRight(cfg.BaseURL, "/")
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL += "/v1"
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama" // ignored by Ollama, required by the client
		}
		return NewOpenAIClient(apiKey, cfg.Model, baseURL), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// NewTranslator builds the translation capability named by cfg.Provider.
func NewTranslator(ctx context.Context, cfg config.ProviderConfig, prompts config.PromptsConfig) (Translator, error) {
	if strings.ToLower(cfg.Provider) == "rest" {
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("rest translator requires base_url")
		}
		return NewRESTTranslator(cfg.BaseURL, cfg.APIKey), nil
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewLLMTranslator(client, cfg.Provider, prompts.Translate), nil
}

// NewExtractor builds the entity-extraction capability, or returns nil when
// the deployment has none ("none" or empty provider). The pipeline treats a
// nil Extractor as "no entities", so translation still works without one.
func NewExtractor(ctx context.Context, cfg config.ProviderConfig, prompts config.PromptsConfig) (Extractor, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "none":
		return nil, nil
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewLLMExtractor(client, cfg.Provider, prompts.Extract), nil
}
