package factory

import (
	"fmt"

	"cet-mentor-be/internal/config"
	"cet-mentor-be/pkg/llm"
	"cet-mentor-be/pkg/llm/ollama"
	"cet-mentor-be/pkg/llm/openrouter"
)

func NewLLMProvider(cfg config.AIConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	case "openrouter":
		if cfg.OpenRouterKey == "" {
			return nil, fmt.Errorf("openrouter provider requires an api key")
		}
		return openrouter.NewOpenRouterProvider(cfg.OpenRouterKey, cfg.OpenRouterURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
