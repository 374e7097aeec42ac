package llm

import (
	"context"
	"fmt"
	"os"
)

// apiKeyEnv names the environment variable holding each provider's key.
var apiKeyEnv = map[string]string{
	"google":     "GOOGLE_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
	"minimax":    "MINIMAX_API_KEY",
}

// NewClient creates a chat client for the given provider type and default
// model. Credentials are read from the environment.
// Supported provider types: "google", "openai", "anthropic", "ollama",
// "openrouter", "minimax".
func NewClient(ctx context.Context, providerType string, model string) (ChatClient, error) {
	if providerType == "ollama" {
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = DefaultOllamaHost
		}
		return NewOllamaClient(host, model), nil
	}

	env, ok := apiKeyEnv[providerType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, providerType)
	}
	apiKey := os.Getenv(env)
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", env, ErrMissingAPIKey)
	}

	switch providerType {
	case "google":
		client, err := NewGeminiClient(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "openai":
		return NewOpenAIClient(apiKey, model), nil
	case "anthropic":
		return NewAnthropicClient(apiKey, model), nil
	case "openrouter":
		return NewOpenRouterClient(apiKey, model), nil
	default:
		return NewMinimaxClient(apiKey, model), nil
	}
}
