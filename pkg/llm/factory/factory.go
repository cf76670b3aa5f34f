package factory

import (
	"context"
	"fmt"

	"ai-recruiter-be/pkg/llm"
	"ai-recruiter-be/pkg/llm/gemini"
	"ai-recruiter-be/pkg/llm/ollama"
	"ai-recruiter-be/pkg/llm/openai"
)

// NewLLMProvider builds the chat model named by LLM_PROVIDER. baseURL is
// ignored by gemini.
func NewLLMProvider(ctx context.Context, providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai", "deepseek":
		return openai.NewProvider(apiKey, baseURL, modelName), nil
	case "gemini":
		return gemini.NewProvider(ctx, apiKey, modelName)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
