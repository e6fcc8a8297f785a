package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OllamaProvider implements Provider for local Ollama models through
// Ollama's OpenAI-compatible endpoint. No API key is needed.
type OllamaProvider struct {
	inner *OpenAIProvider
}

// NewOllamaProvider creates a new Ollama provider.
func NewOllamaProvider(config Config) (*OllamaProvider, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	baseURL = strings.TrimSuffix(baseURL, "/") + "/v1"

	clientConfig := openai.DefaultConfig("ollama")
	clientConfig.BaseURL = baseURL

	if config.Model == "" {
		return nil, fmt.Errorf("ollama requires an explicit model name")
	}

	return &OllamaProvider{
		inner: &OpenAIProvider{
			client: openai.NewClientWithConfig(clientConfig),
			config: config,
		},
	}, nil
}

// Name returns the provider name.
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Summarize delegates to the OpenAI-compatible chat endpoint.
func (p *OllamaProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	return p.inner.Summarize(ctx, req)
}
