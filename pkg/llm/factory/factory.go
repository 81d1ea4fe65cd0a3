package factory

import (
	"context"
	"fmt"
	"time"

	"robi-be/pkg/llm"
	"robi-be/pkg/llm/gemini"
	"robi-be/pkg/llm/localfs"
	"robi-be/pkg/llm/ollama"
	"robi-be/pkg/llm/openai"
)

// Settings carries what any provider may need; unused fields are ignored.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// NewLLMProvider builds the chat provider and the file store that goes with it.
// Gemini serves both; the other backends reference documents from local disk.
func NewLLMProvider(ctx context.Context, s Settings) (llm.LLMProvider, llm.FileStore, error) {
	switch s.Provider {
	case "gemini", "":
		p, err := gemini.NewGeminiProvider(ctx, s.APIKey, s.Model)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	case "openai":
		return openai.NewOpenAIProvider(s.APIKey, s.BaseURL, s.Model, s.Timeout), localfs.NewStore(), nil
	case "ollama":
		baseURL := s.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, s.Model), localfs.NewStore(), nil
	default:
		return nil, nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}
