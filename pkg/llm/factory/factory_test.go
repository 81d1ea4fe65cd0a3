package factory

import (
	"context"
	"testing"

	"robi-be/pkg/llm/localfs"
	"robi-be/pkg/llm/ollama"
	"robi-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	ctx := context.Background()

	p, store, err := NewLLMProvider(ctx, Settings{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaProvider{}, p)
	assert.IsType(t, &localfs.Store{}, store)
	assert.Equal(t, "http://localhost:11434", p.(*ollama.OllamaProvider).BaseURL)

	p, store, err = NewLLMProvider(ctx, Settings{Provider: "openai", APIKey: "k", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.IsType(t, &openai.OpenAIProvider{}, p)
	assert.IsType(t, &localfs.Store{}, store)
}

func TestNewLLMProviderErrors(t *testing.T) {
	_, _, err := NewLLMProvider(context.Background(), Settings{Provider: "bard"})
	assert.ErrorContains(t, err, "unsupported")

	_, _, err = NewLLMProvider(context.Background(), Settings{Provider: "gemini"})
	assert.ErrorContains(t, err, "API key is required")
}
