package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"robi-be/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider serves any OpenAI-compatible chat completion endpoint.
type OpenAIProvider struct {
	client    *goopenai.Client
	ModelName string
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, baseURL, modelName string, timeout time.Duration) *OpenAIProvider {
	if apiKey == "" {
		apiKey = "sk-xxx"
	}
	config := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if timeout <= 0 {
		timeout = 150 * time.Second
	}
	config.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIProvider{
		client:    goopenai.NewClientWithConfig(config),
		ModelName: modelName,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{}, opts...)

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	messages := make([]goopenai.ChatCompletionMessage, 0, len(history))
	for _, msg := range history {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    toRole(msg.Role),
			Content: msg.Text(),
		})
	}

	req := goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
		TopP:        float32(options.TopP),
		MaxTokens:   options.MaxTokens,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", llm.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{llm.UserText(prompt)}, opts...)
}

func toRole(role string) string {
	switch role {
	case llm.RoleModel, "assistant":
		return goopenai.ChatMessageRoleAssistant
	case llm.RoleSystem:
		return goopenai.ChatMessageRoleSystem
	default:
		return goopenai.ChatMessageRoleUser
	}
}
