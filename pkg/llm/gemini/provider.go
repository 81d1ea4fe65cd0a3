package gemini

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"robi-be/pkg/llm"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-1.5-flash"

// GeminiProvider talks to the Gemini API through the genai SDK. It serves both the
// chat primitive and the Files API used to reference uploaded documents.
type GeminiProvider struct {
	client    *genai.Client
	ModelName string
}

var (
	_ llm.LLMProvider = &GeminiProvider{}
	_ llm.FileStore   = &GeminiProvider{}
)

func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiProvider{client: client, ModelName: modelName}, nil
}

// safetySettings disables every block threshold; the persona prompts keep answers on topic.
var safetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
}

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{TopP: 0.95, TopK: 64, MaxTokens: 8192}, opts...)

	model := g.ModelName
	if options.Model != "" {
		model = options.Model
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(options.Temperature)),
		TopP:             genai.Ptr(float32(options.TopP)),
		TopK:             genai.Ptr(float32(options.TopK)),
		MaxOutputTokens:  int32(options.MaxTokens),
		ResponseMIMEType: "text/plain",
		SafetySettings:   safetySettings,
	}

	contents, system := toContents(history)
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{llm.UserText(prompt)}, opts...)
}

// toContents maps generic messages to genai contents. System messages are folded
// into a single system instruction.
func toContents(history []llm.Message) ([]*genai.Content, string) {
	contents := make([]*genai.Content, 0, len(history))
	var system []string

	for _, msg := range history {
		if msg.Role == llm.RoleSystem {
			system = append(system, msg.Content)
			continue
		}

		var role genai.Role = genai.RoleUser
		if msg.Role == llm.RoleModel || msg.Role == "assistant" {
			role = genai.RoleModel
		}

		var part *genai.Part
		if msg.File != nil {
			part = genai.NewPartFromURI(msg.File.URI, msg.File.MIMEType)
		} else {
			part = genai.NewPartFromText(msg.Content)
		}
		contents = append(contents, genai.NewContentFromParts([]*genai.Part{part}, role))
	}

	return contents, strings.Join(system, "\n\n")
}

// --- Files API ---

func (g *GeminiProvider) Upload(ctx context.Context, path string) (*llm.File, error) {
	f, err := g.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
		MIMEType:    llm.MIMETypeFor(path),
		DisplayName: filepath.Base(path),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}
	return toFile(f), nil
}

func (g *GeminiProvider) Get(ctx context.Context, name string) (*llm.File, error) {
	f, err := g.client.Files.Get(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", name, err)
	}
	return toFile(f), nil
}

func toFile(f *genai.File) *llm.File {
	return &llm.File{
		Name:        f.Name,
		DisplayName: f.DisplayName,
		URI:         f.URI,
		MIMEType:    f.MIMEType,
		State:       toFileState(f.State),
	}
}

func toFileState(s genai.FileState) llm.FileState {
	switch s {
	case genai.FileStateActive:
		return llm.FileStateActive
	case genai.FileStateFailed:
		return llm.FileStateFailed
	default:
		return llm.FileStatePending
	}
}
