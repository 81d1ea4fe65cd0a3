package llm

import (
	"context"
	"errors"
	"fmt"
)

const (
	RoleUser   = "user"
	RoleModel  = "model"
	RoleSystem = "system"
)

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("llm returned an empty response")

// Message represents a chat message in a provider-agnostic format.
// File, when set, attaches the full content of an uploaded document.
type Message struct {
	Role    string // "user", "model", "system"
	Content string
	File    *File
}

func UserText(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

func UserFile(f File) Message {
	return Message{Role: RoleUser, File: &f}
}

// Text renders the message for providers that cannot attach files; a file becomes
// a one-line reference to its display name.
func (m Message) Text() string {
	if m.File != nil {
		return fmt.Sprintf("Reference document: %s (%s)", m.File.DisplayName, m.File.URI)
	}
	return m.Content
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithTopP(p float64) Option {
	return func(o *Options) {
		o.TopP = p
	}
}

func WithTopK(k int) Option {
	return func(o *Options) {
		o.TopK = k
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// ApplyOptions folds opts over the given defaults.
func ApplyOptions(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
