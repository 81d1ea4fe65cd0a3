package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"robi-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   got.Model,
			Message: ollamaMessage{Role: "assistant", Content: "Push the joystick forward. [beep]"},
			Done:    true,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "llama3")
	reply, err := p.Chat(context.Background(), []llm.Message{
		llm.UserFile(llm.File{DisplayName: "Nav.pdf", URI: "file:///res/Nav.pdf"}),
		{Role: llm.RoleModel, Content: "earlier reply"},
		llm.UserText("how do I move?"),
	}, llm.WithTemperature(0), llm.WithTopK(64))

	require.NoError(t, err)
	assert.Equal(t, "Push the joystick forward. [beep]", reply)
	assert.Equal(t, "llama3", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "Reference document: Nav.pdf (file:///res/Nav.pdf)", got.Messages[0].Content)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.Equal(t, 64, got.Options.TopK)
}

func TestChatErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not found", http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := NewOllamaProvider(srv.URL, "missing").Generate(context.Background(), "hi")
		assert.ErrorContains(t, err, "status 404")
	})

	t.Run("empty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"  "},"done":true}`))
		}))
		defer srv.Close()

		_, err := NewOllamaProvider(srv.URL, "llama3").Generate(context.Background(), "hi")
		assert.ErrorIs(t, err, llm.ErrEmptyResponse)
	})
}
