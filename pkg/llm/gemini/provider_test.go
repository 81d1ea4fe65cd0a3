package gemini

import (
	"testing"

	"robi-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToContents(t *testing.T) {
	contents, system := toContents([]llm.Message{
		{Role: llm.RoleSystem, Content: "You are ROBI."},
		llm.UserFile(llm.File{URI: "https://files.example/1", MIMEType: "application/pdf"}),
		llm.UserText("Basic content from Nav.pdf"),
		{Role: llm.RoleModel, Content: "ok"},
	})

	assert.Equal(t, "You are ROBI.", system)
	require.Len(t, contents, 3)

	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	require.NotNil(t, contents[0].Parts[0].FileData)
	assert.Equal(t, "https://files.example/1", contents[0].Parts[0].FileData.FileURI)

	assert.Equal(t, "Basic content from Nav.pdf", contents[1].Parts[0].Text)
	assert.Equal(t, string(genai.RoleModel), contents[2].Role)
}

func TestToFileState(t *testing.T) {
	assert.Equal(t, llm.FileStateActive, toFileState(genai.FileStateActive))
	assert.Equal(t, llm.FileStateFailed, toFileState(genai.FileStateFailed))
	assert.Equal(t, llm.FileStatePending, toFileState(genai.FileStateProcessing))
}
