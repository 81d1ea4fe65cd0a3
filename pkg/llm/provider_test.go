package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageText(t *testing.T) {
	assert.Equal(t, "hello", UserText("hello").Text())

	m := UserFile(File{DisplayName: "Rooms_And_Tasks.pdf", URI: "https://files.example/1"})
	assert.Equal(t, RoleUser, m.Role)
	assert.Equal(t, "Reference document: Rooms_And_Tasks.pdf (https://files.example/1)", m.Text())
}

func TestApplyOptions(t *testing.T) {
	got := ApplyOptions(Options{TopP: 0.95, TopK: 64, MaxTokens: 8192},
		WithTemperature(0.2),
		WithMaxTokens(100),
		WithModel("other"),
	)
	assert.Equal(t, Options{Temperature: 0.2, TopP: 0.95, TopK: 64, MaxTokens: 100, Model: "other"}, got)
}

func TestMIMETypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", MIMETypeFor("Nav.pdf"))
	assert.Equal(t, "application/pdf", MIMETypeFor("no-extension"))
	assert.Contains(t, MIMETypeFor("notes.txt"), "text/plain")
}
