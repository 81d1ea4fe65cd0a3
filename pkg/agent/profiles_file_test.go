package agent

import (
	"os"
	"path/filepath"
	"testing"

	"robi-be/pkg/intent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeProfiles(t *testing.T) {
	base := DefaultProfiles("Rooms_And_Tasks.pdf")

	got, err := MergeProfiles([]byte(`
profiles:
  - category: other
    template: "Hello {{.UserName}}. Question: {{.Query}}"
  - category: Location
    priority_document: Floor_Plan.pdf
    replace_transcript: false
`), base)
	require.NoError(t, err)

	out, err := got[intent.CategoryOther].Render(PromptData{UserName: "Sarah", Query: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Sarah. Question: hi", out)

	loc := got[intent.CategoryLocation]
	assert.Equal(t, "Floor_Plan.pdf", loc.PriorityDocument)
	assert.False(t, loc.ReplaceTranscript)
	assert.Equal(t, base[intent.CategoryLocation].Template, loc.Template)

	// base is not mutated
	assert.Equal(t, "Rooms_And_Tasks.pdf", base[intent.CategoryLocation].PriorityDocument)
}

func TestMergeProfilesErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown category", "profiles:\n  - category: weather\n"},
		{"broken template", "profiles:\n  - category: other\n    template: \"{{.Query\"\n"},
		{"not yaml", "profiles: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MergeProfiles([]byte(tt.yaml), DefaultProfiles(""))
			assert.Error(t, err)
		})
	}
}

func TestLoadProfiles(t *testing.T) {
	base := DefaultProfiles("")

	got, err := LoadProfiles("", base)
	require.NoError(t, err)
	assert.Equal(t, base, got)

	_, err = LoadProfiles(filepath.Join(t.TempDir(), "missing.yaml"), base)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles:\n  - category: system\n    replace_transcript: true\n"), 0o644))
	got, err = LoadProfiles(path, base)
	require.NoError(t, err)
	assert.True(t, got[intent.CategorySystem].ReplaceTranscript)
}
