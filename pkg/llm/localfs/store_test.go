package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"robi-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAndGet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Nav.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o644))

	s := NewStore()
	f, err := s.Upload(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "local/Nav.pdf", f.Name)
	assert.Equal(t, "Nav.pdf", f.DisplayName)
	assert.Equal(t, llm.FileStateActive, f.State)
	assert.Equal(t, "application/pdf", f.MIMEType)
	assert.Contains(t, f.URI, "file://")

	got, err := s.Get(context.Background(), f.Name)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestUploadErrors(t *testing.T) {
	s := NewStore()

	_, err := s.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)

	_, err = s.Upload(context.Background(), t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = s.Get(context.Background(), "local/unknown.pdf")
	assert.Error(t, err)
}
