package llm

import (
	"context"
	"mime"
	"path/filepath"
)

// FileState is the processing state of an uploaded document.
type FileState string

const (
	FileStatePending FileState = "pending"
	FileStateActive  FileState = "active"
	FileStateFailed  FileState = "failed"
)

// File is a document the provider can reference by URI.
type File struct {
	Name        string // provider resource name, e.g. "files/abc123"
	DisplayName string
	URI         string
	MIMEType    string
	State       FileState
}

// FileStore uploads documents and reports their processing state.
type FileStore interface {
	Upload(ctx context.Context, path string) (*File, error)
	Get(ctx context.Context, name string) (*File, error)
}

// MIMETypeFor guesses a MIME type from the file extension, defaulting to PDF.
func MIMETypeFor(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/pdf"
}
