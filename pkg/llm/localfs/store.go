package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"robi-be/pkg/llm"
)

// Store is a FileStore for providers without a files API. Documents stay on disk
// and are active as soon as they can be stat'ed.
type Store struct {
	mu    sync.RWMutex
	files map[string]*llm.File
}

var _ llm.FileStore = &Store{}

func NewStore() *Store {
	return &Store{files: make(map[string]*llm.File)}
}

func (s *Store) Upload(ctx context.Context, path string) (*llm.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	f := &llm.File{
		Name:        "local/" + filepath.Base(abs),
		DisplayName: filepath.Base(abs),
		URI:         "file://" + filepath.ToSlash(abs),
		MIMEType:    llm.MIMETypeFor(abs),
		State:       llm.FileStateActive,
	}

	s.mu.Lock()
	s.files[f.Name] = f
	s.mu.Unlock()

	copied := *f
	return &copied, nil
}

func (s *Store) Get(ctx context.Context, name string) (*llm.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("file %s not found", name)
	}
	copied := *f
	return &copied, nil
}
