package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"robi-be/internal/pkg/logger"
	"robi-be/pkg/intent"
	"robi-be/pkg/llm"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const module = "CATALOG"

// Document is a reference document that finished ingestion.
type Document struct {
	Name     string // display name, usually the file name
	Handle   string // provider resource name
	URI      string
	MIMEType string
	State    llm.FileState
}

// File returns the document as a model attachment.
func (d Document) File() llm.File {
	return llm.File{
		Name:        d.Handle,
		DisplayName: d.Name,
		URI:         d.URI,
		MIMEType:    d.MIMEType,
		State:       d.State,
	}
}

type Config struct {
	Extensions        []string
	PollInterval      time.Duration
	LoadTimeout       time.Duration
	UploadConcurrency int
	// Priority maps a category to the identifier of its authoritative document.
	Priority map[intent.Category]string
	// NavigationGuide is the identifier quoted by the navigation persona.
	NavigationGuide string
}

func DefaultConfig() Config {
	return Config{
		Extensions:        []string{".pdf"},
		PollInterval:      10 * time.Second,
		LoadTimeout:       10 * time.Minute,
		UploadConcurrency: 4,
		Priority: map[intent.Category]string{
			intent.CategoryLocation: "Rooms_And_Tasks.pdf",
		},
		NavigationGuide: "NAVIGATION_control.pdf",
	}
}

// Catalog holds the loaded reference documents. Reads are safe while a load runs;
// a successful load replaces the whole set at once.
type Catalog struct {
	store  llm.FileStore
	cfg    Config
	logger logger.ILogger

	loads singleflight.Group

	mu         sync.RWMutex
	docs       []Document
	loaded     bool
	generation uint64
}

func New(store llm.FileStore, cfg Config, log logger.ILogger) *Catalog {
	if cfg.UploadConcurrency <= 0 {
		cfg.UploadConcurrency = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultConfig().PollInterval
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = DefaultConfig().LoadTimeout
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultConfig().Extensions
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Catalog{store: store, cfg: cfg, logger: log}
}

// Load uploads every document in dir and waits until all of them are active.
// Concurrent calls share the load already in flight.
func (c *Catalog) Load(ctx context.Context, dir string) error {
	_, err, shared := c.loads.Do("load", func() (interface{}, error) {
		return nil, c.load(ctx, dir)
	})
	if shared {
		c.logger.Debug(module, "Joined in-flight resource load", map[string]interface{}{"dir": dir})
	}
	return err
}

func (c *Catalog) load(ctx context.Context, dir string) error {
	start := time.Now()

	paths, err := c.discover(dir)
	if err != nil {
		return err
	}
	c.logger.Info(module, "Uploading resources", map[string]interface{}{
		"dir":   dir,
		"count": len(paths),
	})

	ctx, cancel := context.WithTimeout(ctx, c.cfg.LoadTimeout)
	defer cancel()

	docs := make([]Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.UploadConcurrency)

	for i, path := range paths {
		g.Go(func() error {
			doc, err := c.ingest(gctx, path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.logger.Error(module, "Resource load failed", map[string]interface{}{
			"dir":   dir,
			"error": err.Error(),
		})
		return err
	}

	c.mu.Lock()
	c.docs = docs
	c.loaded = true
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	c.logger.Info(module, "All resources ready", map[string]interface{}{
		"count":      len(docs),
		"generation": gen,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// discover lists matching files in lexical order so catalog order is stable.
func (c *Catalog) discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read resource dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range c.cfg.Extensions {
			if ext == strings.ToLower(want) {
				paths = append(paths, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		c.logger.Warn(module, "No resources found", map[string]interface{}{"dir": dir})
	}
	return paths, nil
}

func (c *Catalog) ingest(ctx context.Context, path string) (Document, error) {
	name := filepath.Base(path)

	f, err := c.store.Upload(ctx, path)
	if err != nil {
		return Document{}, &IngestionError{Document: name, State: llm.FileStateFailed, Err: err}
	}
	c.logger.Info(module, "Uploaded file", map[string]interface{}{
		"display_name": f.DisplayName,
		"uri":          f.URI,
	})

	active, err := c.waitActive(ctx, f)
	if err != nil {
		return Document{}, err
	}
	return toDocument(active, name), nil
}

var errStillProcessing = errors.New("file still processing")

// waitActive polls the store until the file is active, failed, or the deadline passes.
func (c *Catalog) waitActive(ctx context.Context, f *llm.File) (*llm.File, error) {
	switch f.State {
	case llm.FileStateActive:
		return f, nil
	case llm.FileStateFailed:
		return nil, &IngestionError{Document: f.DisplayName, State: f.State}
	}

	last := f.State
	op := func() (*llm.File, error) {
		cur, err := c.store.Get(ctx, f.Name)
		if err != nil {
			return nil, err
		}
		last = cur.State
		switch cur.State {
		case llm.FileStateActive:
			return cur, nil
		case llm.FileStateFailed:
			return nil, backoff.Permanent(&IngestionError{Document: f.DisplayName, State: cur.State})
		default:
			return nil, errStillProcessing
		}
	}

	active, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.cfg.PollInterval)),
		backoff.WithMaxElapsedTime(c.cfg.LoadTimeout),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Debug(module, "Waiting for file processing", map[string]interface{}{
				"file":  f.DisplayName,
				"state": string(last),
				"next":  next.String(),
			})
		}),
	)
	if err != nil {
		var ie *IngestionError
		if errors.As(err, &ie) {
			return nil, ie
		}
		return nil, &IngestionError{Document: f.DisplayName, State: last, Err: err}
	}
	return active, nil
}

func toDocument(f *llm.File, fallbackName string) Document {
	name := f.DisplayName
	if name == "" {
		name = fallbackName
	}
	return Document{
		Name:     name,
		Handle:   f.Name,
		URI:      f.URI,
		MIMEType: f.MIMEType,
		State:    f.State,
	}
}

// IsReady reports whether at least one load completed.
func (c *Catalog) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Generation increments on every successful load.
func (c *Catalog) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

func (c *Catalog) Documents() []Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// IsPriority reports whether doc is the designated document for the category.
func (c *Catalog) IsPriority(category intent.Category, doc Document) bool {
	return Matches(doc, c.cfg.Priority[category])
}

// DocumentsFor orders the catalog for a category: its priority documents first,
// everything else after, keeping relative order within both groups.
func (c *Catalog) DocumentsFor(category intent.Category) []Document {
	return Prioritize(c.Documents(), c.cfg.Priority[category])
}

// Matches reports whether doc is identified by key. An empty key matches nothing.
func Matches(doc Document, key string) bool {
	return key != "" && strings.Contains(doc.Name, key)
}

// Prioritize is a stable partition of docs: documents matching key first.
func Prioritize(docs []Document, key string) []Document {
	if key == "" {
		return docs
	}

	out := make([]Document, 0, len(docs))
	var rest []Document
	for _, d := range docs {
		if Matches(d, key) {
			out = append(out, d)
		} else {
			rest = append(rest, d)
		}
	}
	return append(out, rest...)
}

func (c *Catalog) NavigationGuide() string {
	return c.cfg.NavigationGuide
}

// SetDocuments replaces the document set without touching the file store.
// It is used when documents were ingested elsewhere.
func (c *Catalog) SetDocuments(docs []Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = append([]Document(nil), docs...)
	c.loaded = true
	c.generation++
}
