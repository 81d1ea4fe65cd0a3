package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"robi-be/internal/pkg/logger"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls OnChange once a burst of changes to matching files in a resource
// directory has settled.
type Watcher struct {
	dir        string
	extensions []string
	debounce   time.Duration
	onChange   func(ctx context.Context)
	logger     logger.ILogger
}

func NewWatcher(dir string, extensions []string, debounce time.Duration, onChange func(ctx context.Context), log logger.ILogger) *Watcher {
	if debounce <= 0 {
		debounce = 2 * time.Second
	}
	return &Watcher{
		dir:        dir,
		extensions: extensions,
		debounce:   debounce,
		onChange:   onChange,
		logger:     log,
	}
}

// Run blocks until ctx is cancelled. OnChange runs on the watcher goroutine, so
// changes arriving during a reload are coalesced into the next one.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Info(module, "Watching resource directory", map[string]interface{}{"dir": w.dir})

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug(module, "Resource change", map[string]interface{}{"path": event.Name, "op": event.Op.String()})
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn(module, "Watcher error", map[string]interface{}{"error": err.Error()})

		case <-timer.C:
			w.onChange(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	for _, e := range w.extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
