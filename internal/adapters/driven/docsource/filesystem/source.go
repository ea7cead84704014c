// Package filesystem provides a document source backed by the local
// file system. The declared document name is a file path.
package filesystem

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/inkwell-labs/booktalk-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/booktalk-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source reads documents from the local file system.
type Source struct{}

// New creates a new file system document source.
func New() *Source {
	return &Source{}
}

// Read returns the file bytes for the given path.
func (s *Source) Read(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Watch invokes fn whenever the file at the given path is written or
// recreated, until the context is cancelled. Watching the parent directory
// survives editors that replace the file instead of writing in place.
func (s *Source) Watch(ctx context.Context, name string, fn driven.ChangeFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(name)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return err
	}

	target, err := filepath.Abs(name)
	if err != nil {
		_ = watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				path, err := filepath.Abs(event.Name)
				if err != nil || path != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				logger.Debug("document %q changed on disk", name)
				fn(name)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error for %q: %v", name, err)
			}
		}
	}()

	return nil
}
