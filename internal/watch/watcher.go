// Package watch reruns generation when schema files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce collapses the burst of events an editor save produces
const DefaultDebounce = 200 * time.Millisecond

// relevantOps are the operations that can change the content of a watched file
const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// FileWatcher watches a fixed set of files. Their parent directories are
// watched so that editors replacing a file atomically are still noticed.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	logger   zerolog.Logger
}

// NewFileWatcher creates a watcher for the given files
func NewFileWatcher(files []string, debounce time.Duration, logger zerolog.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:  watcher,
		files:    make(map[string]bool),
		debounce: debounce,
		logger:   logger.With().Str("component", "watcher").Logger(),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}

		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	return fw, nil
}

// shouldWatch reports whether an event concerns one of the watched files
func (fw *FileWatcher) shouldWatch(event fsnotify.Event) bool {
	if event.Op&relevantOps == 0 {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	return fw.files[abs]
}

// Start calls onChange with the last changed file once events have been quiet
// for the debounce interval. Calls are serial and happen on the calling
// goroutine. Start returns when ctx is done or the watcher fails.
func (fw *FileWatcher) Start(ctx context.Context, onChange func(path string)) error {
	timer := time.NewTimer(fw.debounce)
	timer.Stop()
	defer timer.Stop()

	var pending string

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}

			if !fw.shouldWatch(event) {
				continue
			}

			fw.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Schema changed")

			pending = event.Name
			timer.Reset(fw.debounce)

		case <-timer.C:
			if pending != "" {
				path := pending
				pending = ""
				onChange(path)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if err != nil {
				// Log error but continue watching
				fw.logger.Warn().Err(err).Msg("Watcher error")
			}
		}
	}
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
