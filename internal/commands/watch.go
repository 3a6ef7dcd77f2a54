package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/okra-platform/lcmgen/internal/watch"
)

// watchDebounce is the quiet period before a change triggers regeneration
var watchDebounce = watch.DefaultDebounce

// Watch generates once and then again every time a schema file or the
// configuration file changes. Generation errors are logged and do not stop
// the watch. It returns when ctx is cancelled.
func (c *Controller) Watch(ctx context.Context) error {
	cfg, configPath, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger := c.logger().With().Str("component", "watch").Logger()

	regenerate := func() {
		current, _, err := c.loadConfig()
		if err != nil {
			logger.Error().Err(err).Msg("Failed to reload configuration")
			return
		}

		files, err := c.generate(ctx, current, current.Output)
		if err != nil {
			logger.Error().Err(err).Msg("Generation failed")
			return
		}

		fmt.Fprintf(c.out(), "%d file(s) generated for %s\n", len(files), current.Language)
	}

	regenerate()

	files := append([]string{}, cfg.Schema...)
	if configPath != "" {
		files = append(files, configPath)
	}

	watcher, err := watch.NewFileWatcher(files, watchDebounce, logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	logger.Info().Strs("files", files).Msg("Watching for changes")

	err = watcher.Start(ctx, func(path string) {
		logger.Info().Str("path", path).Msg("Regenerating")
		regenerate()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
