package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

var mediaExtensions = map[string]bool{
	".mkv": true, ".mp4": true, ".webm": true, ".avi": true, ".mov": true, ".ts": true,
	".mp3": true, ".flac": true, ".ogg": true, ".opus": true, ".wav": true, ".m4a": true,
}

func isMediaFile(name string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(name))]
}

// watchDir enqueues media files created in dir until ctx is done.
func watchDir(ctx context.Context, logger zerolog.Logger, dir string, enqueue func(mrls ...string) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", dir, err)
	}
	logger.Info().Str("dir", dir).Msg("watching for new media")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if !event.Has(fsnotify.Create) || !isMediaFile(event.Name) {
				continue
			}
			mrl, err := toMRL(event.Name)
			if err != nil {
				logger.Warn().Err(err).Str("path", event.Name).Msg("skip file")
				continue
			}
			if err := enqueue(mrl); err != nil {
				logger.Warn().Err(err).Str("mrl", mrl).Msg("enqueue failed")
				continue
			}
			logger.Info().Str("mrl", mrl).Msg("enqueued")
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			logger.Warn().Err(err).Msg("fsnotify watcher error")
		}
	}
}
