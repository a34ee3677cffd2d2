package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-shapes/engine/logx"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads path whenever it changes and delivers each valid result on the returned
// channel. Invalid edits are logged and dropped. The channel holds only the newest config;
// a reader that falls behind sees the latest edit, not every edit.
// The directory is watched rather than the file so editors that save by rename are seen.
// The channel is closed when ctx is done.
//
// Parameters:
//   - ctx: stops the watcher
//   - path: the config file
//   - logger: receives reload failures; nil discards them
//
// Returns:
//   - <-chan Config: the reloaded configs
//   - error: an error if the watcher could not be started
func Watch(ctx context.Context, path string, logger *slog.Logger) (<-chan Config, error) {
	if logger == nil {
		logger = logx.Nop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	// event names carry the resolved directory
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return nil, err
	}
	abs = filepath.Join(dir, filepath.Base(abs))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan Config, 1)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				cfg, err := Load(abs)
				if err != nil {
					logger.Warn("config reload rejected", "path", abs, "err", err)
					continue
				}
				logger.Info("config reloaded", "path", abs)
				Deliver(out, cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher", "err", err)
			}
		}
	}()
	return out, nil
}

// Deliver sends cfg on out, a channel with a buffer of one, replacing any config the
// reader has not taken yet. It never blocks, so the reader always sees the newest config.
func Deliver(out chan Config, cfg Config) {
	for {
		select {
		case out <- cfg:
			return
		default:
		}
		select {
		case <-out:
		default:
		}
	}
}
