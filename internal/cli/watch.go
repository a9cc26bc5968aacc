package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/nfa"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor produces on save.
const DefaultDebounce = 200 * time.Millisecond

// WatchFile calls onChange after path is written, created or renamed into place,
// once per burst of events. It blocks until ctx is done.
//
// The parent directory is watched rather than the file itself so that editors
// replacing the file atomically keep being followed.
func WatchFile(ctx context.Context, path string, debounce time.Duration, logger *slog.Logger, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	logger.Info("watching automaton file", "path", abs)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("automaton file changed", "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Stop()
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "err", err)
		}
	}
}

// WatchEngine reloads the automaton at path whenever it changes and hands every
// valid result to apply. Invalid edits are logged and the previous automaton stays.
func WatchEngine(ctx context.Context, path string, opts []nfa.Option, logger *slog.Logger, apply func(*nfa.Engine)) error {
	return WatchFile(ctx, path, DefaultDebounce, logger, func() {
		eng, err := nfa.Load(path, opts...)
		if err != nil {
			logger.Error("automaton reload failed, keeping the previous one", "err", err)
			return
		}
		apply(eng)
	})
}
