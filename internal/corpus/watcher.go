package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ramonehamilton/deckforge/internal/cards/index"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher rebuilds the search index whenever the corpus file changes on disk.
// Rebuilds happen against a fresh index which is then swapped into the
// provider, so searches keep serving the previous index until the new one is
// ready.
type Watcher struct {
	loader   *Loader
	provider *index.Provider
	logger   *slog.Logger
	path     string
	debounce time.Duration
	onSwap   func(*index.Index)
}

// WatcherConfig configures a corpus watcher.
type WatcherConfig struct {
	Loader   *Loader
	Provider *index.Provider
	Logger   *slog.Logger

	// Path is the corpus file to watch.
	Path string

	// Debounce is how long to wait after the last write event before
	// rebuilding. Defaults to 500ms.
	Debounce time.Duration

	// OnSwap is called after each successful rebuild with the new index.
	OnSwap func(*index.Index)
}

// NewWatcher creates a corpus watcher.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	if config.Loader == nil {
		return nil, fmt.Errorf("loader cannot be nil")
	}
	if config.Provider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}
	if config.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	debounce := config.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	return &Watcher{
		loader:   config.Loader,
		provider: config.Provider,
		logger:   logger,
		path:     config.Path,
		debounce: debounce,
		onSwap:   config.OnSwap,
	}, nil
}

// Watch blocks watching the corpus file until ctx is cancelled. Editors and
// bulk downloads often replace the file rather than write it in place, so the
// parent directory is watched and events are filtered by name.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch corpus directory: %w", err)
	}

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event := <-watcher.Events:
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			// Restart the debounce window on every burst of events
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			if err := w.Rebuild(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				w.logger.Warn("corpus rebuild failed", "path", w.path, "error", err)
			}

		case err := <-watcher.Errors:
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

// Rebuild loads the corpus file into a fresh index and swaps it into the
// provider.
func (w *Watcher) Rebuild(ctx context.Context) error {
	idx := index.New(w.logger)
	corpus, err := w.loader.LoadAndIndex(ctx, w.path, idx, nil)
	if err != nil {
		return err
	}

	w.provider.Swap(idx)
	if w.onSwap != nil {
		w.onSwap(idx)
	}

	w.logger.Info("search index rebuilt", "path", w.path, "cards", len(corpus))
	return nil
}
