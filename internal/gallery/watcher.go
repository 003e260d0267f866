package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	// Dir is the photo directory.
	Dir string
	// Pattern is the file name pattern with a %d slot verb, e.g. "photo%d.jpg".
	Pattern string
	// Slots is the number of gallery slots.
	Slots int
	// DebounceDelay batches bursts of writes to the same file.
	DebounceDelay time.Duration
	Logger        *slog.Logger
}

// Watcher reports gallery slots whose photo was created or rewritten.
type Watcher struct {
	config  WatcherConfig
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	pending map[int]struct{}
	changes chan int
}

// NewWatcher creates a watcher on config.Dir. The directory must exist.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(config.Dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", config.Dir, err)
	}
	if config.DebounceDelay == 0 {
		config.DebounceDelay = 100 * time.Millisecond
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		pending: make(map[int]struct{}),
		changes: make(chan int, max(config.Slots, 1)),
	}, nil
}

// Changes yields 1-based slot indexes. It is closed when the watcher stops.
func (w *Watcher) Changes() <-chan int {
	return w.changes
}

// Start processes file events until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.processEvents(ctx)
	w.logger.Info("watching photos", "dir", w.config.Dir)
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.changes)
	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if i, ok := SlotForFile(w.config.Pattern, w.config.Slots, filepath.Base(event.Name)); ok {
				w.pending[i] = struct{}{}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("photo watcher error", "error", err)

		case <-ticker.C:
			for i := range w.pending {
				select {
				case w.changes <- i:
					delete(w.pending, i)
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// SlotForFile maps a file name back to its slot index using pattern.
func SlotForFile(pattern string, slots int, name string) (int, bool) {
	for i := 1; i <= slots; i++ {
		if fmt.Sprintf(pattern, i) == name {
			return i, true
		}
	}
	return 0, false
}
