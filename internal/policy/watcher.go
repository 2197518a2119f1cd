package policy

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ReloadedEvent represents a policy reload event
type ReloadedEvent struct {
	Timestamp time.Time
	PolicyIDs []string
	Error     error
}

// FileWatcher monitors a policy directory and reloads the store when
// files change. Reloads are debounced and swap the store only on a
// successful full load.
type FileWatcher struct {
	watcher         *fsnotify.Watcher
	path            string
	loader          *Loader
	store           Store
	logger          *zap.Logger
	metrics         *Metrics
	debounceTimeout time.Duration
	debounceTimer   *time.Timer
	eventChan       chan ReloadedEvent
	mu              sync.Mutex
	isWatching      bool
}

// NewFileWatcher creates a new file watcher for a policy directory
func NewFileWatcher(path string, store Store, loader *Loader, logger *zap.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:         watcher,
		path:            path,
		loader:          loader,
		store:           store,
		logger:          logger,
		metrics:         NewMetrics(),
		debounceTimeout: 500 * time.Millisecond,
		eventChan:       make(chan ReloadedEvent, 10),
	}, nil
}

// Events returns the reload event channel
func (fw *FileWatcher) Events() <-chan ReloadedEvent {
	return fw.eventChan
}

// Watch starts watching the policy directory for changes
func (fw *FileWatcher) Watch(ctx context.Context) error {
	fw.mu.Lock()
	if fw.isWatching {
		fw.mu.Unlock()
		return fmt.Errorf("watcher is already running")
	}
	fw.isWatching = true
	fw.mu.Unlock()

	if err := fw.watcher.Add(fw.path); err != nil {
		fw.mu.Lock()
		fw.isWatching = false
		fw.mu.Unlock()
		return fmt.Errorf("failed to add path to watcher: %w", err)
	}

	fw.logger.Info("Starting policy file watcher",
		zap.String("path", fw.path),
		zap.Duration("debounce", fw.debounceTimeout),
	)

	go fw.watchLoop(ctx)
	return nil
}

// watchLoop processes file system events with debouncing
func (fw *FileWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			fw.stop()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !isPolicyFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			fw.scheduleReload()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("Policy watcher error", zap.Error(err))
		}
	}
}

func isPolicyFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml" || ext == ".json"
}

// scheduleReload debounces bursts of file events into one reload
func (fw *FileWatcher) scheduleReload() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.debounceTimer = time.AfterFunc(fw.debounceTimeout, fw.reload)
}

// reload loads the directory and swaps the store on success
func (fw *FileWatcher) reload() {
	start := time.Now()
	fw.metrics.RecordReloadAttempt()

	policies, err := fw.loader.LoadFromDirectory(fw.path)
	if err != nil {
		fw.metrics.RecordReloadFailure()
		fw.logger.Error("Policy reload failed", zap.Error(err))
		fw.emit(ReloadedEvent{Timestamp: time.Now(), Error: err})
		return
	}

	fw.store.Replace(policies)
	fw.metrics.RecordReloadSuccess(time.Since(start), len(policies))

	ids := make([]string, 0, len(policies))
	for _, p := range policies {
		ids = append(ids, p.ID)
	}
	fw.logger.Info("Policies reloaded",
		zap.Int("count", len(policies)),
		zap.Duration("duration", time.Since(start)),
	)
	fw.emit(ReloadedEvent{Timestamp: time.Now(), PolicyIDs: ids})
}

func (fw *FileWatcher) emit(event ReloadedEvent) {
	select {
	case fw.eventChan <- event:
	default:
		// Slow consumer; drop rather than block the watch loop
	}
}

func (fw *FileWatcher) stop() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.isWatching {
		return
	}
	fw.isWatching = false
	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	_ = fw.watcher.Close()
	fw.logger.Info("Policy file watcher stopped")
}
