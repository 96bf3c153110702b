package scene

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reloads a scene file when it changes on disk and publishes the new
// snapshot. Only the newest undelivered snapshot is kept. A file that fails
// to load is logged and skipped, so the consumer keeps its current snapshot.
type Watcher struct {
	path     string
	cellSize float32
	debounce time.Duration
	log      *slog.Logger

	fs      *fsnotify.Watcher
	updates chan *Snapshot
	done    chan struct{}
	wg      sync.WaitGroup

	closeOnce sync.Once
	closeErr  error
}

// Watch starts watching path. The directory is watched rather than the file
// so saves that replace the file by rename are seen.
func Watch(path string, cellSize float32, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch scene: %w", err)
	}
	if _, err := FormatOf(abs); err != nil {
		return nil, fmt.Errorf("watch scene: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch scene: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch scene: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		path:     abs,
		cellSize: cellSize,
		debounce: DefaultDebounce,
		log:      logger.With("scene", abs),
		fs:       fw,
		updates:  make(chan *Snapshot, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Updates delivers reloaded snapshots. Receive without blocking from the
// frame loop.
func (w *Watcher) Updates() <-chan *Snapshot {
	return w.updates
}

// Close stops the watcher and waits for its goroutine. Later calls return
// the first call's error.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.closeErr = w.fs.Close()
		w.wg.Wait()
	})
	return w.closeErr
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var reload <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				reload = time.After(w.debounce)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("scene watcher error", "err", err)
		case <-reload:
			reload = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	f, err := Load(w.path)
	if err != nil {
		w.log.Error("scene reload failed, keeping current scene", "err", err)
		return
	}
	snap := f.Snapshot(w.cellSize)
	w.log.Info("scene reloaded", "obstacles", len(snap.Obstacles), "objects", len(snap.Interactives))
	w.publish(snap)
}

// publish replaces any undelivered snapshot with s. Only this goroutine
// sends, so the second send cannot block.
func (w *Watcher) publish(s *Snapshot) {
	select {
	case w.updates <- s:
		return
	default:
	}
	select {
	case <-w.updates:
	default:
	}
	w.updates <- s
}
