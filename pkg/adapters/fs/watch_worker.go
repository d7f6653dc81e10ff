package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/silt/pkg/silt"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Reload is published every time the watched inputs changed and a new
// Context was built from them.
type Reload struct {
	Context *silt.Context
	Err     error
	At      time.Time
}

func (r Reload) String() string {
	stamp := r.At.Format(time.RFC3339)
	if r.Err != nil {
		return fmt.Sprintf("reload failed at %s: %v", stamp, r.Err)
	}
	if r.Context == nil {
		return "reload at " + stamp
	}
	return fmt.Sprintf("reload at %s: %d types", stamp, len(r.Context.Types()))
}

// BuildFunc builds a fresh Context from the watched inputs.
type BuildFunc func() (*silt.Context, error)

// Watcher rebuilds a Context whenever one of its input files changes. Each
// rebuild is a full load; nothing is applied incrementally.
type Watcher struct {
	*worker.BaseWorker
	files    map[string]bool
	build    BuildFunc
	out      chan Reload
	logger   *slog.Logger
	debounce time.Duration
	watcher  *fsnotify.Watcher
	cancel   context.CancelFunc

	mu         sync.RWMutex
	active     bool
	reloads    int
	lastReload *time.Time
}

// NewWatcher watches files (absolute paths, as returned by Expand).
func NewWatcher(files []string, build BuildFunc, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	set := make(map[string]bool, len(files))
	for _, f := range files {
		set[filepath.Clean(f)] = true
	}
	return &Watcher{
		BaseWorker: worker.NewBaseWorker("silt-watcher"),
		files:      set,
		build:      build,
		out:        make(chan Reload, 1),
		logger:     logger,
		debounce:   DefaultDebounce,
	}
}

// SetDebounce changes the settle delay. It must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Events returns the reload stream. It is closed when the watcher stops.
func (w *Watcher) Events() <-chan Reload {
	return w.out
}

func (w *Watcher) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Editors often replace files instead of writing them in place, so the
	// parent directories are watched and events filtered by name.
	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w.watcher = watcher
	w.setActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *Watcher) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// Active reports whether the event loop is running.
func (w *Watcher) Active() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

// Reloads returns how many rebuilds were attempted and when the last one ran.
func (w *Watcher) Reloads() (int, *time.Time) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.reloads, w.lastReload
}

func (w *Watcher) setActive(active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = active
}

// run is the main event loop. Rebuilds happen on this goroutine, so the
// events channel is only ever written and closed from here.
func (w *Watcher) run(ctx context.Context) error {
	defer close(w.out)
	defer w.setActive(false)
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("input changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if !w.reload(ctx) {
				return nil
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("fsnotify error", "error", wErr)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !w.files[filepath.Clean(event.Name)] {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

// reload rebuilds and publishes. It returns false when ctx ended first.
func (w *Watcher) reload(ctx context.Context) bool {
	c, err := w.build()
	now := time.Now()

	w.mu.Lock()
	w.reloads++
	w.lastReload = &now
	w.mu.Unlock()

	if err != nil {
		w.logger.Error("reload failed", "error", err)
	} else {
		w.logger.Info("inputs reloaded", "types", len(c.Types()))
	}

	select {
	case w.out <- Reload{Context: c, Err: err, At: now}:
		return true
	case <-ctx.Done():
		return false
	}
}
