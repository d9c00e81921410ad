package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"autosort/internal/faults"
	"autosort/internal/logging"
	"autosort/internal/paths"
)

// DefaultDebounce is applied when the configured interval is missing or
// non-positive.
const DefaultDebounce = 2 * time.Second

// RunFunc performs one organize pass. Run errors are logged and the watch
// continues; they never end the watch loop.
type RunFunc func(ctx context.Context) error

// Watcher triggers organize runs over a single directory whenever its
// contents change, waiting for events to settle first so a batch of incoming
// files is handled in one pass.
type Watcher struct {
	source   string
	debounce time.Duration
	run      RunFunc
	logger   *slog.Logger

	fs   *fsnotify.Watcher
	kick chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// New starts watching sourceDir. The caller must eventually call Watch, which
// owns cleanup of the underlying filesystem watcher.
func New(sourceDir string, debounce time.Duration, run RunFunc, logger *slog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, faults.Wrap(faults.ErrPersistence, "watcher", "init", "create filesystem watcher", err)
	}
	if err := fs.Add(sourceDir); err != nil {
		fs.Close()
		return nil, faults.Wrap(faults.ErrValidation, "watcher", "watch", sourceDir, err)
	}
	return &Watcher{
		source:   sourceDir,
		debounce: debounce,
		run:      run,
		logger:   logging.NewComponentLogger(logger, "watcher"),
		fs:       fs,
		kick:     make(chan struct{}, 1),
	}, nil
}

// Watch blocks, dispatching one organize run after each burst of relevant
// events has settled for the debounce interval. An initial pass runs
// immediately so content already present gets organized on start. Returns
// when ctx is cancelled or the event stream closes; runs stay strictly
// sequential inside this loop.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.stopTimer()
	defer w.fs.Close()

	w.logger.Info("watching directory",
		logging.String("source", w.source),
		logging.Duration("debounce", w.debounce))
	w.dispatch(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return faults.Wrap(faults.ErrPersistence, "watcher", "watch", "event stream closed", nil)
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("filesystem event",
				logging.String("op", event.Op.String()),
				logging.String("path", event.Name))
			w.resetTimer()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return faults.Wrap(faults.ErrPersistence, "watcher", "watch", "error stream closed", nil)
			}
			w.logger.Warn("watch error", logging.Error(err))
		case <-w.kick:
			w.dispatch(ctx)
		}
	}
}

func (w *Watcher) dispatch(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := w.run(ctx); err != nil {
		w.logger.Error("organize run failed", logging.Error(err))
	}
}

// relevant reports whether an event should schedule a run. Only additions
// and writes count; the Autosort tree and our own writability probes are
// this program's doing and must not retrigger it.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	if name == paths.TargetFolderName || strings.HasPrefix(name, paths.ProbePrefix) {
		return false
	}
	root := paths.TargetRoot(w.source) + string(filepath.Separator)
	return !strings.HasPrefix(event.Name, root)
}

func (w *Watcher) resetTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.kick <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
