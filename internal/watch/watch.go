// Package watch re-runs work when any of a set of files changes.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/navexpand/internal/foundation/errors"
	"git.home.luguber.info/inful/navexpand/internal/logfields"
	"git.home.luguber.info/inful/navexpand/internal/util/sets"
)

// DefaultDebounce collapses bursts of events from editors that write a
// file in several steps.
const DefaultDebounce = 300 * time.Millisecond

// Handler receives the absolute paths that changed since the last call.
type Handler func(ctx context.Context, changed []string)

// Watcher watches files through their parent directories, which survives
// editors that replace a file by renaming a new one over it.
type Watcher struct {
	files    sets.Set[string]
	watcher  *fsnotify.Watcher
	handler  Handler
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before the handler runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New starts watching the parent directories of paths. Events are delivered
// once Run is called.
func New(paths []string, handler Handler, opts ...Option) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.ValidationError("nothing to watch").Build()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to create file watcher").Build()
	}

	w := &Watcher{
		files:    sets.New[string](),
		watcher:  fw,
		handler:  handler,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(w)
	}

	dirs := sets.New[string]()
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fw.Close()
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve watched path").
				WithContext("path", p).
				Build()
		}
		w.files.Add(abs)
		dirs.Add(filepath.Dir(abs))
	}
	for _, dir := range sets.Sorted(dirs) {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to watch directory").
				WithContext("path", dir).
				Build()
		}
	}
	return w, nil
}

// Files returns the watched files, sorted.
func (w *Watcher) Files() []string {
	return sets.Sorted(w.files)
}

// Run delivers debounced change notifications until ctx is done. The
// handler runs on Run's goroutine, so calls never overlap. Run closes the
// watcher before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	pending := sets.New[string]()
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Remove) {
				w.logger.Warn("Watched file removed", logfields.ConfigFile(event.Name))
				continue
			}
			w.logger.Debug("Watched file changed", logfields.ConfigFile(event.Name), slog.String("op", event.Op.String()))
			pending.Add(filepath.Clean(event.Name))
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		case <-timer.C:
			changed := sets.Sorted(pending)
			pending = sets.New[string]()
			if len(changed) > 0 && w.handler != nil {
				w.handler(ctx, changed)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !w.files.Has(filepath.Clean(event.Name)) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}
