// Package watch re-runs the style pipeline whenever a stylesheet changes on
// disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/alexisbeaulieu97/elementkit/internal/logger"
	"github.com/alexisbeaulieu97/elementkit/internal/style"
)

// Result is one pipeline run.
type Result struct {
	Path       string
	Stylesheet string
	Err        error
}

// Transform turns raw styles into the emitted stylesheet.
type Transform func(styles string) string

// Option configures a Watcher.
type Option func(*Watcher)

// WithTransform replaces the default style.Preprocess step.
func WithTransform(t Transform) Option {
	return func(w *Watcher) {
		if t != nil {
			w.transform = t
		}
	}
}

// WithLogger installs a logger for watcher errors.
func WithLogger(log *logger.Logger) Option {
	return func(w *Watcher) {
		w.log = log
	}
}

// Watcher follows a single stylesheet.
type Watcher struct {
	path      string
	transform Transform
	log       *logger.Logger
	fs        *fsnotify.Watcher
	last      string
	emitted   bool
}

// New watches path. The parent directory is watched so files replaced by
// editors are picked up again.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{path: abs, transform: style.Preprocess, fs: fsw}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Run emits the current result, then one result per change of the file's
// content, until ctx is done. The returned channel is closed on exit and the
// watcher cannot be reused.
func (w *Watcher) Run(ctx context.Context) <-chan Result {
	out := make(chan Result)
	go func() {
		defer close(out)
		defer w.fs.Close()

		if !w.emit(ctx, out) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.fs.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if !w.emit(ctx, out) {
					return
				}
			case err, ok := <-w.fs.Errors:
				if !ok {
					return
				}
				w.log.Error(err, "watcher error")
			}
		}
	}()
	return out
}

// emit sends a result unless the content is unchanged since the last send.
// It reports false once ctx is done.
func (w *Watcher) emit(ctx context.Context, out chan<- Result) bool {
	res := Result{Path: w.path}
	data, err := os.ReadFile(w.path)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", w.path, err)
	} else {
		content := string(data)
		if w.emitted && content == w.last {
			return true
		}
		w.last = content
		w.emitted = true
		res.Stylesheet = w.transform(content)
	}

	select {
	case out <- res:
		return true
	case <-ctx.Done():
		return false
	}
}
