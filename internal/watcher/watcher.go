// Package watcher reports changes to catalog files. The catalog is immutable
// for the process lifetime, so owners react by restarting.
package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce coalesces bursts of events from editors that write in several steps.
const DefaultDebounce = 200 * time.Millisecond

// Change describes a modified catalog file.
type Change struct {
	Path string
	Op   fsnotify.Op
}

// Watcher monitors a set of files and calls onChange once per debounced burst.
// It watches the parent directories since editors often replace files by rename.
type Watcher struct {
	onChange func(Change)
	watcher  *fsnotify.Watcher
	targets  map[string]bool
	cancel   context.CancelFunc
	done     chan struct{}
	debounce time.Duration
	mu       sync.Mutex
	running  bool
}

// New creates a Watcher for the given file paths.
func New(paths []string, onChange func(Change)) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("watcher: no paths")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	targets := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		targets[filepath.Clean(abs)] = true
	}

	return &Watcher{
		onChange: onChange,
		watcher:  fsw,
		targets:  targets,
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
	}, nil
}

// SetDebounce changes the debounce interval. It must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start adds the watches and begins delivering changes until ctx is done or
// Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	dirs := make(map[string]bool)
	for target := range w.targets {
		dirs[filepath.Dir(target)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.running = true
	go w.watchLoop(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.cancel()
	w.mu.Unlock()

	<-w.done
	return w.watcher.Close()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.done)

	var (
		timer   *time.Timer
		pending Change
	)
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			path := filepath.Clean(event.Name)
			if !w.targets[path] || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			log.Debug().Str("path", path).Str("op", event.Op.String()).Msg("Catalog file event")
			pending = Change{Path: path, Op: event.Op}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			log.Info().Str("path", pending.Path).Msg("Catalog file changed")
			if w.onChange != nil {
				w.onChange(pending)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("Watcher error")
		}
	}
}
