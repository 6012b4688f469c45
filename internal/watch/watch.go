// Package watch re-optimizes input files as they change on disk.
//
// It implements "tail -f" like behavior for prompt and log files: each
// write event re-runs the optimizer over the whole file and reports the
// fresh result, with a debounce window so editor save bursts collapse
// into one run.
package watch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/promptslim/promptslim/internal/engine"
)

// DefaultDebounce is the quiet period required after the last write
// before a file is re-optimized.
const DefaultDebounce = 200 * time.Millisecond

// Options configures the watcher behavior.
type Options struct {
	Paths      []string                               // Files to watch
	Debounce   time.Duration                          // Quiet period before re-optimizing
	Engine     *engine.Engine                         // Optimizer to run; nil uses defaults
	OutputFunc func(path string, r engine.Result) error // Called with each fresh result
}

// Watcher re-runs the optimizer whenever a watched file changes.
type Watcher struct {
	opts    Options
	eng     *engine.Engine
	watcher *fsnotify.Watcher
}

// New creates a new Watcher with the given options.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	eng := opts.Engine
	if eng == nil {
		eng = engine.New()
	}
	return &Watcher{opts: opts, eng: eng}
}

// Run optimizes each file once, then blocks re-optimizing on changes
// until the context is cancelled or an error occurs.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.watcher = watcher
	defer watcher.Close()

	for _, path := range w.opts.Paths {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}

	// Initial pass so the user sees a result before the first change.
	for _, path := range w.opts.Paths {
		if err := w.ProcessFile(path); err != nil {
			return err
		}
	}

	return w.watch(ctx)
}

// ProcessFile reads a file, runs the optimizer, and emits the result.
func (w *Watcher) ProcessFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	result := w.eng.Optimize(string(data))
	return w.opts.OutputFunc(path, result)
}

// watch monitors the files for changes and re-optimizes after the
// debounce window closes.
func (w *Watcher) watch(ctx context.Context) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}

			switch {
			case event.Op&fsnotify.Write == fsnotify.Write,
				event.Op&fsnotify.Create == fsnotify.Create:
				pending[event.Name] = struct{}{}
				timer.Reset(w.opts.Debounce)

			case event.Op&fsnotify.Remove == fsnotify.Remove,
				event.Op&fsnotify.Rename == fsnotify.Rename:
				// Editors often replace files on save. Wait for the
				// path to reappear and re-add the watch.
				if err := w.reattach(ctx, event.Name); err != nil {
					return err
				}
				pending[event.Name] = struct{}{}
				timer.Reset(w.opts.Debounce)
			}

		case <-timer.C:
			for path := range pending {
				if err := w.ProcessFile(path); err != nil {
					return err
				}
				delete(pending, path)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// reattach waits for a removed or renamed file to reappear and watches it again.
func (w *Watcher) reattach(ctx context.Context, path string) error {
	timeout := time.After(10 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timeout:
			return fmt.Errorf("timeout waiting for %s to reappear", path)
		case <-ticker.C:
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to re-watch %s: %w", path, err)
			}
			return nil
		}
	}
}
