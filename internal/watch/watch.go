// Package watch monitors an inbox directory for task files and feeds
// each one through the engine as it appears.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a task file must be quiet before processing.
// Editors and scp write files in bursts.
const DefaultDebounce = 200 * time.Millisecond

// TaskExt is the extension a file must carry to be picked up.
const TaskExt = ".task"

// doneExt is appended to a file after it has been processed.
const doneExt = ".done"

var (
	// ErrNotDirectory indicates the watch path is not a directory.
	ErrNotDirectory = errors.New("watch path is not a directory")
)

// Runner consumes one task input. The engine satisfies this.
type Runner interface {
	Run(ctx context.Context, input string) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, input string) error

func (f RunnerFunc) Run(ctx context.Context, input string) error { return f(ctx, input) }

// Watcher picks up *.task files from a directory, runs their contents
// through the runner, and renames them to *.task.done when finished.
type Watcher struct {
	dir      string
	runner   Runner
	debounce time.Duration
	logf     func(format string, args ...interface{})

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher for the given directory.
func New(dir string, runner Runner) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	return &Watcher{
		dir:      dir,
		runner:   runner,
		debounce: DefaultDebounce,
		logf:     func(format string, args ...interface{}) {},
		pending:  make(map[string]*time.Timer),
	}, nil
}

// SetLogf sets the debug logging function.
func (w *Watcher) SetLogf(fn func(format string, args ...interface{})) {
	if fn != nil {
		w.logf = fn
	}
}

// SetDebounce overrides the quiet interval. Useful in tests.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run processes any task files already in the directory, then blocks
// watching for new ones until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	// Drain files that arrived before the watch started.
	if err := w.processExisting(ctx); err != nil {
		return err
	}

	// Buffered so a firing debounce timer never blocks behind a slow run.
	processed := make(chan string, 16)
	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return ctx.Err()
		case path := <-processed:
			w.process(ctx, path)
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !isTaskFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				w.schedule(event.Name, processed)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logf("[watch] error: %v", err)
		}
	}
}

// processExisting handles task files that were already present.
func (w *Watcher) processExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read watch directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isTaskFile(entry.Name()) {
			continue
		}
		w.process(ctx, filepath.Join(w.dir, entry.Name()))
	}
	return nil
}

// schedule arms (or re-arms) the debounce timer for a path.
func (w *Watcher) schedule(path string, processed chan<- string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		processed <- path
	})
}

// cancelPending stops all armed debounce timers.
func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, timer := range w.pending {
		timer.Stop()
	}
	w.pending = make(map[string]*time.Timer)
}

// process reads one task file, runs it, and marks it done. Failures are
// logged but never stop the watch loop.
func (w *Watcher) process(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		w.logf("[watch] read %s: %v", path, err)
		return
	}
	input := strings.TrimSpace(string(data))
	if input == "" {
		w.logf("[watch] skipping empty file %s", path)
		w.markDone(path)
		return
	}

	w.logf("[watch] processing %s", path)
	if err := w.runner.Run(ctx, input); err != nil {
		w.logf("[watch] run failed for %s: %v", path, err)
	}
	w.markDone(path)
}

// markDone renames a processed file so it is not picked up again.
func (w *Watcher) markDone(path string) {
	if err := os.Rename(path, path+doneExt); err != nil {
		w.logf("[watch] rename %s: %v", path, err)
	}
}

func isTaskFile(path string) bool {
	return strings.HasSuffix(path, TaskExt)
}
