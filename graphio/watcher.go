package graphio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// DefaultDebounce coalesces the write bursts editors produce on save
const DefaultDebounce = 150 * time.Millisecond

// ErrInvalidPattern indicates a match pattern could not be compiled
var ErrInvalidPattern = errors.New("invalid watch pattern")

// WatchConfig configures a Watcher
type WatchConfig struct {
	// Path is the graph file; its directory is watched so atomic renames are seen
	Path string
	// Match are glob patterns on base names that trigger a reload; empty matches Path only
	Match []string
	// Debounce is the quiet interval before a reload fires
	Debounce time.Duration
}

// Reload carries the result of re-reading the watched file
type Reload struct {
	Path  string
	Graph *Graph
	Err   error
}

// Watcher re-reads a graph file after it changes
type Watcher struct {
	cfg     WatchConfig
	watcher *fsnotify.Watcher
	match   []glob.Glob

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	out     chan Reload
}

// NewWatcher creates a watcher for cfg.Path
func NewWatcher(cfg WatchConfig) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, err
	}
	cfg.Path = abs

	patterns := cfg.Match
	if len(patterns) == 0 {
		patterns = []string{glob.QuoteMeta(filepath.Base(abs))}
	}
	match := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Join(ErrInvalidPattern, err)
		}
		match = append(match, g)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		cfg:     cfg,
		watcher: fw,
		match:   match,
		out:     make(chan Reload, 1),
	}, nil
}

// Start runs the event loop until ctx is done; the returned channel closes after that
func (w *Watcher) Start(ctx context.Context) <-chan Reload {
	go w.run(ctx)
	return w.out
}

func (w *Watcher) run(ctx context.Context) {
	defer w.cleanup()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("graph watcher: %v", err)
		}
	}
}

// relevant filters to content changes of matching files
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(ev.Name)
	for _, g := range w.match {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// schedule (re)arms the debounce timer
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.cfg.Debounce, w.reload)
}

func (w *Watcher) reload() {
	g, err := ReadFile(w.cfg.Path)
	r := Reload{Path: w.cfg.Path, Graph: g, Err: err}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	// Newest result wins; a pending unread reload is replaced
	select {
	case <-w.out:
	default:
	}
	w.out <- r
}

func (w *Watcher) cleanup() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.watcher.Close()
	close(w.out)
}
