// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch delivers live-reload events when deck sources change on
// disk. It watches the parent directories of the named files because
// editors usually save by writing a temp file and renaming it over the
// original, which silently drops a watch on the file itself.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// =============================================================================
// EVENTS
// =============================================================================

// Event reports that one watched file changed.
type Event struct {
	Path string
	At   time.Time
}

// Watcher is the interface both implementations satisfy.
type Watcher interface {
	// Watch starts delivering events.
	Watch() error

	// Close stops watching and releases resources.
	Close() error
}

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// FileWatcher implements Watcher using fsnotify.
type FileWatcher struct {
	// Debounce is how long a file must stay quiet before its change is
	// reported. Editor saves land as several events back to back.
	Debounce time.Duration

	// MinGap is the minimum spacing between delivered events across all
	// watched files.
	MinGap time.Duration

	notify  func(Event)
	paths   map[string]bool
	watcher *fsnotify.Watcher
	limiter *rate.Limiter

	mu      sync.Mutex
	pending map[string]time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a watcher for the given files. Each file's parent directory
// must exist; the file itself may not yet.
func New(notify func(Event), paths ...string) (*FileWatcher, error) {
	watched := make(map[string]bool, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		if _, err := os.Stat(filepath.Dir(abs)); err != nil {
			return nil, fmt.Errorf("watch directory: %w", err)
		}
		watched[abs] = true
	}
	if len(watched) == 0 {
		return nil, fmt.Errorf("nothing to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &FileWatcher{
		Debounce: 250 * time.Millisecond,
		MinGap:   200 * time.Millisecond,
		notify:   notify,
		paths:    watched,
		watcher:  watcher,
		pending:  make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch registers the parent directories and starts the event loops.
func (w *FileWatcher) Watch() error {
	dirs := make(map[string]bool)
	for path := range w.paths {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	w.limiter = rate.NewLimiter(rate.Every(w.MinGap), 1)

	go w.processEvents()
	go w.processPending()

	return nil
}

// processEvents folds raw fsnotify traffic into the pending map.
func (w *FileWatcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if !w.paths[abs] {
				continue
			}
			w.mu.Lock()
			w.pending[abs] = time.Now()
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}

// processPending delivers settled changes on a short ticker.
func (w *FileWatcher) processPending() {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			for _, path := range w.flushDue(time.Now()) {
				w.notify(Event{Path: path, At: time.Now()})
			}
		}
	}
}

// flushDue returns the paths whose changes have settled past the debounce
// window, respecting the global rate limit. Paths held back by the
// limiter stay pending and go out on a later tick.
func (w *FileWatcher) flushDue(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var due []string
	for path, changed := range w.pending {
		if now.Sub(changed) < w.Debounce {
			continue
		}
		if !w.limiter.Allow() {
			break
		}
		due = append(due, path)
		delete(w.pending, path)
	}
	return due
}

// Close stops the loops and the underlying watcher.
func (w *FileWatcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// =============================================================================
// POLLING WATCHER (FALLBACK)
// =============================================================================

// PollWatcher implements Watcher by checking modification times on an
// interval, for filesystems fsnotify cannot cover.
type PollWatcher struct {
	notify   func(Event)
	paths    []string
	interval time.Duration

	mu   sync.Mutex
	seen map[string]time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// NewPollWatcher creates a polling watcher over the given files.
func NewPollWatcher(notify func(Event), interval time.Duration, paths ...string) *PollWatcher {
	ctx, cancel := context.WithCancel(context.Background())

	abs := make([]string, 0, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		if a, err := filepath.Abs(path); err == nil {
			abs = append(abs, a)
		}
	}

	return &PollWatcher{
		notify:   notify,
		paths:    abs,
		interval: interval,
		seen:     make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Watch records the baseline and starts polling.
func (p *PollWatcher) Watch() error {
	p.scan(false)
	go p.poll()
	return nil
}

func (p *PollWatcher) poll() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.scan(true)
		}
	}
}

// scan stats every watched file and, when emitting, reports the ones
// whose modification time moved.
func (p *PollWatcher) scan(emit bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, path := range p.paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		mod := info.ModTime()
		if prev, ok := p.seen[path]; ok && !prev.Equal(mod) && emit {
			p.notify(Event{Path: path, At: time.Now()})
		}
		p.seen[path] = mod
	}
}

// Close stops polling.
func (p *PollWatcher) Close() error {
	p.cancel()
	return nil
}

// =============================================================================
// WATCHER FACTORY
// =============================================================================

// Start builds and starts a watcher for the given files, preferring
// fsnotify and falling back to polling.
func Start(notify func(Event), paths ...string) (Watcher, error) {
	fw, err := New(notify, paths...)
	if err == nil {
		if err := fw.Watch(); err == nil {
			return fw, nil
		}
		fw.Close()
	}

	pw := NewPollWatcher(notify, 2*time.Second, paths...)
	if err := pw.Watch(); err != nil {
		return nil, err
	}
	return pw, nil
}
