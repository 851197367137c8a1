// Package filesystem watches local input files.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docwright/internal/core/domain"
	"github.com/custodia-labs/docwright/internal/core/ports/driven"
	"github.com/custodia-labs/docwright/internal/logger"
	"github.com/custodia-labs/docwright/internal/normalisers"
)

// Ensure Watcher implements the interface.
var _ driven.InputWatcher = (*Watcher)(nil)

// DefaultInterval is the minimum gap between two reported changes.
const DefaultInterval = 300 * time.Millisecond

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("watcher closed")

// Watcher reports changes to a single file. The parent directory is
// watched so editors that save by rename are still seen.
type Watcher struct {
	path     string
	interval time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a watcher for path.
func New(path string) *Watcher {
	return &Watcher{path: filepath.Clean(path), interval: DefaultInterval}
}

// SetInterval changes the minimum gap between reported changes.
func (w *Watcher) SetInterval(d time.Duration) {
	w.interval = d
}

// Watch starts watching. Bursts of events are coalesced: after each
// reported change further events wait for the interval, then the file is
// read once.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrWatcherClosed
	}

	dir := filepath.Dir(w.path)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path error: %s is not a directory", dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	w.watcher = fsw

	limiter := rate.NewLimiter(rate.Every(w.interval), 1)
	changes := make(chan domain.RawDocumentChange)
	go w.loop(ctx, fsw, limiter, changes)
	return changes, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, limiter *rate.Limiter, changes chan<- domain.RawDocumentChange) {
	defer close(changes)
	defer w.release(fsw)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			event = drain(fsw.Events, w.path, event)

			change := w.handleFsEvent(event)
			if change == nil {
				continue
			}
			select {
			case changes <- *change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch %s: %v", w.path, err)
		}
	}
}

// release closes fsw once the loop exits and forgets it so Close does not
// close it twice.
func (w *Watcher) release(fsw *fsnotify.Watcher) {
	w.mu.Lock()
	if w.watcher == fsw {
		w.watcher = nil
	}
	w.mu.Unlock()
	if err := fsw.Close(); err != nil {
		logger.Warn("close watcher for %s: %v", w.path, err)
	}
}

// drain consumes queued events for path and returns the latest one.
func drain(events <-chan fsnotify.Event, path string, last fsnotify.Event) fsnotify.Event {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return last
			}
			if filepath.Clean(event.Name) == path {
				last = event
			}
		default:
			return last
		}
	}
}

// handleFsEvent converts an event into a change. Chmod-only events and
// unreadable files yield nil.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *domain.RawDocumentChange {
	var changeType domain.ChangeType
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// A save-by-rename leaves the new file in place.
		if _, err := os.Stat(event.Name); err != nil {
			return &domain.RawDocumentChange{
				Type:     domain.ChangeDeleted,
				Document: domain.RawDocument{URI: event.Name},
			}
		}
		changeType = domain.ChangeUpdated
	case event.Has(fsnotify.Create):
		changeType = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		changeType = domain.ChangeUpdated
	default:
		return nil
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return nil
	}
	content, err := os.ReadFile(event.Name)
	if err != nil {
		logger.Warn("read %s: %v", event.Name, err)
		return nil
	}

	return &domain.RawDocumentChange{
		Type: changeType,
		Document: domain.RawDocument{
			URI:      event.Name,
			MIMEType: normalisers.MIMETypeForPath(event.Name),
			Content:  content,
		},
	}
}

// Close stops the watcher. It is idempotent.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
