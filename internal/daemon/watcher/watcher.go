// Package watcher handles file system watching for the daemon.
package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to session files in one directory. Changes are
// coalesced into a single-slot channel: a pending token means "something
// changed since you last looked".
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	changes   chan struct{}
	done      chan struct{}

	// Verbose logs every accepted fsnotify event.
	Verbose bool
}

// New creates a watcher for dir. The directory must exist.
func New(dir string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		dir:       dir,
		changes:   make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Changes returns the change-token channel.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching the directory (non-recursively).
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	go w.processEvents()

	log.Printf("[watcher] Watching %s", w.dir)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
	_ = w.fsWatcher.Close()
}

// processEvents processes file system events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] error: %v", err)
		}
	}
}

// handleEvent forwards a relevant event as a change token.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Atomic writes land as Create (rename onto the target). Removals drop a
	// session from the aggregate.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	if !IsSessionFile(event.Name) {
		return
	}
	if w.Verbose {
		log.Printf("[watcher] fsnotify: %s %s", event.Op, event.Name)
	}

	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// IsSessionFile reports whether path names a session state file rather than
// a temp file.
func IsSessionFile(path string) bool {
	name := filepath.Base(path)
	return filepath.Ext(name) == ".json" && !strings.HasPrefix(name, ".")
}
