package source

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a Watcher waits for a burst of file system
// events to settle before listing sources again.
const DefaultDebounce = 200 * time.Millisecond

// ErrWatcherClosed is returned by Run when the watcher is closed while
// Run is still waiting for events.
var ErrWatcherClosed = errors.New("source: watcher closed")

// Watcher reports changes to the set of source files under a project root.
// Only creations, removals and renames trigger a rescan; edits to existing
// files do not change the set.
type Watcher struct {
	root     string
	exts     []string
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
	Debounce time.Duration
}

// NewWatcher watches every directory under root that List would descend
// into. New directories are picked up as they appear.
func NewWatcher(root string, exts []string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:     root,
		exts:     exts,
		fsw:      fsw,
		logger:   logger,
		Debounce: DefaultDebounce,
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree watches dir and every directory below it that is not skipped.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Debug("watch failed", "dir", path, "error", err)
		}
		return nil
	})
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || skipDirs[name]
}

// Run delivers the new source list to onChange after each settled burst of
// changes. It returns ctx.Err() once ctx is done, or ErrWatcherClosed if
// the watcher is closed first.
func (w *Watcher) Run(ctx context.Context, onChange func([]File)) error {
	timer := time.NewTimer(w.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return ErrWatcherClosed
			}
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && !skipDir(info.Name()) {
					if err := w.addTree(ev.Name); err != nil {
						w.logger.Debug("watch new dir failed", "dir", ev.Name, "error", err)
					}
				}
			}
			timer.Reset(w.Debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			w.logger.Warn("source watcher error", "error", err)

		case <-timer.C:
			files, err := List(w.root, w.exts)
			if err != nil {
				w.logger.Warn("source rescan failed", "root", w.root, "error", err)
				continue
			}
			onChange(files)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
