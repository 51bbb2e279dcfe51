package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmaher/mcpscan/internal/scanner/capability"
)

// Watcher watches the scan root for file changes and triggers a full
// rescan after a debounce window. Rescans are sequential; a change
// arriving mid-rescan schedules another one.
type Watcher struct {
	scanner      *Scanner
	rootDir      string
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	onCatalog    func([]capability.Entry)
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
}

// NewWatcher creates a file watcher that re-runs scanner and hands each
// fresh catalog to onCatalog.
func NewWatcher(s *Scanner, rootDir string, onCatalog func([]capability.Entry)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		scanner:      s,
		rootDir:      rootDir,
		watcher:      fsWatcher,
		debounceTime: 500 * time.Millisecond,
		onCatalog:    onCatalog,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(rootDir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start(ctx context.Context) {
	go w.watch(ctx)
}

// Stop stops the watcher and waits for the watch goroutine to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		w.watcher.Close()
	})
}

// addDirectoriesRecursively registers the root and every non-pruned
// subdirectory with the fsnotify watcher.
func (w *Watcher) addDirectoriesRecursively(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.scanner.walker.excludedDirs[d.Name()] {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// watch consumes fsnotify events, debouncing bursts into single rescans.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	var debounce *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// New directories need to be registered to keep watching.
			isNewDir := false
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					isNewDir = true
					w.addDirectoriesRecursively(event.Name)
				}
			}

			if !isNewDir && w.scanner.familyFor(event.Name) == FamilyNone {
				continue
			}

			if debounce == nil {
				debounce = time.NewTimer(w.debounceTime)
			} else {
				debounce.Reset(w.debounceTime)
			}
			debounceCh = debounce.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.scanner.logger.Warn("watch error", "err", err)
		case <-debounceCh:
			debounceCh = nil
			catalog, err := w.scanner.Scan()
			if err != nil {
				w.scanner.logger.Error("rescan failed", "err", err)
				continue
			}
			if w.onCatalog != nil {
				w.onCatalog(catalog)
			}
		}
	}
}
