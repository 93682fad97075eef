package runner

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher regenerates wrappers when vendor sources under the input root
// change. Events are debounced so editors that write in bursts trigger one
// regeneration.
type Watcher struct {
	runner       *Runner
	discovery    *FileDiscovery
	rootDir      string
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
}

// NewWatcher creates a watcher over the discovery root.
func NewWatcher(r *Runner, discovery *FileDiscovery, rootDir string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		runner:       r,
		discovery:    discovery,
		rootDir:      rootDir,
		watcher:      watcher,
		debounceTime: 500 * time.Millisecond,
	}
	if err := w.addDirectoriesRecursively(rootDir); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

// Watch blocks until the context is cancelled, re-running the pipeline for
// changed files that match the discovery patterns.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.watcher.Close()

	pending := make(map[string]bool)
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			// New directories need watches of their own.
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := w.addDirectoriesRecursively(event.Name); err != nil {
					log.Printf("watch %s: %v", event.Name, err)
				}
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			pending[event.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounceTime)
			} else {
				timer.Reset(w.debounceTime)
			}
			timerC = timer.C

		case <-timerC:
			files := make([]string, 0, len(pending))
			for file := range pending {
				files = append(files, file)
			}
			pending = make(map[string]bool)
			timerC = nil

			if _, err := w.runner.Run(ctx, files); err != nil && ctx.Err() == nil {
				log.Printf("regeneration failed: %v", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

func (w *Watcher) matches(path string) bool {
	relPath, err := filepath.Rel(w.rootDir, path)
	if err != nil {
		return false
	}
	return w.discovery.Matches(filepath.ToSlash(relPath))
}

func (w *Watcher) addDirectoriesRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}
