package catalog

import (
	"os"
	"path/filepath"
	"time"
)

// DirWatcher polls the catalog directory for changed scenario files and
// triggers a callback so the server can reload. Stdlib-only polling keeps
// the loader free of platform notification quirks.
type DirWatcher struct {
	dir       string
	interval  time.Duration
	onChange  func()
	stopCh    chan struct{}
	lastMTime map[string]time.Time
}

// NewDirWatcher creates a watcher over dir with the given poll interval.
func NewDirWatcher(dir string, interval time.Duration, onChange func()) *DirWatcher {
	return &DirWatcher{
		dir:       dir,
		interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start begins polling in a goroutine.
func (w *DirWatcher) Start() {
	ticker := time.NewTicker(w.interval)
	go func() {
		defer ticker.Stop()
		w.scan(true)
		for {
			select {
			case <-ticker.C:
				w.scan(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher.
func (w *DirWatcher) Stop() {
	close(w.stopCh)
}

// scan checks mtimes of every yaml file in the directory and fires onChange
// at most once per cycle when something moved.
func (w *DirWatcher) scan(prime bool) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return
	}
	changed := false
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext != ".yaml" && ext != ".yml" {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(w.dir, e.Name())
		last, seen := w.lastMTime[path]
		w.lastMTime[path] = fi.ModTime()
		if !seen || fi.ModTime().After(last) {
			changed = true
		}
	}
	if changed && !prime && w.onChange != nil {
		w.onChange()
	}
}
