package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long a file must stay quiet before its change is
// reported. Editors often write a file in several steps.
const settleDelay = 100 * time.Millisecond

var reloadable = map[string]bool{".yaml": true, ".yml": true, ".tengo": true}

// Watcher reports the base names of tuning files and scripts that changed
// on disk, once per burst of writes.
type Watcher struct {
	fs      *fsnotify.Watcher
	changes chan string
	errs    chan error

	stop      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewWatcher watches each directory, non-recursively.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fs,
		changes: make(chan string, 16),
		errs:    make(chan error, 1),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes is closed by Close.
func (w *Watcher) Changes() <-chan string { return w.changes }

// Errors keeps only the most recent unread error.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.stopped
		close(w.changes)
		close(w.errs)
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.stopped)

	// pending maps a base name to the time it may be reported.
	pending := make(map[string]time.Time)
	tick := time.NewTicker(settleDelay / 4)
	defer tick.Stop()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !isReloadable(ev.Name) {
				continue
			}
			pending[filepath.Base(ev.Name)] = time.Now().Add(settleDelay)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case now := <-tick.C:
			if !w.flush(pending, now) {
				return
			}
		case <-w.stop:
			return
		}
	}
}

// flush sends every pending name that has settled. It reports false once
// the watcher is stopping.
func (w *Watcher) flush(pending map[string]time.Time, now time.Time) bool {
	for name, due := range pending {
		if now.Before(due) {
			continue
		}
		delete(pending, name)
		select {
		case w.changes <- name:
		case <-w.stop:
			return false
		}
	}
	return true
}

func isReloadable(path string) bool {
	return reloadable[strings.ToLower(filepath.Ext(path))]
}
